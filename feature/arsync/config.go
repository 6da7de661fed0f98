package arsync

import (
	"time"

	"ar-sync/feature/arsync/match"
	"ar-sync/feature/arsync/models"
	"ar-sync/feature/arsync/reconcile"
)

// Config holds the sync policy.
type Config struct {
	// NameMatch is the fallback when no company carries the NetSuite id: exact or token.
	NameMatch string `mapstructure:"name_match" default:"exact"`
	// Unmatched decides what happens to a customer with no company: create or skip.
	Unmatched string `mapstructure:"unmatched" default:"create"`
	// DryRun resolves every customer but writes nothing to HubSpot.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// PaceMS is the pause between two customers in milliseconds.
	PaceMS int `mapstructure:"pace_ms" default:"100"`
	// RunTimeoutSeconds bounds a whole run. Zero means no limit.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" default:"1800"`
	// Query replaces the default SuiteQL statement. Columns must use the same aliases.
	Query string `mapstructure:"query" default:""`
	// CustomerListLimit is the size of the customer list read when the query finds
	// nothing. Zero disables that fallback.
	CustomerListLimit int `mapstructure:"customer_list_limit" default:"100"`
	// TokenSearchLimit is how many candidates a token name search fetches.
	TokenSearchLimit int `mapstructure:"token_search_limit" default:"10"`

	NameProperty           string `mapstructure:"name_property" default:"name"`
	ExternalIDProperty     string `mapstructure:"external_id_property" default:"netsuite_customer_id"`
	TotalBalanceProperty   string `mapstructure:"total_balance_property" default:"total_ar_balance"`
	PastDueBalanceProperty string `mapstructure:"past_due_property" default:"past_due_amount"`
	// LegalNameProperty receives the NetSuite name on first link. "-" disables it.
	LegalNameProperty string `mapstructure:"legal_name_property" default:"netsuite_legal_name"`
}

// Validate checks the policy names.
func (c Config) Validate() error {
	if _, err := match.ParseNamePolicy(c.NameMatch); err != nil {
		return err
	}
	if _, err := reconcile.ParseUnmatchedPolicy(c.Unmatched); err != nil {
		return err
	}
	return nil
}

// PropertyNames returns the HubSpot property names, falling back to the defaults
// for any left empty.
func (c Config) PropertyNames() models.PropertyNames {
	names := models.DefaultPropertyNames()
	if c.NameProperty != "" {
		names.Name = c.NameProperty
	}
	if c.ExternalIDProperty != "" {
		names.ExternalID = c.ExternalIDProperty
	}
	if c.TotalBalanceProperty != "" {
		names.TotalBalance = c.TotalBalanceProperty
	}
	if c.PastDueBalanceProperty != "" {
		names.PastDueBalance = c.PastDueBalanceProperty
	}
	switch c.LegalNameProperty {
	case "":
	case "-":
		names.LegalName = ""
	default:
		names.LegalName = c.LegalNameProperty
	}
	return names
}

// Pace returns the pause between records.
func (c Config) Pace() time.Duration {
	if c.PaceMS < 0 {
		return 0
	}
	return time.Duration(c.PaceMS) * time.Millisecond
}

// RunTimeout returns the limit for one run, zero for none.
func (c Config) RunTimeout() time.Duration {
	if c.RunTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}
