package erp

import (
	"fmt"
	"strings"

	"ar-sync/core/apierror"
	"ar-sync/core/oauth1"
)

const serviceName = "netsuite"

// REST endpoints.
const (
	SuiteQLPath        = "/services/rest/query/v1/suiteql"
	CustomerRecordPath = "/services/rest/record/v1/customer"
)

// DefaultCustomerLimit is the page size of a customer list request.
const DefaultCustomerLimit = 100

// Config holds NetSuite token-based-authentication settings.
type Config struct {
	// AccountID is the NetSuite account (e.g. "7882010" or "7882010_SB1").
	AccountID string `mapstructure:"account_id" default:""`
	// ConsumerKey is the integration record's consumer key.
	ConsumerKey string `mapstructure:"consumer_key" default:""`
	// ConsumerSecret is the integration record's consumer secret.
	ConsumerSecret string `mapstructure:"consumer_secret" default:""`
	// TokenID is the access token id.
	TokenID string `mapstructure:"token_id" default:""`
	// TokenSecret is the access token secret.
	TokenSecret string `mapstructure:"token_secret" default:""`
	// BaseURL overrides the account-derived host. Used for tests and proxies.
	BaseURL string `mapstructure:"base_url" default:""`
	// TimeoutSeconds bounds each outbound call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate reports the first missing credential.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"account_id", c.AccountID},
		{"consumer_key", c.ConsumerKey},
		{"consumer_secret", c.ConsumerSecret},
		{"token_id", c.TokenID},
		{"token_secret", c.TokenSecret},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &apierror.AuthConfigError{Service: serviceName, Field: f.name}
		}
	}
	return nil
}

// Realm is the upper-cased account id.
func (c Config) Realm() string {
	return strings.ToUpper(c.AccountID)
}

// APIBaseURL returns the REST host for the account, or BaseURL when set.
func (c Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	host := strings.ToLower(strings.ReplaceAll(c.AccountID, "_", "-"))
	return fmt.Sprintf("https://%s.suitetalk.api.netsuite.com", host)
}

// Credentials converts the config into signer credentials.
func (c Config) Credentials() oauth1.Credentials {
	return oauth1.Credentials{
		ConsumerKey:    c.ConsumerKey,
		ConsumerSecret: c.ConsumerSecret,
		TokenID:        c.TokenID,
		TokenSecret:    c.TokenSecret,
		Realm:          c.Realm(),
	}
}
