package models

import (
	"time"

	"ar-sync/core/crm"

	"github.com/shopspring/decimal"
)

// ReceivableRecord is one NetSuite customer with its open balances.
type ReceivableRecord struct {
	ExternalCustomerID string          `json:"customer_id"`
	DisplayName        string          `json:"customer_name"`
	TotalBalance       decimal.Decimal `json:"total_ar_balance"`
	PastDueBalance     decimal.Decimal `json:"past_due_amount"`
}

// RejectedRow is a source row that could not be turned into a ReceivableRecord.
type RejectedRow struct {
	Index              int    `json:"index"`
	ExternalCustomerID string `json:"customer_id,omitempty"`
	Reason             string `json:"reason"`
}

// Batch is the record set for one run, in source order.
type Batch struct {
	// Origin is where the records came from ("netsuite", "netsuite_customers" or "snapshot").
	Origin   string
	Records  []ReceivableRecord
	Rejected []RejectedRow
}

// Company is the subset of a HubSpot company the sync reads.
type Company struct {
	ID                 string
	Name               string
	ExternalCustomerID *string
	TotalBalance       *decimal.Decimal
	PastDueBalance     *decimal.Decimal
}

// CompanyFromCRM maps a raw HubSpot record using the configured property names.
// Empty or unparseable properties stay nil.
func CompanyFromCRM(c crm.Company, names PropertyNames) Company {
	company := Company{
		ID:   c.ID,
		Name: c.Properties[names.Name],
	}
	if v := c.Properties[names.ExternalID]; v != "" {
		company.ExternalCustomerID = &v
	}
	company.TotalBalance = optionalDecimal(c.Properties[names.TotalBalance])
	company.PastDueBalance = optionalDecimal(c.Properties[names.PastDueBalance])
	return company
}

func optionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// MatchBasis records how a CRM company was associated with an ERP record.
type MatchBasis string

const (
	MatchByID   MatchBasis = "by-id"
	MatchByName MatchBasis = "by-name"
	MatchNone   MatchBasis = "none"
)

// MatchResult is the matcher's answer for one record.
type MatchResult struct {
	Company *Company
	Basis   MatchBasis
}

// Found reports whether a company was matched.
func (m MatchResult) Found() bool {
	return m.Company != nil && m.Basis != MatchNone
}

// ActionType is what the sync did (or would do, in a dry run) for a record.
type ActionType string

const (
	ActionUpdate ActionType = "update"
	ActionCreate ActionType = "create"
	ActionSkip   ActionType = "skip"
	ActionError  ActionType = "error"
)

// RecordResult is the per-record line of a run report.
type RecordResult struct {
	ExternalCustomerID string     `json:"customer_id"`
	DisplayName        string     `json:"customer_name"`
	Basis              MatchBasis `json:"match_basis,omitempty"`
	Action             ActionType `json:"action"`
	CompanyID          string     `json:"company_id,omitempty"`
	Error              string     `json:"error,omitempty"`
}

// Outcome is the aggregate count for one run.
type Outcome struct {
	Updated  int `json:"updated"`
	Created  int `json:"created"`
	NotFound int `json:"not_found"`
	Errors   int `json:"errors"`
	Total    int `json:"total"`
}

// Report is everything known about one run.
type Report struct {
	Trigger    string         `json:"trigger"`
	Origin     string         `json:"origin"`
	DryRun     bool           `json:"dry_run"`
	NameMatch  string         `json:"name_match"`
	Unmatched  string         `json:"unmatched"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Outcome    Outcome        `json:"outcome"`
	Results    []RecordResult `json:"results"`
}

// Run statuses stored in history.
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
	RunStatusAborted   = "aborted"
)

// SyncRun is the persisted summary of one run.
type SyncRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Trigger    string    `gorm:"size:32" json:"trigger"`
	Origin     string    `gorm:"size:32" json:"origin"`
	Status     string    `gorm:"size:16;index" json:"status"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Updated    int       `json:"updated"`
	Created    int       `json:"created"`
	NotFound   int       `json:"not_found"`
	Errors     int       `json:"errors"`
	Total      int       `json:"total"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	ReportKey  string    `gorm:"size:255" json:"report_key,omitempty"`
}

// TableName overrides the default table name.
func (SyncRun) TableName() string {
	return "ar_sync_runs"
}
