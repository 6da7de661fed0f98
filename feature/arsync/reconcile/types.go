package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ar-sync/core/crm"
	"ar-sync/feature/arsync/models"
)

// Source produces the records for a run.
type Source interface {
	Fetch(ctx context.Context) (models.Batch, error)
}

// Resolver finds the HubSpot company for a record.
type Resolver interface {
	Resolve(ctx context.Context, externalCustomerID, displayName string) (models.MatchResult, error)
}

// Writer sends company changes to HubSpot.
type Writer interface {
	Create(ctx context.Context, properties map[string]string) (*crm.Company, error)
	Update(ctx context.Context, id string, properties map[string]string) (*crm.Company, error)
}

// UnmatchedPolicy decides what happens to a record with no matching company.
type UnmatchedPolicy string

const (
	// UnmatchedCreate creates a company. Use where the sync is authoritative for
	// which customers exist in HubSpot.
	UnmatchedCreate UnmatchedPolicy = "create"
	// UnmatchedSkip counts the record as not found and leaves HubSpot untouched.
	UnmatchedSkip UnmatchedPolicy = "skip"
)

// ParseUnmatchedPolicy validates a configured policy name. Empty means create.
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch UnmatchedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case UnmatchedCreate, "":
		return UnmatchedCreate, nil
	case UnmatchedSkip:
		return UnmatchedSkip, nil
	default:
		return "", fmt.Errorf("unknown unmatched policy %q (want create or skip)", s)
	}
}

// Options configures a Reconciler.
type Options struct {
	// Unmatched is the policy for records without a company.
	Unmatched UnmatchedPolicy
	// Pace is the pause after one record finishes before the next starts. Zero disables pacing.
	Pace time.Duration
	// DryRun resolves every record but sends no create or update.
	DryRun bool
	// Names are the HubSpot property names written.
	Names models.PropertyNames
	// NameMatch is recorded in the report for reference only.
	NameMatch string
}
