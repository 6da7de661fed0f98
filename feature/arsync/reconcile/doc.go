// Package reconcile runs one NetSuite to HubSpot receivables sync.
//
// Records are processed strictly in source order, one at a time, with a fixed
// pause after each record to stay under the HubSpot rate limit. A failure
// on one record is counted and logged; the run continues with the next record.
// Only a failure to fetch the record set aborts the run.
//
// The unmatched policy decides whether a record with no HubSpot company creates
// one (create) or is counted as not found (skip).
package reconcile
