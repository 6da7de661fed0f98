// Package source produces the receivable records for a sync run.
//
// Records come from a NetSuite SuiteQL query. When the query returns no rows and a
// snapshot object is configured, the records are read from object storage instead.
// Rows that cannot be converted are reported as rejected, never silently dropped.
package source
