// Package models defines the records exchanged inside an AR sync run: the NetSuite
// receivable, the HubSpot company view, match results, per-record results, the run
// report and the persisted run summary.
package models
