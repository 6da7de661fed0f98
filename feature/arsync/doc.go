// Package arsync exposes the NetSuite to HubSpot receivables sync as a feature.
//
// The Service guarantees at most one run at a time: a trigger that arrives while a
// run is in progress waits for that run and receives its result instead of starting
// another. Every run is recorded in the history table when a database is
// configured, and its full report is uploaded to object storage when storage is
// enabled.
//
// Routes:
//
//	POST /sync        run a sync (or join the one in progress)
//	GET  /sync/runs   recent runs, newest first
package arsync
