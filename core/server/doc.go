// Package server holds the HTTP server configuration.
//
// The cmd package owns start-up; this package only defines the settings it reads:
// listen port, the API key protecting /sync, and whether a run starts immediately.
package server
