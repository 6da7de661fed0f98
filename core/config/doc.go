// Package config loads the application configuration.
//
// Values come from a .env file (optional) and the environment, with defaults
// declared on each section's struct tags. Nested keys map to upper-case
// variables with underscores, e.g. netsuite.account_id is NETSUITE_ACCOUNT_ID
// and sync.name_match is SYNC_NAME_MATCH. PORT and SYNC_ON_START are accepted
// as aliases for SERVER_PORT and SERVER_SYNC_ON_START.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, sync on start
//   - Log: level and format
//   - Database: optional run-history database
//   - Storage: optional MinIO/S3 bucket for reports and the snapshot fallback
//   - NetSuite: account id and the four token-based-authentication credentials
//   - HubSpot: private-app access token
//   - Sync: name match and unmatched policies, pacing, run timeout, property names
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
