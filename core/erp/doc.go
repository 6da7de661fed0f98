// Package erp is the NetSuite SuiteQL client.
//
// Every request is signed with a fresh OAuth 1.0a header from core/oauth1 and sent
// with "Prefer: transient". Query returns the "items" array of the response verbatim,
// or an empty slice when the body has no items.
//
// # Configuration
//
// The account id drives both the host and the realm:
//
//	account "1234567_SB1" -> https://1234567-sb1.suitetalk.api.netsuite.com, realm "1234567_SB1"
//
// # Usage
//
//	client, err := erp.NewClient(cfg.NetSuite, logger)
//	rows, err := client.Query(ctx, "SELECT id FROM customer")
package erp
