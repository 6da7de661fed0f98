// Package crm is the HubSpot CRM v3 client for company records.
//
// It exposes the three operations the sync needs: Search, Create and Update.
// All calls authenticate with a static private-app bearer token. The token is checked
// before any network traffic, so a missing token never produces a request.
//
// HubSpot sometimes reports failures with a 2xx status and a body of the form
// {"status":"error","message":"..."}. Those bodies are returned as
// *apierror.RemoteAPIError exactly like non-2xx responses.
//
// # Usage
//
//	client := crm.NewClient(cfg.HubSpot, logger)
//	found, err := client.Search(ctx, "netsuite_customer_id", crm.OperatorEQ, "293", props, 1)
package crm
