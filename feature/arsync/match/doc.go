// Package match decides which HubSpot company, if any, corresponds to a NetSuite
// customer.
//
// The order is fixed: an exact search on the netsuite_customer_id property first, since
// once the sync has linked a company that id is the durable join key. Only records
// never linked before fall through to a name search, using one of two policies:
//
//   - exact: the company name equals the NetSuite display name.
//   - token: CONTAINS_TOKEN on the first word of the display name; the first result
//     whose name contains the word wins, otherwise the first result.
//
// The token policy tolerates formatting differences ("Calleja S.A." vs
// "CALLEJA, S.A DE C.V") at the cost of false positives on common first words.
package match
