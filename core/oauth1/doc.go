// Package oauth1 builds the one-time OAuth 1.0a Authorization header required by the
// NetSuite REST and SuiteQL endpoints (token-based authentication, HMAC-SHA256).
//
// # Algorithm
//
//  1. Fresh nonce (16 random bytes, hex) and timestamp (Unix seconds) per call.
//  2. Parameter set: oauth_consumer_key, oauth_token, oauth_signature_method,
//     oauth_timestamp, oauth_nonce, oauth_version.
//  3. Keys and values are percent-encoded with the RFC 3986 unreserved set only,
//     so '!', '*', '\'', '(' and ')' are escaped.
//  4. Pairs are sorted by encoded key and joined with '&'.
//  5. Base string: METHOD & enc(url) & enc(params).
//  6. Signing key: enc(consumerSecret) & enc(tokenSecret).
//  7. oauth_signature = base64(HMAC-SHA256(key, base)).
//  8. Header: OAuth realm="<realm>", followed by every parameter as key="enc(value)".
//
// The pure helpers (PercentEncode, NormalizeParams, SignatureBase, Sign) are exported
// so the canonical form can be verified independently of randomness.
//
// # Usage
//
//	signer := oauth1.NewSigner(oauth1.Credentials{...})
//	header, err := signer.AuthorizationHeader(http.MethodPost, url)
//	req.Header.Set("Authorization", header)
package oauth1
