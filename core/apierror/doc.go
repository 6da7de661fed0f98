// Package apierror defines the error taxonomy shared by the outbound API clients.
//
// Every failure raised while talking to the ERP or the CRM is one of:
//
//   - AuthConfigError: a credential is missing or malformed. Raised before any network call.
//   - SignatureError: the request could not be signed (bad method or URL).
//   - TransportError: the request never produced a response (DNS, TLS, timeout, reset).
//   - RemoteAPIError: a non-2xx status, or an error payload embedded in a 2xx body.
//   - ParseError: the response body is not well-formed JSON. The raw body is kept.
//
// All types work with errors.As, and the wrapping ones support errors.Is on the cause.
//
// # Usage
//
//	var apiErr *apierror.RemoteAPIError
//	if errors.As(err, &apiErr) {
//	    log.Warn("remote rejected call", zap.Int("status", apiErr.StatusCode))
//	}
package apierror
