package apierror

import (
	"fmt"
)

// AuthConfigError reports a missing or invalid credential.
type AuthConfigError struct {
	// Service is the remote system the credential belongs to (e.g. "netsuite").
	Service string
	// Field is the configuration key that is missing or invalid.
	Field string
	// Reason is an optional detail, empty when the field is simply unset.
	Reason string
}

func (e *AuthConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: invalid credential %s: %s", e.Service, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: missing credential %s", e.Service, e.Field)
}

// SignatureError reports input that cannot be turned into a signed request.
type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string {
	return "oauth1: cannot sign request: " + e.Reason
}

// TransportError reports a network-level failure for a single call.
type TransportError struct {
	Service string
	Op      string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: transport failure: %v", e.Service, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteAPIError reports a rejection by the remote API.
// StatusCode is the HTTP status, which may be 2xx when the body carried the error.
type RemoteAPIError struct {
	Service    string
	Op         string
	StatusCode int
	Message    string
	Body       string
}

func (e *RemoteAPIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = truncate(e.Body, 200)
	}
	return fmt.Sprintf("%s: %s: HTTP %d: %s", e.Service, e.Op, e.StatusCode, msg)
}

// ParseError reports a response body that could not be decoded.
// Raw holds the body exactly as received.
type ParseError struct {
	Service string
	Op      string
	Raw     string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: unparseable response: %v", e.Service, e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Snippet returns at most n bytes of s, for logging large bodies.
func Snippet(s string, n int) string {
	return truncate(s, n)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
