package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ar-sync/core/apierror"
)

// Parameter names, in the order they are emitted in the header.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamToken           = "oauth_token"
	ParamSignatureMethod = "oauth_signature_method"
	ParamTimestamp       = "oauth_timestamp"
	ParamNonce           = "oauth_nonce"
	ParamVersion         = "oauth_version"
	ParamSignature       = "oauth_signature"

	SignatureMethod = "HMAC-SHA256"
	Version         = "1.0"

	nonceBytes = 16
)

var headerOrder = []string{
	ParamConsumerKey,
	ParamToken,
	ParamSignatureMethod,
	ParamTimestamp,
	ParamNonce,
	ParamVersion,
	ParamSignature,
}

// Credentials are the token-based-authentication secrets for one account.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	TokenID        string
	TokenSecret    string
	Realm          string
}

// Signer produces Authorization headers. It holds no per-request state, so one
// Signer may be shared by concurrent callers.
type Signer struct {
	creds Credentials
	nonce func() (string, error)
	now   func() time.Time
}

// Option customises a Signer.
type Option func(*Signer)

// WithNonceSource replaces the random nonce generator.
func WithNonceSource(fn func() (string, error)) Option {
	return func(s *Signer) { s.nonce = fn }
}

// WithClock replaces the clock used for oauth_timestamp.
func WithClock(fn func() time.Time) Option {
	return func(s *Signer) { s.now = fn }
}

// NewSigner creates a Signer for the given credentials.
func NewSigner(creds Credentials, opts ...Option) *Signer {
	s := &Signer{
		creds: creds,
		nonce: RandomNonce,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RandomNonce returns 16 bytes of crypto/rand output, hex encoded.
func RandomNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Sign returns base64(HMAC-SHA256(enc(consumerSecret)&enc(tokenSecret), base)).
func Sign(base, consumerSecret, tokenSecret string) string {
	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// AuthorizationHeader signs one request. The header must not be reused.
func (s *Signer) AuthorizationHeader(method, targetURL string) (string, error) {
	if strings.TrimSpace(method) == "" {
		return "", &apierror.SignatureError{Reason: "empty HTTP method"}
	}
	u, err := url.Parse(targetURL)
	if err != nil {
		return "", &apierror.SignatureError{Reason: "invalid target URL: " + err.Error()}
	}
	if !u.IsAbs() || u.Host == "" {
		return "", &apierror.SignatureError{Reason: "target URL must be absolute: " + targetURL}
	}

	nonce, err := s.nonce()
	if err != nil {
		return "", &apierror.SignatureError{Reason: "nonce generation failed: " + err.Error()}
	}

	oauth := map[string]string{
		ParamConsumerKey:     s.creds.ConsumerKey,
		ParamToken:           s.creds.TokenID,
		ParamSignatureMethod: SignatureMethod,
		ParamTimestamp:       strconv.FormatInt(s.now().Unix(), 10),
		ParamNonce:           nonce,
		ParamVersion:         Version,
	}

	// Query parameters are signed with the oauth set; the base URL drops them.
	params := make(map[string]string, len(oauth))
	for k, vs := range u.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	for k, v := range oauth {
		params[k] = v
	}

	base := SignatureBase(method, baseURL(u), params)
	oauth[ParamSignature] = Sign(base, s.creds.ConsumerSecret, s.creds.TokenSecret)

	return formatHeader(s.creds.Realm, oauth), nil
}

// baseURL is scheme://host/path with the scheme and host lower-cased.
func baseURL(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + u.EscapedPath()
}

func formatHeader(realm string, params map[string]string) string {
	parts := make([]string, 0, len(headerOrder))
	for _, key := range headerOrder {
		parts = append(parts, key+`="`+PercentEncode(params[key])+`"`)
	}
	return `OAuth realm="` + realm + `", ` + strings.Join(parts, ", ")
}
