package oauth1

import (
	"sort"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// PercentEncode escapes every byte outside the RFC 3986 unreserved set
// (ALPHA / DIGIT / "-" / "." / "_" / "~") as %XX with uppercase hex.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// NormalizeParams encodes every key and value, sorts by encoded key and joins the
// pairs with '&'. The result only depends on the map contents.
func NormalizeParams(params map[string]string) string {
	encoded := make(map[string]string, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		ek := PercentEncode(k)
		encoded[ek] = PercentEncode(v)
		keys = append(keys, ek)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+encoded[k])
	}
	return strings.Join(pairs, "&")
}

// SignatureBase builds METHOD&enc(url)&enc(normalized params).
func SignatureBase(method, targetURL string, params map[string]string) string {
	return strings.ToUpper(method) + "&" + PercentEncode(targetURL) + "&" + PercentEncode(NormalizeParams(params))
}
