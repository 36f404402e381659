package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"subscription-billing/config"
)

// MacValueField is the signature field name in gateway form payloads.
const MacValueField = "CheckMacValue"

// CheckMacCodec implements ports.SignatureCodec using the gateway's
// CheckMacValue scheme: sorted form pairs wrapped in HashKey/HashIV,
// URL-encoded, lowercased, SHA-256, uppercase hex.
type CheckMacCodec struct {
	hashKey string
	hashIV  string
}

// NewCheckMacCodec creates a codec bound to one gateway key pair.
func NewCheckMacCodec(cfg config.GatewayConfig) *CheckMacCodec {
	return &CheckMacCodec{hashKey: cfg.HashKey, hashIV: cfg.HashIV}
}

// Sign computes the CheckMacValue over params. Any CheckMacValue key in the
// input is ignored. The algorithm is gateway-mandated and must stay bit-exact:
//
//  1. drop the signature field
//  2. sort remaining pairs by key, byte order
//  3. form-encode each value (space as '+')
//  4. join as k=v with '&'
//  5. wrap as HashKey=<key>&<joined>&HashIV=<iv>
//  6. form-encode the whole wrapped string
//  7. lowercase, SHA-256, uppercase hex
func (c *CheckMacCodec) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == MacValueField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("HashKey=")
	b.WriteString(c.hashKey)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(encodeMacValue(params[k]))
	}
	b.WriteString("&HashIV=")
	b.WriteString(c.hashIV)

	wrapped := strings.ToLower(encodeMacValue(b.String()))
	sum := sha256.Sum256([]byte(wrapped))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify recomputes the signature with the CheckMacValue field stripped and
// compares in constant time against the supplied value.
func (c *CheckMacCodec) Verify(params map[string]string) bool {
	supplied, ok := params[MacValueField]
	if !ok || supplied == "" {
		return false
	}
	expected := c.Sign(params)
	return hmac.Equal([]byte(expected), []byte(strings.ToUpper(supplied)))
}

// encodeMacValue form-encodes s: unreserved characters (RFC 3986) pass
// through, space becomes '+', everything else is percent-encoded. Empty
// values encode as the empty string, never the literal "null".
func encodeMacValue(s string) string {
	return url.QueryEscape(s)
}
