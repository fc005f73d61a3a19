package util

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
)

const (
	IdentityHeader     = "x-user-id"
	IdentityQueryParam = "uid"
	identityBodyField  = "userId"
)

// maxPeekBytes bounds how much of a request body is buffered while looking
// for the identity field.
const maxPeekBytes = 1 << 20

// IdentityTokenFromRequest returns the external identity token supplied with
// the request. The header wins over the query parameter, which wins over the
// userId field of a JSON body. The body is left readable for the handler.
func IdentityTokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(IdentityHeader)); token != "" {
		return token
	}
	if token := strings.TrimSpace(r.URL.Query().Get(IdentityQueryParam)); token != "" {
		return token
	}
	return tokenFromBody(r)
}

func tokenFromBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	token, _ := body[identityBodyField].(string)
	return strings.TrimSpace(token)
}

// Fingerprint returns a short stable digest of an identity token, safe to
// write to logs.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}
