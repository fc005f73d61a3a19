package util

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenFromRequest_Priority(t *testing.T) {
	body := `{"userId":"from-body","content":"hi"}`

	tests := []struct {
		name   string
		header string
		query  string
		body   string
		want   string
	}{
		{"header wins", "from-header", "from-query", body, "from-header"},
		{"query before body", "", "from-query", body, "from-query"},
		{"body fallback", "", "", body, "from-body"},
		{"nothing supplied", "", "", "", ""},
		{"non-string body field", "", "", `{"userId":42}`, ""},
		{"malformed body", "", "", `{"userId":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/posts"
			if tt.query != "" {
				target += "?uid=" + tt.query
			}
			r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(tt.body))
			if tt.header != "" {
				r.Header.Set(IdentityHeader, tt.header)
			}
			assert.Equal(t, tt.want, IdentityTokenFromRequest(r))
		})
	}
}

func TestIdentityTokenFromRequest_RestoresBody(t *testing.T) {
	body := `{"userId":"abc","content":"hello"}`
	r := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))

	require.Equal(t, "abc", IdentityTokenFromRequest(r))

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(rest))
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("firebase-uid-123")
	assert.Len(t, fp, 12)
	assert.Equal(t, fp, Fingerprint("firebase-uid-123"))
	assert.NotEqual(t, fp, Fingerprint("firebase-uid-124"))
	assert.NotContains(t, fp, "firebase")
	assert.Empty(t, Fingerprint(""))
}

func TestPageFromRequest(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"page=3&limit=5", 3, 5},
		{"page=0&limit=-1", 1, 20},
		{"page=abc&limit=xyz", 1, 20},
		{"limit=500", 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/posts/feed?"+tt.query, nil)
			p := PageFromRequest(r, 20, 50)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}
