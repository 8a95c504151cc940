package gateway

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		want    string
	}{
		{"plain", "https://gateway.test", "models", "https://gateway.test/models"},
		{"leading slash", "https://gateway.test", "/models", "https://gateway.test/models"},
		{"trailing slash on base", "https://gateway.test/", "/models", "https://gateway.test/models"},
		{"base with prefix", "https://gateway.test/proxy/", "/api/client/v1/files", "https://gateway.test/proxy/api/client/v1/files"},
		{"double leading slash", "https://gateway.test", "//models", "https://gateway.test/models"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, newTestConfig(tt.baseURL))
			assert.Equal(t, tt.want, client.resolveURL(tt.path, nil))
		})
	}
}

func TestEncodeQueryOmitsUndefinedValues(t *testing.T) {
	var nilString *string
	prefix := "docs/"
	limit := 25

	values := encodeQuery(map[string]any{
		"prefix":  &prefix,
		"limit":   &limit,
		"cursor":  nilString,
		"missing": nil,
		"deep":    true,
		"score":   0.5,
		"since":   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	assert.Equal(t, "docs/", values.Get("prefix"))
	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "true", values.Get("deep"))
	assert.Equal(t, "0.5", values.Get("score"))
	assert.Equal(t, "2024-01-02T03:04:05Z", values.Get("since"))
	assert.False(t, values.Has("cursor"))
	assert.False(t, values.Has("missing"))
	for key, v := range values {
		assert.Len(t, v, 1, "parameter %s must appear once", key)
	}
}

func TestResolveURLWithQuery(t *testing.T) {
	client := newTestClient(t, newTestConfig("https://gateway.test"))
	got := client.resolveURL("/files", map[string]any{"b": "2", "a": 1, "c": nil})
	assert.Equal(t, "https://gateway.test/files?a=1&b=2", got)

	assert.Equal(t, "https://gateway.test/files", client.resolveURL("/files", map[string]any{"c": nil}))
}

func TestPrepareDefaultsMethodAndHeaders(t *testing.T) {
	client := newTestClient(t, newTestConfig("https://gateway.test"))

	p, err := client.prepare(context.Background(), Request{Path: "/x"}, eventStream)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, p.method)
	assert.Nil(t, p.body)
	assert.Equal(t, "text/event-stream", p.headers.Get("Accept"))
	assert.Equal(t, "Bearer test-token", p.headers.Get("Authorization"))

	req, err := p.newHTTPRequest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, req.Body)
}
