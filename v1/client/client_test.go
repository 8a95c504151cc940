package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Aleph-Alpha/gateway-client-go/v1/chat"
	"github.com/Aleph-Alpha/gateway-client-go/v1/gateway"
	"github.com/Aleph-Alpha/gateway-client-go/v1/vectordb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func newGatewayServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{Method: r.Method, Path: r.URL.EscapedPath(), Auth: r.Header.Get("Authorization"), Body: body})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func testConfig(url string) *gateway.Config {
	return gateway.DefaultConfig().WithBaseURL(url + "/").WithAPIToken("secret").WithMaxRetries(0)
}

func TestNewWiresAllServices(t *testing.T) {
	srv, requests := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/client/v1/chat/completions":
			_, _ = io.WriteString(w, `{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"pong"}}]}`)
		case "/api/client/v1/embeddings":
			_, _ = io.WriteString(w, `{"data":[{"index":0,"embedding":[0.5]}]}`)
		case "/api/client/v1/tracing/sessions":
			_, _ = io.WriteString(w, `{"session_id":"s","accepted":2}`)
		default:
			_, _ = io.WriteString(w, `{"data":[]}`)
		}
	})

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, srv.URL, c.Gateway().BaseURL())

	ctx := context.Background()
	resp, err := c.Chat.Create(ctx, chat.CompletionRequest{Model: "m", Messages: []chat.Message{{Role: chat.RoleUser, Content: "ping"}}})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text())

	vecs, err := c.Embeddings.CreateEmbeddings(ctx, "m", "x")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5}}, vecs)

	_, err = c.Vectors.ListProviders(ctx)
	require.NoError(t, err)
	_, err = c.Files.ListBuckets(ctx)
	require.NoError(t, err)

	rec := c.NewRecorder("agent")
	run := rec.RunStarted("run", nil)
	rec.RunFinished(run, "done")
	res, err := rec.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Accepted)

	got := requests()
	paths := make([]string, 0, len(got))
	for _, r := range got {
		paths = append(paths, r.Method+" "+r.Path)
		assert.Equal(t, "Bearer secret", r.Auth)
	}
	assert.Equal(t, []string{
		"POST /api/client/v1/chat/completions",
		"POST /api/client/v1/embeddings",
		"GET /api/client/v1/vector-providers",
		"GET /api/client/v1/file-buckets",
		"POST /api/client/v1/tracing/sessions",
	}, paths)
	assert.Equal(t, rec.SessionID(), got[4].Body["id"])
}

func TestAPIErrorsReachCaller(t *testing.T) {
	srv, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"invalid token","type":"auth_error"}}`)
	})

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Files.GetBucket(context.Background(), "b1")
	var apiErr *gateway.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "auth_error", apiErr.Type)
	assert.Equal(t, "invalid token", apiErr.Message)
}

func TestVectorStoreOverGateway(t *testing.T) {
	srv, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/client/v1/vector-providers/p1/indexes":
			_, _ = io.WriteString(w, `{"data":[{"id":"i1","name":"docs","dimension":2}]}`)
		case "/api/client/v1/vector-indexes/i1/query":
			_, _ = io.WriteString(w, `{"matches":[{"id":"a","score":0.99}]}`)
		}
	})

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	var store vectordb.Service = c.VectorStore("p1")
	res, err := store.Search(context.Background(), vectordb.SearchRequest{CollectionName: "docs", Vector: []float32{1, 0}, TopK: 1})
	require.NoError(t, err)
	assert.Equal(t, "a", res[0][0].ID)
}

func TestNewRejectsMissingToken(t *testing.T) {
	_, err := New(gateway.DefaultConfig())
	assert.ErrorIs(t, err, gateway.ErrMissingAPIToken)
}

func TestFXModule(t *testing.T) {
	srv, _ := newGatewayServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"b1","name":"reports"}]}`)
	})

	var c *Client
	app := fxtest.New(t,
		fx.Supply(testConfig(srv.URL)),
		FXModule,
		fx.Populate(&c),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, c)
	require.NotNil(t, c.Chat)
	require.NotNil(t, c.Tracing)
	buckets, err := c.Files.ListBuckets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reports", buckets[0].Name)
}
