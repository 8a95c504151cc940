package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestExecuteSendsRequest(t *testing.T) {
	type payload struct {
		Model string `json:"model"`
		Input string `json:"input"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/client/v1/embeddings", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.False(t, r.URL.Query().Has("cursor"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "aleph-alpha-gateway-go/"+Version, r.Header.Get("User-Agent"))
		assert.Equal(t, "override", r.Header.Get("X-Request-Source"))

		var body payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, payload{Model: "m", Input: "hello"}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer server.Close()

	client := newTestClient(t, newTestConfig(server.URL+"/"))

	var out struct {
		ID string `json:"id"`
	}
	err := client.Execute(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "/api/client/v1/embeddings",
		Body:    payload{Model: "m", Input: "hello"},
		Query:   map[string]any{"limit": 10, "cursor": nil},
		Headers: map[string]string{"X-Request-Source": "override"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "abc", out.ID)
}

func TestExecuteHeadersOverrideDefaults(t *testing.T) {
	var seen http.Header
	client := newTestClient(t, newTestConfig("https://gateway.test"), WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Clone()
		return jsonResponse(http.StatusOK, `{}`), nil
	})))

	err := client.Execute(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "models",
		Headers: map[string]string{"Authorization": "Bearer other", "Content-Type": "text/plain"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer other", seen.Get("Authorization"))
	assert.Equal(t, "text/plain", seen.Get("Content-Type"))
}

func TestExecuteWithoutBodySendsNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Empty(t, raw)
		assert.Equal(t, int64(0), r.ContentLength)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, newTestConfig(server.URL))

	var out map[string]any
	err := client.Execute(context.Background(), Request{Method: http.MethodDelete, Path: "/things/1"}, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestExecuteAPIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantType    string
		wantBody    bool
	}{
		{
			name:        "error object with message and type",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"message":"Rate limited","type":"rate_limit"}}`,
			wantMessage: "Rate limited",
			wantType:    "rate_limit",
			wantBody:    true,
		},
		{
			name:        "error string",
			status:      http.StatusBadRequest,
			body:        `{"error":"bad input"}`,
			wantMessage: "bad input",
			wantBody:    true,
		},
		{
			name:        "error object without message",
			status:      http.StatusInternalServerError,
			body:        `{"error":{"type":"internal"}}`,
			wantMessage: "HTTP 500: Internal Server Error",
			wantType:    "internal",
			wantBody:    true,
		},
		{
			name:        "unparsable body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: "HTTP 502: Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, newTestConfig(server.URL))

			err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, KindAPI, Classify(err))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantType, apiErr.Type)
			if tt.wantBody {
				assert.NotNil(t, apiErr.Body)
			} else {
				assert.Nil(t, apiErr.Body)
			}
			assert.Equal(t, int32(1), calls.Load(), "API errors are never retried")
		})
	}
}

func TestExecuteRetriesTransportErrors(t *testing.T) {
	var calls atomic.Int32
	sleeper := &recordingSleeper{}
	cause := errors.New("connection reset")

	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, cause
		})),
		WithSleeper(sleeper.sleep),
		WithBackoffUnit(100*time.Millisecond),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)

	assert.Equal(t, int32(DefaultMaxRetries+1), calls.Load())
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, sleeper.Delays())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.False(t, transportErr.Cancelled)
	assert.False(t, transportErr.Timeout)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindTransport, Classify(err))
}

func TestExecuteRetryThenSuccess(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			if calls.Add(1) < 3 {
				return nil, errors.New("temporary failure")
			}
			return jsonResponse(http.StatusOK, `{"ok":true}`), nil
		})),
	)

	var out struct {
		OK bool `json:"ok"`
	}
	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExecuteRetryResendsBody(t *testing.T) {
	var bodies []string
	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			raw, _ := io.ReadAll(req.Body)
			bodies = append(bodies, string(raw))
			if len(bodies) == 1 {
				return nil, errors.New("temporary failure")
			}
			return jsonResponse(http.StatusOK, `{}`), nil
		})),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodPost, Path: "/x", Body: map[string]int{"n": 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"n":1}`, `{"n":1}`}, bodies)
}

func TestExecuteZeroRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, newTestConfig("https://gateway.test").WithMaxRetries(0),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, errors.New("down")
		})),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteCancelledIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			<-req.Context().Done()
			return nil, req.Context().Err()
		})),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Execute(ctx, Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	assert.False(t, IsRetryable(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteCancelledDuringBackoff(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, errors.New("down")
		})),
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}),
	)

	err := client.Execute(ctx, Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteTimeoutIsRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, newTestConfig("https://gateway.test").WithTimeout(20*time.Millisecond).WithMaxRetries(1),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			<-req.Context().Done()
			return nil, req.Context().Err()
		})),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.False(t, IsCancelled(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestExecuteCallerCancellationWinsOverTimeout(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := newTestClient(t, newTestConfig("https://gateway.test").WithTimeout(10*time.Millisecond),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			<-req.Context().Done() // internal deadline
			cancel()               // caller gives up as well
			return nil, req.Context().Err()
		})),
	)

	err := client.Execute(ctx, Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	assert.False(t, IsTimeout(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestExecuteDecodeFailureIsRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return jsonResponse(http.StatusOK, `<html>oops`), nil
		})),
		WithSleeper((&recordingSleeper{}).sleep),
	)

	var out struct{ ID int }
	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, &out)
	require.Error(t, err)
	assert.Equal(t, int32(DefaultMaxRetries+1), calls.Load())
	assert.Equal(t, KindTransport, Classify(err))

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
	assert.Equal(t, "<html>oops", transportErr.Response)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestExecuteUnreadableErrorBodyIsAPIError(t *testing.T) {
	var calls atomic.Int32
	body := &trackingBody{Reader: iotest.ErrReader(errors.New("connection reset"))}
	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Status:     "503 Service Unavailable",
				Header:     http.Header{},
				Body:       body,
			}, nil
		})),
		WithSleeper((&recordingSleeper{}).sleep),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(1), body.closes.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "HTTP 503: Service Unavailable", apiErr.Message)
	assert.Nil(t, apiErr.Body)
}

func TestExecuteUnreadableSuccessBodyIsRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, newTestConfig("https://gateway.test").WithMaxRetries(1),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return &http.Response{
				StatusCode: http.StatusOK,
				Status:     "200 OK",
				Header:     http.Header{},
				Body:       io.NopCloser(iotest.ErrReader(errors.New("connection reset"))),
			}, nil
		})),
		WithSleeper((&recordingSleeper{}).sleep),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
}

func TestExecuteUnencodableBody(t *testing.T) {
	client := newTestClient(t, newTestConfig("https://gateway.test"),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			t.Fatal("no request expected")
			return nil, nil
		})),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodPost, Path: "/x", Body: make(chan int)}, nil)
	require.Error(t, err)
	assert.Equal(t, KindOther, Classify(err))
}

func TestExecuteObservesEveryAttempt(t *testing.T) {
	observer := &TestObserver{}
	client := newTestClient(t, newTestConfig("https://gateway.test").WithMaxRetries(2),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("down")
		})),
		WithObserver(observer),
	)

	_ = client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/models"}, nil)

	ops := observer.GetOperations()
	require.Len(t, ops, 3)
	for i, op := range ops {
		assert.Equal(t, "gateway", op.Component)
		assert.Equal(t, "execute", op.Operation)
		assert.Equal(t, http.MethodGet, op.Resource)
		assert.Equal(t, "/models", op.SubResource)
		assert.Error(t, op.Error)
		assert.Equal(t, i, op.Metadata["attempt"])
	}
}

func TestExecuteLogsRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().WarnWithContext(gomock.Any(), "retrying gateway request", gomock.Any(), gomock.Any()).Times(2)

	client := newTestClient(t, newTestConfig("https://gateway.test").WithMaxRetries(2),
		WithHTTPClient(DoerFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("down")
		})),
		WithLogger(mockLogger),
	)

	err := client.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(DefaultConfig())
	assert.ErrorIs(t, err, ErrMissingAPIToken)

	_, err = NewClient(DefaultConfig().WithAPIToken("t").WithBaseURL("not a url"))
	assert.ErrorIs(t, err, ErrInvalidBaseURL)

	_, err = NewClient(DefaultConfig().WithAPIToken("t"), WithHTTPClient(nil))
	require.Error(t, err)
	assert.Equal(t, KindTransport, Classify(err))
	assert.ErrorIs(t, err, ErrMissingHTTPClient)
}

func TestNewClientNormalizesConfig(t *testing.T) {
	client, err := NewClient(&Config{BaseURL: "https://gateway.test//", APIToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.test", client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.cfg.Timeout)
	assert.Equal(t, 0, client.cfg.MaxRetries)
}

func TestBackoffDoubles(t *testing.T) {
	client := newTestClient(t, newTestConfig("https://gateway.test"), WithBackoffUnit(time.Second))
	assert.Equal(t, time.Second, client.backoff(0))
	assert.Equal(t, 2*time.Second, client.backoff(1))
	assert.Equal(t, 4*time.Second, client.backoff(2))
}
