package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	apiErr := newAPIError(http.StatusNotFound, "404 Not Found", []byte(`{"error":{"message":"no such index","type":"not_found"}}`))
	assert.Equal(t, "no such index", apiErr.Message)
	assert.Equal(t, "not_found", apiErr.Type)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"error": map[string]any{"message": "no such index", "type": "not_found"}}, apiErr.Body)

	apiErr = newAPIError(http.StatusServiceUnavailable, "503 Service Unavailable", nil)
	assert.Equal(t, "HTTP 503: Service Unavailable", apiErr.Message)
	assert.Nil(t, apiErr.Body)

	apiErr = newAPIError(http.StatusTeapot, "", []byte(`["not", "an", "object"]`))
	assert.Equal(t, "HTTP 418: I'm a teapot", apiErr.Message)
	assert.NotNil(t, apiErr.Body)
}

func TestAPIErrorTransportView(t *testing.T) {
	apiErr := &APIError{Message: "bad", StatusCode: 400, Body: map[string]any{"error": "bad"}}
	te := apiErr.Transport()
	assert.Equal(t, "bad", te.Message)
	assert.Equal(t, 400, te.StatusCode)
	assert.Equal(t, apiErr.Body, te.Response)
}

func TestClassify(t *testing.T) {
	apiErr := &APIError{Message: "bad", StatusCode: 400}
	transportErr := &TransportError{Message: "reset"}

	assert.Equal(t, KindAPI, Classify(apiErr))
	assert.Equal(t, KindAPI, Classify(fmt.Errorf("chat: %w", apiErr)))
	assert.Equal(t, KindTransport, Classify(transportErr))
	assert.Equal(t, KindOther, Classify(errors.New("plain")))
	assert.Equal(t, KindOther, Classify(nil))

	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&TransportError{Message: "reset"}))
	assert.True(t, IsRetryable(&TransportError{Message: "slow", Timeout: true}))
	assert.False(t, IsRetryable(&TransportError{Message: "stop", Cancelled: true}))
	assert.False(t, IsRetryable(&APIError{Message: "bad", StatusCode: 500}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestNewTransportErrorPrecedence(t *testing.T) {
	caller, cancel := context.WithCancel(context.Background())
	attempt, attemptCancel := context.WithTimeout(caller, 0)
	defer attemptCancel()
	<-attempt.Done()

	te := newTransportError(caller, attempt, "request failed", attempt.Err())
	assert.True(t, te.Timeout)
	assert.False(t, te.Cancelled)

	cancel()
	te = newTransportError(caller, attempt, "request failed", attempt.Err())
	assert.True(t, te.Cancelled)
	assert.False(t, te.Timeout)
	assert.ErrorIs(t, te, context.Canceled)
	assert.ErrorIs(t, te, context.DeadlineExceeded)
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "gateway: api error 429 (rate_limit): slow down", (&APIError{Message: "slow down", StatusCode: 429, Type: "rate_limit"}).Error())
	assert.Equal(t, "gateway: api error 400: bad", (&APIError{Message: "bad", StatusCode: 400}).Error())
	assert.Equal(t, "gateway: reset", (&TransportError{Message: "reset"}).Error())
	assert.Equal(t, "gateway: short read (status 200)", (&TransportError{Message: "short read", StatusCode: 200}).Error())
}
