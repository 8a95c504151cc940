package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// APIPrefix is the path prefix shared by every client-facing gateway resource.
const APIPrefix = "/api/client/v1"

// Request describes one logical call relative to the client's base URL.
type Request struct {
	// Method is the HTTP method, e.g. http.MethodPost.
	Method string

	// Path is joined to the base URL; leading slashes are ignored.
	Path string

	// Body is JSON-encoded when non-nil. A nil Body sends no body.
	Body any

	// Query parameters. Nil values and nil pointers are omitted entirely.
	Query map[string]any

	// Headers are applied last and override every default header.
	Headers map[string]string
}

// prepared is a Request resolved against the client configuration. It is
// built once per call so the body is encoded only once across retries.
type prepared struct {
	method  string
	path    string
	url     string
	body    []byte
	headers http.Header
}

func (c *Client) prepare(ctx context.Context, req Request, accept string) (*prepared, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	p := &prepared{
		method:  method,
		path:    req.Path,
		url:     c.resolveURL(req.Path, req.Query),
		headers: make(http.Header),
	}

	if req.Body != nil {
		body, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("gateway: failed to encode request body: %w", err)
		}
		p.body = body
	}

	p.headers.Set("Content-Type", "application/json")
	p.headers.Set("Authorization", "Bearer "+c.cfg.APIToken)
	p.headers.Set("User-Agent", userAgent)
	if accept != "" {
		p.headers.Set("Accept", accept)
	}
	if c.tracer != nil {
		for k, v := range c.tracer.GetCarrier(ctx) {
			p.headers.Set(k, v)
		}
	}
	for k, v := range req.Headers {
		p.headers.Set(k, v)
	}

	return p, nil
}

// newHTTPRequest builds a fresh *http.Request for one attempt.
func (p *prepared) newHTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if p.body != nil {
		body = bytes.NewReader(p.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, p.method, p.url, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header = p.headers.Clone()
	return httpReq, nil
}

// resolveURL joins path to the base URL with exactly one slash and appends
// the encoded query.
func (c *Client) resolveURL(path string, query map[string]any) string {
	u := c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/")
	if values := encodeQuery(query); len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

// encodeQuery converts query parameters to url.Values, skipping undefined values.
func encodeQuery(query map[string]any) url.Values {
	values := url.Values{}
	for key, raw := range query {
		if s, ok := formatQueryValue(raw); ok {
			values.Set(key, s)
		}
	}
	return values
}

func formatQueryValue(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}

	v := reflect.ValueOf(raw)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	switch val := v.Interface().(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case time.Time:
		return val.Format(time.RFC3339Nano), true
	case time.Duration:
		return strconv.FormatInt(val.Milliseconds(), 10), true
	case fmt.Stringer:
		return val.String(), true
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), true
	default:
		return fmt.Sprint(v.Interface()), true
	}
}
