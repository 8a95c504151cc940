package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
)

// Client issues calls against the gateway. It is safe for concurrent use:
// nothing is mutated after NewClient returns.
type Client struct {
	cfg         Config
	doer        Doer
	logger      Logger
	observer    observability.Observer
	tracer      Tracer
	sleep       Sleeper
	backoffUnit time.Duration
}

// Option customizes a Client at construction time.
type Option func(*options)

type options struct {
	doer        Doer
	doerSet     bool
	logger      Logger
	observer    observability.Observer
	tracer      Tracer
	sleep       Sleeper
	backoffUnit time.Duration
}

// WithHTTPClient injects the HTTP primitive used for every call. Passing nil
// makes NewClient fail with ErrMissingHTTPClient.
func WithHTTPClient(d Doer) Option {
	return func(o *options) {
		o.doer = d
		o.doerSet = true
	}
}

// WithLogger attaches a logger for retries, skipped stream frames and
// lifecycle events. Errors returned to the caller are not logged.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver attaches an observer that is notified of every attempt,
// stream open and skipped stream frame.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithTracer attaches a tracer. Each call runs in its own span and the
// span's propagation headers are sent with the request.
func WithTracer(t Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithSleeper replaces the function used to wait between retries.
func WithSleeper(s Sleeper) Option {
	return func(o *options) { o.sleep = s }
}

// WithBackoffUnit sets the base of the exponential backoff: the wait after
// attempt n is 2^n * unit.
func WithBackoffUnit(d time.Duration) Option {
	return func(o *options) { o.backoffUnit = d }
}

// NewClient validates cfg and returns a ready Client.
//
// Example:
//
//	gw, err := gateway.NewClient(gateway.NewConfig(),
//	    gateway.WithLogger(log),
//	    gateway.WithObserver(metrics),
//	)
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		sleep:       sleepContext,
		backoffUnit: DefaultBackoffUnit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	doer := o.doer
	if !o.doerSet {
		doer = &http.Client{}
	}
	if doer == nil {
		return nil, &TransportError{
			Message: "no HTTP client available",
			Cause:   ErrMissingHTTPClient,
		}
	}
	if o.sleep == nil {
		o.sleep = sleepContext
	}
	if o.backoffUnit < 0 {
		o.backoffUnit = 0
	}

	return &Client{
		cfg:         cfg.normalized(),
		doer:        doer,
		logger:      o.logger,
		observer:    o.observer,
		tracer:      o.tracer,
		sleep:       o.sleep,
		backoffUnit: o.backoffUnit,
	}, nil
}

// BaseURL returns the normalized base URL the client targets.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Close releases idle connections held by the underlying HTTP primitive.
func (c *Client) Close() error {
	if closer, ok := c.doer.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
	return nil
}

// sleepContext waits for d unless ctx is done first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
