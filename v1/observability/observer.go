package observability

import "time"

// Observer receives a notification for every completed operation of an
// instrumented component. Implementations must be safe for concurrent use
// and must not block: they are called inline on the request path.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "gateway" or "minio".
	Component string

	// Operation is the action performed, e.g. "execute" or "stream".
	Operation string

	// Resource is the primary target (HTTP method, bucket, collection).
	Resource string

	// SubResource is the secondary target (request path, object key).
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the operation's failure, nil on success.
	Error error

	// Size is the payload size in bytes, 0 when unknown.
	Size int64

	// Metadata carries component-specific details such as the attempt number
	// or the HTTP status code.
	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans a single observation out to several observers. Nil entries are skipped.
func Multi(observers ...Observer) Observer {
	filtered := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	return ObserverFunc(func(ctx OperationContext) {
		for _, o := range filtered {
			o.ObserveOperation(ctx)
		}
	})
}
