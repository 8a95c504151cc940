// Package observability defines the hook through which client packages report
// the operations they perform.
//
// Components such as the gateway transport, the MinIO source and the Qdrant
// backend accept an optional Observer and call it once per completed
// operation with an OperationContext. The metrics package ships a Prometheus
// backed implementation; tests typically use a small recording observer:
//
//	type recorder struct {
//		mu  sync.Mutex
//		ops []observability.OperationContext
//	}
//
//	func (r *recorder) ObserveOperation(ctx observability.OperationContext) {
//		r.mu.Lock()
//		defer r.mu.Unlock()
//		r.ops = append(r.ops, ctx)
//	}
//
// A nil Observer is always allowed and disables reporting.
package observability
