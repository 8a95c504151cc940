// Package embedding provides typed access to the gateway's embeddings
// endpoint.
//
// # Overview
//
// A Service is built on top of any gateway.Transport, usually the shared
// *gateway.Client:
//
//	svc := embedding.NewService(gw)
//
// Most callers only need vectors:
//
//	vectors, err := svc.CreateEmbeddings(ctx, "bge-m3", "hello", "world")
//
// The full request and response shapes are available through Create:
//
//	resp, err := svc.Create(ctx, embedding.Request{
//	    Model: "bge-m3",
//	    Input: []string{"hello"},
//	})
//
// # Errors
//
// CreateEmbeddings validates its input before any I/O and returns
// ErrNoInput or ErrMissingModel. Failures from the gateway are returned
// unchanged, so callers can use errors.As with *gateway.APIError or
// *gateway.TransportError.
//
// # Dependency Injection (Fx)
//
//	app := fx.New(
//	    gateway.FXModule,
//	    embedding.FXModule,
//	    fx.Invoke(func(p embedding.Provider) {
//	        // Use embeddings
//	    }),
//	)
package embedding
