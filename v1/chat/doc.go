// Package chat exposes the gateway's chat completion endpoint.
//
//	svc := chat.NewService(gw)
//
//	resp, err := svc.Create(ctx, chat.CompletionRequest{
//	    Model:    "llama-3.1-8b-instruct",
//	    Messages: []chat.Message{{Role: chat.RoleUser, Content: "Hello"}},
//	})
//
// Streaming returns a *gateway.Stream of chunks; Accumulate folds a stream
// back into a Completion:
//
//	stream, err := svc.CreateStream(ctx, req)
//	if err != nil {
//	    return err
//	}
//	resp, err := chat.Accumulate(stream)
package chat
