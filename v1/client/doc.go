// Package client is the single entry point to the gateway: one transport
// shared by the chat, embeddings, vectors, files and tracing services.
//
//	c, err := client.New(gateway.DefaultConfig().WithAPIToken(token))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	vectors, err := c.Embeddings.CreateEmbeddings(ctx, "bge-m3", "hello")
//
//	rec := c.NewRecorder("support-agent")
//	run := rec.RunStarted("answer", question)
//	...
//	_, err = rec.Flush(ctx)
//
// With Fx, supply a *gateway.Config and include FXModule; the individual
// services and *Client become injectable.
package client
