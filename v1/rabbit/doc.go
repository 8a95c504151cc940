// Package rabbit publishes tracing sessions to a RabbitMQ exchange.
//
// A Publisher implements tracing.Ingester. Each session is published as one
// persistent JSON message whose MessageId is the session ID, and Ingest
// returns only after the broker confirmed the publish:
//
//	pub, err := rabbit.NewPublisher(rabbit.Config{
//		Connection: rabbit.Connection{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
//		Channel:    rabbit.Channel{ExchangeName: "traces", QueueName: "traces", DeclareTopology: true},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pub.Close()
//
//	rec := tracing.NewRecorder(pub, "agent-run")
//
// Broker errors are mapped onto ErrAccessDenied, ErrExchangeNotFound,
// ErrPreconditionFailed and ErrChannelClosed; use errors.Is to inspect them.
package rabbit
