// Package kafka publishes tracing sessions to an Apache Kafka topic.
//
// A Publisher implements tracing.Ingester, so it can stand in for the
// gateway tracing endpoint or run next to it through tracing.Fanout:
//
//	pub, err := kafka.NewPublisher(kafka.Config{
//	    Brokers: []string{"localhost:9092"},
//	    Topic:   "agent-traces",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pub.Close()
//
//	rec := tracing.NewRecorder(tracing.Fanout(client.Tracing, pub), "agent-run")
//
// Each session becomes one message: the key is the session ID, the value is
// the session JSON, and the headers carry the content type and the event
// count. The writer hashes keys onto partitions, so all flushes of one
// session stay ordered.
//
// TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) are configured through
// Config.TLS and Config.SASL.
package kafka
