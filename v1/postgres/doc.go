// Package postgres archives tracing sessions in PostgreSQL using gorm.
//
// An Archive implements tracing.Ingester, so recorders can flush to it
// directly or alongside the gateway through tracing.Fanout:
//
//	archive, err := postgres.NewArchive(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "postgres",
//			DbName:   "traces",
//			SSLMode:  "disable",
//		},
//		AutoMigrate: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer archive.Close()
//
//	rec := tracing.NewRecorder(tracing.Fanout(client.Tracing, archive), "agent-run")
//
// Sessions live in tracing_sessions and their events in tracing_events.
// Ingest is idempotent per event ID: a recorder that flushes the same
// session several times appends only the new events. Load, ListSessions
// and Delete read and prune the archive.
//
// Under fx, FXModule runs a connection monitor that pings the database
// every 10 seconds and swaps in a fresh connection pool after a failure.
package postgres
