// Package tracing uploads agent execution traces to the gateway.
//
// A trace is a Session: an ID, a name and an ordered list of Events (run
// started, LLM call, tool call, run finished, error). Service.Ingest sends
// one session to POST /tracing/sessions.
//
// Most callers use a Recorder, which agent-framework callbacks feed as the
// run progresses:
//
//	rec := tracing.NewRecorder(svc, "support-agent")
//	run := rec.RunStarted("answer", question)
//	rec.LLMCall(tracing.LLMCall{ParentID: run, Model: "llama-3.1-8b-instruct", Output: answer})
//	rec.RunFinished(run, answer)
//	if _, err := rec.Flush(ctx); err != nil {
//	    // events are kept; Flush again later
//	}
//
// Every event gets a UUID and a UTC timestamp. All flushes of one Recorder
// share its session ID.
//
// Anything implementing Ingester can receive sessions. The kafka, rabbit and
// postgres packages provide sinks, and Fanout sends each session to several
// of them at once:
//
//	rec := tracing.NewRecorder(tracing.Fanout(svc, archive), "support-agent")
package tracing
