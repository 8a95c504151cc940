package tracing

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type fanout []Ingester

// Fanout sends every session to all targets concurrently. The result of the
// first target is returned. Any failure fails the whole ingest and the
// errors are joined, so a Recorder will resend to every target; sinks
// should treat session and event IDs as idempotency keys.
//
//	rec := tracing.NewRecorder(tracing.Fanout(client.Tracing, kafkaSink), "agent-run")
func Fanout(targets ...Ingester) Ingester {
	out := make(fanout, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (f fanout) Ingest(ctx context.Context, session Session) (*IngestResult, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return nil, errors.New("tracing: fanout has no targets")
	}

	results := make([]*IngestResult, len(f))
	errs := make([]error, len(f))

	var g errgroup.Group
	for i, target := range f {
		g.Go(func() error {
			res, err := target.Ingest(ctx, session)
			if err != nil {
				errs[i] = fmt.Errorf("target [%d]: %w", i, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results[0], nil
}
