package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Aleph-Alpha/gateway-client-go/v1/kafka"
	"github.com/Aleph-Alpha/gateway-client-go/v1/postgres"
	"github.com/Aleph-Alpha/gateway-client-go/v1/rabbit"
	"github.com/Aleph-Alpha/gateway-client-go/v1/tracing"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTraceCmd(root *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "trace",
		Short: "Work with tracing sessions",
	}
	c.AddCommand(newTraceIngestCmd(root))
	return c
}

func newTraceIngestCmd(root *rootOptions) *cobra.Command {
	var sinks []string

	c := &cobra.Command{
		Use:   "ingest <session.json>",
		Short: "Send a recorded session to the gateway or another sink",
		Long: `Send a recorded session to one or more sinks. Sinks other than the
gateway read their settings from the environment: KAFKA_*, RABBITMQ_* or
POSTGRES_*.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var session tracing.Session
			if err := json.Unmarshal(raw, &session); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			if session.ID == "" {
				session.ID = uuid.NewString()
			}

			var (
				targets []tracing.Ingester
				closers []io.Closer
			)
			defer func() {
				for _, c := range closers {
					_ = c.Close()
				}
			}()

			for _, name := range sinks {
				ing, closer, err := root.openSink(cmd, name)
				if err != nil {
					return err
				}
				targets = append(targets, ing)
				closers = append(closers, closer)
			}

			res, err := ingest(cmd.Context(), targets, session)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	c.Flags().StringSliceVar(&sinks, "sink", []string{"gateway"}, "sinks to send to: gateway, kafka, rabbit, postgres")
	return c
}

func ingest(ctx context.Context, targets []tracing.Ingester, session tracing.Session) (*tracing.IngestResult, error) {
	if len(targets) == 1 {
		return targets[0].Ingest(ctx, session)
	}
	return tracing.Fanout(targets...).Ingest(ctx, session)
}

func (o *rootOptions) openSink(cmd *cobra.Command, name string) (tracing.Ingester, io.Closer, error) {
	switch name {
	case "gateway":
		cl, err := o.newClient(cmd)
		if err != nil {
			return nil, nil, err
		}
		return cl.Tracing, cl, nil
	case "kafka":
		pub, err := kafka.NewPublisher(*kafka.NewConfig())
		if err != nil {
			return nil, nil, err
		}
		return pub, pub, nil
	case "rabbit":
		pub, err := rabbit.NewPublisher(rabbit.NewConfig())
		if err != nil {
			return nil, nil, err
		}
		return pub, pub, nil
	case "postgres":
		cfg := postgres.NewConfig()
		cfg.AutoMigrate = true
		archive, err := postgres.NewArchive(cfg)
		if err != nil {
			return nil, nil, err
		}
		return archive, archive, nil
	}
	return nil, nil, fmt.Errorf("unknown sink %q", name)
}
