package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"go.uber.org/fx"
)

const monitorInterval = 10 * time.Second

// FXModule provides the session *Archive. Config must be supplied by the
// application. While the app runs the archive pings the database and
// reconnects on failure.
var FXModule = fx.Module("postgres",
	fx.Provide(NewArchiveWithDI),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies needed to create an Archive.
type PostgresParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewArchiveWithDI creates an Archive from injected dependencies.
func NewArchiveWithDI(params PostgresParams) (*Archive, error) {
	archive, err := NewArchive(params.Config)
	if err != nil {
		return nil, err
	}
	return archive.WithLogger(params.Logger).WithObserver(params.Observer), nil
}

// PostgresLifeCycleParams groups the dependencies needed for lifecycle management.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Archive   *Archive
}

// RegisterPostgresLifecycle starts the connection monitor and the
// reconnection loop on start, and stops both and closes the pool on stop.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.Archive.MonitorConnection(ctx, monitorInterval)
			}()
			go func() {
				defer wg.Done()
				params.Archive.RetryConnection(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return params.Archive.Close()
		},
	})
}
