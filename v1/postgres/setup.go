package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Archive stores tracing sessions in PostgreSQL. It implements
// tracing.Ingester and reads sessions back with Load and ListSessions.
//
// The active *gorm.DB is held in an atomic pointer and swapped during
// reconnection without blocking readers.
type Archive struct {
	cfg             Config
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once

	observer observability.Observer
	logger   Logger
}

// NewArchive connects to PostgreSQL and, when cfg.AutoMigrate is set,
// migrates the archive tables.
func NewArchive(cfg Config) (*Archive, error) {
	conn, err := connectToPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to connect: %w", err)
	}

	a := newArchive(cfg, conn)
	if cfg.AutoMigrate {
		if err := a.Migrate(context.Background()); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	return a, nil
}

func newArchive(cfg Config, db *gorm.DB) *Archive {
	a := &Archive{
		cfg:             cfg,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	a.client.Store(db)
	return a
}

// WithObserver attaches an observer for archive operations.
func (a *Archive) WithObserver(observer observability.Observer) *Archive {
	a.observer = observer
	return a
}

// WithLogger attaches a context-aware logger.
func (a *Archive) WithLogger(logger Logger) *Archive {
	a.logger = logger
	return a
}

// DB returns the current connection.
func (a *Archive) DB() *gorm.DB {
	return a.client.Load()
}

// Migrate creates or updates the sessions and events tables.
func (a *Archive) Migrate(ctx context.Context) error {
	if err := a.DB().WithContext(ctx).AutoMigrate(&sessionRecord{}, &eventRecord{}); err != nil {
		return fmt.Errorf("postgres: migration failed: %w", err)
	}
	return nil
}

// Close stops the connection monitor and closes the pool.
func (a *Archive) Close() error {
	a.closeShutdownOnce.Do(func() {
		close(a.shutdownSignal)
	})

	sqlDB, err := a.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// connectToPostgres opens the gorm connection and configures the pool.
func connectToPostgres(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		cfg.Connection.SSLMode)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 10
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	return database, nil
}

// MonitorConnection pings the database every interval and signals
// RetryConnection when a ping fails. It returns when ctx is done or the
// archive is closed.
func (a *Archive) MonitorConnection(ctx context.Context, interval time.Duration) {
	defer a.closeRetryChanOnce.Do(func() {
		close(a.retryChanSignal)
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.HealthCheck(ctx); err != nil {
				select {
				case a.retryChanSignal <- err:
				default:
				}
			}
		}
	}
}

// RetryConnection reconnects after MonitorConnection reported a failure,
// retrying once per second until it succeeds.
func (a *Archive) RetryConnection(ctx context.Context) {
	for {
		select {
		case <-a.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case cause, ok := <-a.retryChanSignal:
			if !ok {
				return
			}
			a.logWarn(ctx, "postgres health check failed, reconnecting", cause)
			a.reconnect(ctx)
		}
	}
}

func (a *Archive) reconnect(ctx context.Context) {
	for {
		conn, err := connectToPostgres(a.cfg)
		if err == nil {
			old := a.client.Swap(conn)
			if sqlDB, err := old.DB(); err == nil {
				_ = sqlDB.Close()
			}
			a.logInfo(ctx, "reconnected to postgres")
			return
		}
		a.logWarn(ctx, "postgres reconnection failed", err)

		select {
		case <-a.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

// HealthCheck pings the database with a 5 second timeout.
func (a *Archive) HealthCheck(ctx context.Context) error {
	db, err := a.DB().DB()
	if err != nil {
		return fmt.Errorf("postgres: failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}

func (a *Archive) logInfo(ctx context.Context, msg string) {
	if a.logger != nil {
		a.logger.InfoWithContext(ctx, msg, nil)
	}
}

func (a *Archive) logWarn(ctx context.Context, msg string, err error) {
	if a.logger != nil {
		a.logger.WarnWithContext(ctx, msg, err)
	}
}
