package kafka

import (
	"context"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"go.uber.org/fx"
)

// FXModule provides a *Publisher. A *Config must be supplied by the
// application. The publisher is closed when the app stops.
//
//	app := fx.New(
//	    fx.Supply(kafka.NewConfig()),
//	    kafka.FXModule,
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(NewPublisherWithDI),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Publisher.
type KafkaParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewPublisherWithDI creates a Publisher from injected dependencies.
func NewPublisherWithDI(p KafkaParams) (*Publisher, error) {
	pub, err := NewPublisher(*p.Config)
	if err != nil {
		return nil, err
	}
	return pub.WithLogger(p.Logger).WithObserver(p.Observer), nil
}

// RegisterKafkaLifecycle closes the publisher on stop.
func RegisterKafkaLifecycle(lc fx.Lifecycle, pub *Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return pub.Close()
		},
	})
}
