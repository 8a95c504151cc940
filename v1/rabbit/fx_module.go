package rabbit

import (
	"context"

	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"go.uber.org/fx"
)

// FXModule provides a *Publisher and closes it when the app stops. The
// application supplies the Config.
//
//	app := fx.New(
//	    fx.Supply(rabbit.NewConfig()),
//	    rabbit.FXModule,
//	)
var FXModule = fx.Module("rabbit",
	fx.Provide(NewPublisherWithDI),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RabbitParams groups the dependencies needed to create a Publisher
type RabbitParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewPublisherWithDI creates a Publisher from injected dependencies.
func NewPublisherWithDI(params RabbitParams) (*Publisher, error) {
	pub, err := NewPublisher(params.Config)
	if err != nil {
		return nil, err
	}
	return pub.WithLogger(params.Logger).WithObserver(params.Observer), nil
}

// RegisterRabbitLifecycle closes the publisher on stop.
func RegisterRabbitLifecycle(lc fx.Lifecycle, pub *Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if pub.logger != nil {
				pub.logger.InfoWithContext(ctx, "closing RabbitMQ publisher", nil)
			}
			return pub.Close()
		},
	})
}
