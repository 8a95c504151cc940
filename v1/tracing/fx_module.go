package tracing

import "go.uber.org/fx"

// FXModule provides *Service and the Ingester interface. It requires a
// gateway.Transport.
var FXModule = fx.Module("tracing",
	fx.Provide(
		NewService,
		fx.Annotate(
			func(s *Service) Ingester { return s },
			fx.As(new(Ingester)),
		),
	),
)
