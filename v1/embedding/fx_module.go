package embedding

import "go.uber.org/fx"

// FXModule wires the embedding service into Fx.
//
// It provides:
//   - *Service  (NewService, requires a gateway.Transport)
//   - Provider  (the same *Service)
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewService,
		fx.Annotate(
			func(s *Service) Provider { return s },
			fx.As(new(Provider)),
		),
	),
)
