package chat

import "go.uber.org/fx"

// FXModule provides *Service. It requires a gateway.Transport, e.g. from gateway.FXModule.
var FXModule = fx.Module("chat",
	fx.Provide(NewService),
)
