package files

import "go.uber.org/fx"

// FXModule provides *Service. It requires a gateway.Transport.
var FXModule = fx.Module("files",
	fx.Provide(NewService),
)
