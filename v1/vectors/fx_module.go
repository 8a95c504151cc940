package vectors

import "go.uber.org/fx"

// FXModule provides *Service. It requires a gateway.Transport.
//
// A vectordb.Service backed by the gateway needs a provider ID and is
// therefore not provided here; build one with NewStore:
//
//	fx.Provide(func(svc *vectors.Service) vectordb.Service {
//	    return vectors.NewStore(svc, os.Getenv("VECTOR_PROVIDER_ID"))
//	})
var FXModule = fx.Module("vectors",
	fx.Provide(NewService),
)
