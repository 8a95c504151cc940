package minio

import (
	"github.com/Aleph-Alpha/gateway-client-go/v1/files"
	"github.com/Aleph-Alpha/gateway-client-go/v1/observability"
	"go.uber.org/fx"
)

// FXModule provides a *Source and binds it to files.ObjectSource.
// A *Config must be supplied by the application.
//
//	app := fx.New(
//	    fx.Supply(minio.NewConfig()),
//	    minio.FXModule,
//	)
var FXModule = fx.Module("minio",
	fx.Provide(
		NewSourceWithDI,
		fx.Annotate(
			func(s *Source) files.ObjectSource { return s },
			fx.As(new(files.ObjectSource)),
		),
	),
)

// MinioParams groups the dependencies needed to create a Source.
type MinioParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewSourceWithDI creates a Source from injected dependencies.
func NewSourceWithDI(p MinioParams) (*Source, error) {
	src, err := NewSource(*p.Config)
	if err != nil {
		return nil, err
	}
	return src.WithLogger(p.Logger).WithObserver(p.Observer), nil
}
