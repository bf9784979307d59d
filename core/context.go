package core

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	m "pxdata/data/models"
)

// Gateway is the persistence surface the service drives.
type Gateway interface {
	Ping(ctx context.Context) error
	GetInstrumentsBySymbol(ctx context.Context, symbol string) ([]*m.Instrument, error)
	AddInstrument(ctx context.Context, ni m.NewInstrument) (int32, error)
	ResolveInstrumentId(ctx context.Context, symbol string) (int32, error)
	GetPriceData(ctx context.Context, symbol string) ([]*m.PriceData, error)
	AddPriceData(ctx context.Context, pd m.NewPriceData) error
}

// Source is the external price source.
type Source interface {
	GetAggregates(ctx context.Context, qs m.QuerySet) (*m.PriceSeries, error)
}

// Exporter writes a fetched series somewhere outside the store and returns
// where it went.
type Exporter interface {
	Dump(series *m.PriceSeries) (string, error)
}

type ServiceContext struct {
	Gateway  Gateway
	Source   Source
	Exporter Exporter // nil disables series dumps
	Logger   *zap.Logger
	Validate *validator.Validate
}

func NewServiceContext(gateway Gateway, source Source, logger *zap.Logger) *ServiceContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceContext{
		Gateway:  gateway,
		Source:   source,
		Logger:   logger,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
