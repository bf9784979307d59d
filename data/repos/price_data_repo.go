package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	m "pxdata/data/models"
	q "pxdata/data/queries"
)

// GetPriceData returns the stored bars for symbol ordered by date. An unknown
// symbol yields an empty slice.
func (pg *Postgres) GetPriceData(ctx context.Context, symbol string) ([]*m.PriceData, error) {
	args := pgx.NamedArgs{
		"symbol": symbol,
	}

	res, err := Query[m.PriceData](ctx, pg, q.Get(q.QueryHelper.Select.PriceDataBySymbol), args)
	if err != nil {
		return nil, fmt.Errorf("unable to query price data by symbol (%s): %w", symbol, err)
	}
	return res, nil
}

// AddPriceData resolves the symbol and writes one row. Each call is its own
// statement, a failure here says nothing about any other bar.
func (pg *Postgres) AddPriceData(ctx context.Context, pd m.NewPriceData) error {
	instrumentId, err := pg.ResolveInstrumentId(ctx, pd.Symbol)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"instrument_id": instrumentId,
		"px_date":       pd.Date,
		"open_px":       pd.Open,
		"close_px":      pd.Close,
		"high_px":       pd.High,
		"low_px":        pd.Low,
		"volume":        pd.Volume,
	}

	if _, err := Exec(ctx, pg, q.Get(q.QueryHelper.Insert.PriceData), args); err != nil {
		return fmt.Errorf("error inserting price data for %s on %s: %w", pd.Symbol, pd.Date.Format("2006-01-02"), err)
	}
	return nil
}
