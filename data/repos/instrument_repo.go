package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	m "pxdata/data/models"
	q "pxdata/data/queries"
)

// GetInstrumentsBySymbol returns every row registered under symbol. The
// symbol is not unique at the schema level, so this is a collection.
func (pg *Postgres) GetInstrumentsBySymbol(ctx context.Context, symbol string) ([]*m.Instrument, error) {
	args := pgx.NamedArgs{
		"symbol": symbol,
	}

	res, err := Query[m.Instrument](ctx, pg, q.Get(q.QueryHelper.Select.InstrumentsBySymbol), args)
	if err != nil {
		return nil, fmt.Errorf("unable to query instruments by symbol (%s): %w", symbol, err)
	}
	return res, nil
}

// AddInstrument inserts a new instrument and returns the id the store assigned.
// Duplicate symbols are not prevented here.
func (pg *Postgres) AddInstrument(ctx context.Context, ni m.NewInstrument) (int32, error) {
	ctx, cancel := pg.statementContext(ctx)
	defer cancel()

	args := pgx.NamedArgs{
		"name":     ni.Name,
		"symbol":   ni.Symbol,
		"type":     ni.Type,
		"currency": ni.Currency,
	}

	var id int32
	if err := pg.db.QueryRow(ctx, q.Get(q.QueryHelper.Insert.Instrument), args).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting instrument %s: %w", ni.Symbol, classify(err))
	}

	// a re-registered symbol now resolves to the new row
	pg.ids.Del(ni.Symbol)

	return id, nil
}

// ResolveInstrumentId maps symbol to its instrument id, the latest registered
// row wins when a symbol was registered twice. A missing symbol is reported
// as ErrInstrumentNotFound, never as a zero id.
func (pg *Postgres) ResolveInstrumentId(ctx context.Context, symbol string) (int32, error) {
	if id, ok := pg.ids.Get(symbol); ok {
		return id, nil
	}

	ctx, cancel := pg.statementContext(ctx)
	defer cancel()

	var id int32
	err := pg.db.QueryRow(ctx, q.Get(q.QueryHelper.Select.InstrumentIdBySymbol), pgx.NamedArgs{"symbol": symbol}).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("symbol %s: %w", symbol, ErrInstrumentNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("unable to resolve instrument id for symbol (%s): %w", symbol, err)
	}

	pg.ids.Set(symbol, id)
	return id, nil
}
