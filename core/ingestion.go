package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	c "pxdata/api"
	ex "pxdata/data/extensions"
	m "pxdata/data/models"
	sm "pxdata/models"
)

// FetchSeries runs one aggregates request. The series is dumped through the
// exporter when one is configured; a failed dump is only logged.
func (sc *ServiceContext) FetchSeries(ctx context.Context, qs m.QuerySet) (*m.PriceSeries, error) {
	qs.Ticker = strings.TrimSpace(qs.Ticker)
	if ts, ok := c.ParseTimespan(qs.Timespan); ok {
		qs.Timespan = ts.Path()
	}

	if err := sc.validate("query", qs); err != nil {
		return nil, err
	}

	from, err := ex.ParseShort(qs.DateFrom)
	if err != nil {
		return nil, invalid("query", err)
	}
	to, err := ex.ParseShort(qs.DateTo)
	if err != nil {
		return nil, invalid("query", err)
	}
	if from.After(to) {
		return nil, invalid("query", fmt.Errorf("dateFrom %s is after dateTo %s", qs.DateFrom, qs.DateTo))
	}

	series, err := sc.Source.GetAggregates(ctx, qs)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", qs.Ticker, err)
	}

	sc.Logger.Info("fetched series",
		zap.String("ticker", series.Ticker),
		zap.String("from", qs.DateFrom),
		zap.String("to", qs.DateTo),
		zap.Int("bars", len(series.Bars)))

	if sc.Exporter != nil {
		if path, err := sc.Exporter.Dump(series); err != nil {
			sc.Logger.Warn("unable to dump series", zap.String("ticker", series.Ticker), zap.Error(err))
		} else {
			sc.Logger.Debug("dumped series", zap.String("path", path))
		}
	}

	return series, nil
}

// Ingest writes every bar of series under symbol. Bars are written one at a
// time in source order and a failing bar never stops the ones after it. The
// only error returned is the inability to start, in which case nothing was
// attempted.
func (sc *ServiceContext) Ingest(ctx context.Context, series *m.PriceSeries, symbol string) (m.IngestReport, error) {
	symbol = strings.TrimSpace(symbol)
	report := m.IngestReport{Symbol: symbol}

	if series == nil {
		return report, invalid("series", fmt.Errorf("no series to ingest"))
	}
	if symbol == "" {
		return report, invalid("symbol", fmt.Errorf("symbol is required"))
	}

	if _, err := sc.Gateway.ResolveInstrumentId(ctx, symbol); err != nil {
		return report, fmt.Errorf("unable to ingest %s: %w", symbol, err)
	}

	if !ex.AreEqual(series.Ticker, symbol) {
		sc.Logger.Debug("ingesting series under another symbol", zap.String("ticker", series.Ticker), zap.String("symbol", symbol))
	}

	for i, bar := range series.Bars {
		report.Attempted++

		pd := bar.ToPriceData(symbol)
		if err := sc.Gateway.AddPriceData(ctx, pd); err != nil {
			report.Failures = append(report.Failures, m.BarFailure{Index: i, Date: pd.Date, Error: err.Error()})
			sc.Logger.Warn("bar not written",
				zap.String("symbol", symbol),
				zap.Int("index", i),
				zap.String("date", ex.FmtShort(pd.Date)),
				zap.Error(err))
			continue
		}

		report.Succeeded++
	}

	sc.Logger.Info("ingested series",
		zap.String("symbol", symbol),
		zap.Int("attempted", report.Attempted),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed()))

	return report, nil
}

// IngestSymbol is FetchSeries followed by Ingest.
func (sc *ServiceContext) IngestSymbol(ctx context.Context, req sm.IngestRequest) (m.IngestReport, error) {
	if err := sc.Validate.Var(req.Symbol, "omitempty,max=16"); err != nil {
		return m.IngestReport{Symbol: req.TargetSymbol()}, invalid("symbol", err)
	}

	series, err := sc.FetchSeries(ctx, req.Query)
	if err != nil {
		return m.IngestReport{Symbol: req.TargetSymbol()}, err
	}

	return sc.Ingest(ctx, series, req.TargetSymbol())
}

func (sc *ServiceContext) ListInstruments(ctx context.Context, symbol string) ([]*m.Instrument, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}

	res, err := sc.Gateway.GetInstrumentsBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []*m.Instrument{}
	}
	return res, nil
}

func (sc *ServiceContext) ListPrices(ctx context.Context, symbol string) ([]*m.PriceData, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}

	res, err := sc.Gateway.GetPriceData(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []*m.PriceData{}
	}
	return res, nil
}

func (sc *ServiceContext) AddInstrument(ctx context.Context, ni m.NewInstrument) (int32, error) {
	ni.Symbol = strings.TrimSpace(ni.Symbol)
	if err := sc.validate("instrument", ni); err != nil {
		return 0, err
	}

	id, err := sc.Gateway.AddInstrument(ctx, ni)
	if err != nil {
		return 0, err
	}

	sc.Logger.Info("registered instrument", zap.String("symbol", ni.Symbol), zap.Int32("id", id))
	return id, nil
}

// AddPriceBar writes a single bar, the date is floored to its UTC day.
func (sc *ServiceContext) AddPriceBar(ctx context.Context, pd m.NewPriceData) error {
	pd.Symbol = strings.TrimSpace(pd.Symbol)
	if err := sc.validate("price data", pd); err != nil {
		return err
	}

	d := pd.Date.UTC()
	pd.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	return sc.Gateway.AddPriceData(ctx, pd)
}

func (sc *ServiceContext) Ping(ctx context.Context) error {
	return sc.Gateway.Ping(ctx)
}

func requireSymbol(symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", invalid("symbol", fmt.Errorf("symbol is required"))
	}
	return symbol, nil
}
