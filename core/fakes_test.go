package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	m "pxdata/data/models"
	"pxdata/data/repos"
)

type fakeGateway struct {
	mu          sync.Mutex
	ids         map[string]int32
	instruments []*m.Instrument
	prices      map[string][]*m.PriceData
	written     []m.NewPriceData
	writes      int
	failWrite   map[int]error // keyed by write attempt
	addErr      error
	pingErr     error
	nextId      int32
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		ids:       map[string]int32{},
		prices:    map[string][]*m.PriceData{},
		failWrite: map[int]error{},
		nextId:    1,
	}
}

func (g *fakeGateway) withInstrument(symbol string, id int32) *fakeGateway {
	g.ids[symbol] = id
	g.instruments = append(g.instruments, &m.Instrument{Id: id, Name: symbol + " Inc", Symbol: symbol, Type: "Equity", Currency: "USD"})
	return g
}

func (g *fakeGateway) Ping(ctx context.Context) error {
	return g.pingErr
}

func (g *fakeGateway) GetInstrumentsBySymbol(ctx context.Context, symbol string) ([]*m.Instrument, error) {
	var res []*m.Instrument
	for _, i := range g.instruments {
		if i.Symbol == symbol {
			res = append(res, i)
		}
	}
	return res, nil
}

func (g *fakeGateway) AddInstrument(ctx context.Context, ni m.NewInstrument) (int32, error) {
	if g.addErr != nil {
		return 0, g.addErr
	}
	id := g.nextId
	g.nextId++
	g.withInstrument(ni.Symbol, id)
	return id, nil
}

func (g *fakeGateway) ResolveInstrumentId(ctx context.Context, symbol string) (int32, error) {
	id, ok := g.ids[symbol]
	if !ok {
		return 0, fmt.Errorf("symbol %s: %w", symbol, repos.ErrInstrumentNotFound)
	}
	return id, nil
}

func (g *fakeGateway) GetPriceData(ctx context.Context, symbol string) ([]*m.PriceData, error) {
	return g.prices[symbol], nil
}

func (g *fakeGateway) AddPriceData(ctx context.Context, pd m.NewPriceData) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	attempt := g.writes
	g.writes++

	id, err := g.ResolveInstrumentId(ctx, pd.Symbol)
	if err != nil {
		return err
	}
	if err := g.failWrite[attempt]; err != nil {
		return err
	}

	g.written = append(g.written, pd)
	g.prices[pd.Symbol] = append(g.prices[pd.Symbol], &m.PriceData{
		Id:           int32(len(g.written)),
		InstrumentId: id,
		Date:         pd.Date,
		Open:         pd.Open,
		Close:        pd.Close,
		High:         pd.High,
		Low:          pd.Low,
		Volume:       pd.Volume,
	})
	return nil
}

type fakeSource struct {
	series *m.PriceSeries
	err    error
	calls  []m.QuerySet
}

func (s *fakeSource) GetAggregates(ctx context.Context, qs m.QuerySet) (*m.PriceSeries, error) {
	s.calls = append(s.calls, qs)
	if s.err != nil {
		return nil, s.err
	}
	series := *s.series
	series.Query = qs
	return &series, nil
}

type fakeExporter struct {
	dumped []*m.PriceSeries
	err    error
}

func (e *fakeExporter) Dump(series *m.PriceSeries) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.dumped = append(e.dumped, series)
	return "/tmp/" + series.Ticker + ".json", nil
}

var errWriteFailed = errors.New("write failed")

// seriesWithBars builds n daily bars starting 2023-01-09 05:00 UTC.
func seriesWithBars(ticker string, n int) *m.PriceSeries {
	bars := make([]m.PriceBar, n)
	for i := range n {
		bars[i] = m.PriceBar{
			Volume:          1000.75 + float64(i),
			Open:            100 + float64(i),
			Close:           101 + float64(i),
			High:            102 + float64(i),
			Low:             99 + float64(i),
			TimestampMillis: 1673240400000 + int64(i)*86400000,
		}
	}
	return &m.PriceSeries{Ticker: ticker, Bars: bars}
}
