package core

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	ex "pxdata/data/extensions"
	m "pxdata/data/models"
	sm "pxdata/models"
)

// PriceStatistics summarises the stored history of symbol.
func (sc *ServiceContext) PriceStatistics(ctx context.Context, symbol string) (sm.PriceStatistics, error) {
	rows, err := sc.ListPrices(ctx, symbol)
	if err != nil {
		return sm.PriceStatistics{}, err
	}

	res := GetPriceStatistics(rows)
	res.Symbol = symbol
	return res, nil
}

// GetPriceStatistics expects rows in date order. Histories too short to
// produce a return leave the return fields at zero.
func GetPriceStatistics(rows []*m.PriceData) sm.PriceStatistics {
	var res sm.PriceStatistics

	rows = ex.FilterMultiplePtr(rows, func(pd *m.PriceData) bool { return pd.Close > 0 })
	if len(rows) == 0 {
		return res
	}

	closes := ex.MapPtr(rows, func(pd *m.PriceData) float64 { return pd.Close })

	res.Observations = len(closes)
	res.FirstDate = rows[0].Date
	res.LastDate = rows[len(rows)-1].Date
	res.MinClose = floats.Min(closes)
	res.MaxClose = floats.Max(closes)

	returns := GetLogReturns(closes)
	if len(returns) == 0 {
		return res
	}

	res.MeanLogReturn = stat.Mean(returns, nil)
	if len(returns) > 1 {
		res.StdDevLogReturn = stat.StdDev(returns, nil)
		res.AnnualizedVolatility = res.StdDevLogReturn * math.Sqrt(sm.TradingDaysPerYear)
	}

	return res
}

// GetLogReturns returns ln(p[i]/p[i-1]) for consecutive prices.
func GetLogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns
}
