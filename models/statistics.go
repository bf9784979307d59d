package models

import "time"

const (
	TradingDaysPerYear = 252
)

type PriceStatistics struct {
	Symbol               string    `json:"symbol"`
	Observations         int       `json:"observations"`
	FirstDate            time.Time `json:"firstDate"`
	LastDate             time.Time `json:"lastDate"`
	MinClose             float64   `json:"minClose"`
	MaxClose             float64   `json:"maxClose"`
	MeanLogReturn        float64   `json:"meanLogReturn"`
	StdDevLogReturn      float64   `json:"stdDevLogReturn"`
	AnnualizedVolatility float64   `json:"annualizedVolatility"`
}
