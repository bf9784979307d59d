package models

import (
	"strings"
	"time"

	"github.com/guregu/null/v6"
)

// QuerySet holds the parameters of one aggregates request.
type QuerySet struct {
	Ticker     string `json:"ticker" validate:"required,max=16,excludesall=/\\?#%,excludes=.."`
	Multiplier int    `json:"multiplier" validate:"min=1"`
	Timespan   string `json:"timespan" validate:"required,oneof=second minute hour day week month quarter year"`
	DateFrom   string `json:"dateFrom" validate:"required,datetime=2006-01-02"`
	DateTo     string `json:"dateTo" validate:"required,datetime=2006-01-02"`
}

// IsPathSafeTicker reports whether ticker can be used as a single path
// segment, both in the request url and in dump file paths.
func IsPathSafeTicker(ticker string) bool {
	if ticker == "" || ticker == "." || strings.Contains(ticker, "..") {
		return false
	}
	return !strings.ContainsAny(ticker, "/\\?#%")
}

// PriceSeries is the typed result of one aggregates request, bars are kept in
// the order the source returned them.
type PriceSeries struct {
	Ticker string     `json:"ticker"`
	Query  QuerySet   `json:"query"`
	Bars   []PriceBar `json:"results"`
}

// PriceBar is one aggregated observation as returned by the source. vw and n
// are not present on every bar, so they stay nullable.
type PriceBar struct {
	Volume              float64     `json:"v"`
	VolumeWeightedPrice null.Float  `json:"vw"`
	Open                float64     `json:"o"`
	Close               float64     `json:"c"`
	High                float64     `json:"h"`
	Low                 float64     `json:"l"`
	TimestampMillis     int64       `json:"t"`
	TransactionCount    FlexibleInt `json:"n"`
}

// Timestamp is the bar start as a UTC instant.
func (b PriceBar) Timestamp() time.Time {
	return time.UnixMilli(b.TimestampMillis).UTC()
}

// Date floors the bar timestamp to its UTC calendar day.
func (b PriceBar) Date() time.Time {
	t := b.Timestamp()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToPriceData maps the bar onto the internal row shape, truncating volume.
func (b PriceBar) ToPriceData(symbol string) NewPriceData {
	return NewPriceData{
		Symbol: symbol,
		Date:   b.Date(),
		Open:   b.Open,
		Close:  b.Close,
		High:   b.High,
		Low:    b.Low,
		Volume: int64(b.Volume),
	}
}
