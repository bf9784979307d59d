package export

import (
	"strings"

	m "pxdata/data/models"
)

// Saver writes the bars of one series to path.
type Saver interface {
	Save(series *m.PriceSeries, path string) error
	Extension() string
}

// NewSaver returns the saver for format (json, csv, parquet), nil when the
// format is not supported.
func NewSaver(format string) Saver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONSaver{}
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// barRow is the flat on-disk shape of a bar. Absent vw and n stay nil.
type barRow struct {
	Ticker              string   `json:"ticker" parquet:"ticker"`
	Date                string   `json:"date" parquet:"date"`
	TimestampMillis     int64    `json:"t" parquet:"t"`
	Open                float64  `json:"o" parquet:"o"`
	High                float64  `json:"h" parquet:"h"`
	Low                 float64  `json:"l" parquet:"l"`
	Close               float64  `json:"c" parquet:"c"`
	Volume              float64  `json:"v" parquet:"v"`
	VolumeWeightedPrice *float64 `json:"vw,omitempty" parquet:"vw,optional"`
	TransactionCount    *int64   `json:"n,omitempty" parquet:"n,optional"`
}

func toRows(series *m.PriceSeries) []barRow {
	rows := make([]barRow, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = barRow{
			Ticker:              series.Ticker,
			Date:                b.Date().Format("2006-01-02"),
			TimestampMillis:     b.TimestampMillis,
			Open:                b.Open,
			High:                b.High,
			Low:                 b.Low,
			Close:               b.Close,
			Volume:              b.Volume,
			VolumeWeightedPrice: b.VolumeWeightedPrice.Ptr(),
			TransactionCount:    b.TransactionCount.Ptr(),
		}
	}
	return rows
}
