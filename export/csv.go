package export

import (
	"encoding/csv"
	"os"
	"strconv"

	m "pxdata/data/models"
)

var csvHeader = []string{"ticker", "date", "t", "o", "h", "l", "c", "v", "vw", "n"}

// CSVSaver leaves vw and n empty when the source did not send them.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(series *m.PriceSeries, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range toRows(series) {
		vw, n := "", ""
		if r.VolumeWeightedPrice != nil {
			vw = floatStr(*r.VolumeWeightedPrice)
		}
		if r.TransactionCount != nil {
			n = strconv.FormatInt(*r.TransactionCount, 10)
		}

		if err := w.Write([]string{
			r.Ticker,
			r.Date,
			strconv.FormatInt(r.TimestampMillis, 10),
			floatStr(r.Open),
			floatStr(r.High),
			floatStr(r.Low),
			floatStr(r.Close),
			floatStr(r.Volume),
			vw,
			n,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
