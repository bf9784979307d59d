package export

import (
	"github.com/parquet-go/parquet-go"

	m "pxdata/data/models"
)

type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(series *m.PriceSeries, path string) error {
	return parquet.WriteFile(path, toRows(series))
}
