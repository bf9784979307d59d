package export

import (
	"encoding/json"
	"os"

	m "pxdata/data/models"
)

type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(series *m.PriceSeries, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toRows(series)); err != nil {
		return err
	}
	return f.Close()
}
