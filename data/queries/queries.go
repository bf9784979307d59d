package queries

import (
	"embed"
	"fmt"
)

//go:embed create/*.sql insert/*.sql select/*.sql
var Files embed.FS

// ^^^ the sql files are compiled into the binary, paths below are relative to this package

type CreateQueries struct {
	Schema string
}

type InsertQueries struct {
	Instrument string
	PriceData  string
}

type SelectQueries struct {
	InstrumentIdBySymbol string
	InstrumentsBySymbol  string
	PriceDataBySymbol    string
}

type QueryHelperStruct struct {
	Create CreateQueries
	Insert InsertQueries
	Select SelectQueries
}

var QueryHelper = QueryHelperStruct{
	Create: CreateQueries{
		Schema: "create/schema.sql",
	},
	Insert: InsertQueries{
		Instrument: "insert/instrument.sql",
		PriceData:  "insert/price_data.sql",
	},
	Select: SelectQueries{
		InstrumentIdBySymbol: "select/instrument_id_by_symbol.sql",
		InstrumentsBySymbol:  "select/instruments_by_symbol.sql",
		PriceDataBySymbol:    "select/price_data_by_symbol.sql",
	},
}

// Get returns the embedded sql for path. Paths come from QueryHelper, so a
// missing file is a build mistake and panics.
func Get(path string) string {
	content, err := Files.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("error reading query file: %w", err))
	}

	return string(content)
}
