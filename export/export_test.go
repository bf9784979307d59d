package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "pxdata/data/models"
)

func testSeries() *m.PriceSeries {
	return &m.PriceSeries{
		Ticker: "AAPL",
		Query: m.QuerySet{
			Ticker:     "AAPL",
			Multiplier: 1,
			Timespan:   "day",
			DateFrom:   "2023-01-09",
			DateTo:     "2023-01-10",
		},
		Bars: []m.PriceBar{
			{Volume: 7.0790813e+07, VolumeWeightedPrice: null.FloatFrom(131.6292), Open: 130.465, Close: 130.15, High: 133.41, Low: 129.89, TimestampMillis: 1673240400000, TransactionCount: m.FlexibleIntFrom(645365)},
			{Volume: 63896155, Open: 130.26, Close: 130.73, High: 131.2636, Low: 128.12, TimestampMillis: 1673326800000},
		},
	}
}

func Test_NewSaver(t *testing.T) {
	for _, format := range []string{"json", "CSV", " parquet "} {
		s := NewSaver(format)
		require.NotNil(t, s, format)
	}
	assert.Equal(t, "csv", NewSaver("csv").Extension())
	assert.Nil(t, NewSaver("xml"))
}

func Test_Dumper_DisabledWithoutDir(t *testing.T) {
	d, err := NewDumper("", "json")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = NewDumper(t.TempDir(), "xml")
	assert.Error(t, err)
}

func Test_Dumper_JSON(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDumper(dir, "json")
	require.NoError(t, err)

	path, err := d.Dump(testSeries())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "AAPL", "AAPL_2023-01-09_to_2023-01-10.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []barRow
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2023-01-09", rows[0].Date)
	require.NotNil(t, rows[0].VolumeWeightedPrice)
	assert.Equal(t, 131.6292, *rows[0].VolumeWeightedPrice)
	assert.Nil(t, rows[1].VolumeWeightedPrice)
	assert.Nil(t, rows[1].TransactionCount)
}

func Test_Dumper_CSV(t *testing.T) {
	d, err := NewDumper(t.TempDir(), "csv")
	require.NoError(t, err)

	path, err := d.Dump(testSeries())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"AAPL", "2023-01-09", "1673240400000", "130.465", "133.41", "129.89", "130.15", "70790813", "131.6292", "645365"}, records[1])
	assert.Equal(t, "", records[2][8])
	assert.Equal(t, "", records[2][9])
}

func Test_Dumper_Parquet(t *testing.T) {
	d, err := NewDumper(t.TempDir(), "parquet")
	require.NoError(t, err)

	path, err := d.Dump(testSeries())
	require.NoError(t, err)
	assert.Equal(t, ".parquet", filepath.Ext(path))

	rows, err := parquet.ReadFile[barRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAPL", rows[0].Ticker)
	assert.Equal(t, int64(1673326800000), rows[1].TimestampMillis)
	assert.Equal(t, 130.73, rows[1].Close)
	require.NotNil(t, rows[0].TransactionCount)
	assert.Equal(t, int64(645365), *rows[0].TransactionCount)
	assert.Nil(t, rows[1].TransactionCount)
}

func Test_Dumper_EmptySeries(t *testing.T) {
	d, err := NewDumper(t.TempDir(), "json")
	require.NoError(t, err)

	series := testSeries()
	series.Bars = []m.PriceBar{}

	path, err := d.Dump(series)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(b))
}

func Test_Dumper_RejectsPathsOutsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "dumps")
	d, err := NewDumper(dir, "json")
	require.NoError(t, err)

	series := testSeries()
	series.Ticker = "../../escaped"
	_, err = d.Dump(series)
	assert.Error(t, err)

	series = testSeries()
	series.Query.DateTo = "2023-01-10/../../../escaped"
	_, err = d.Dump(series)
	assert.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, "dumps", e.Name())
	}
	_, err = os.Stat(filepath.Join(filepath.Dir(root), "escaped_2023-01-09_to_2023-01-10.json"))
	assert.True(t, os.IsNotExist(err))
}

func Test_Dumper_ReplacesEarlierDumpOfTheSameRange(t *testing.T) {
	d, err := NewDumper(t.TempDir(), "json")
	require.NoError(t, err)

	_, err = d.Dump(testSeries())
	require.NoError(t, err)

	series := testSeries()
	series.Bars = series.Bars[:1]
	path, err := d.Dump(series)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var rows []barRow
	require.NoError(t, json.Unmarshal(b, &rows))
	assert.Len(t, rows, 1)
}
