package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "pxdata/data/models"
)

// Dumper writes each series to {Dir}/{TICKER}/{ticker}_{from}_to_{to}.{ext}.
// An existing dump of the same range is replaced.
type Dumper struct {
	Dir   string
	Saver Saver
}

// NewDumper returns nil when dir is empty, which disables dumps.
func NewDumper(dir, format string) (*Dumper, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}

	s := NewSaver(format)
	if s == nil {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	return &Dumper{Dir: dir, Saver: s}, nil
}

func (d *Dumper) Dump(series *m.PriceSeries) (string, error) {
	if series == nil {
		return "", fmt.Errorf("no series to dump")
	}

	ticker := series.Ticker
	if ticker == "" {
		ticker = series.Query.Ticker
	}

	if !m.IsPathSafeTicker(ticker) {
		return "", fmt.Errorf("ticker %q is not a single path segment", ticker)
	}

	tickerDir := filepath.Join(d.Dir, strings.ToUpper(ticker))
	if err := os.MkdirAll(tickerDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create folder %s: %w", tickerDir, err)
	}

	name := fmt.Sprintf("%s_%s_to_%s.%s", ticker, series.Query.DateFrom, series.Query.DateTo, d.Saver.Extension())
	if filepath.Base(name) != name {
		return "", fmt.Errorf("dump name %q is not a single path segment", name)
	}
	path := filepath.Join(tickerDir, name)
	if err := d.Saver.Save(series, path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
