package models

import "time"

// IngestReport tallies one bulk load. Partial success is a normal outcome.
type IngestReport struct {
	Symbol    string       `json:"symbol"`
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failures  []BarFailure `json:"failures,omitempty"`
}

// BarFailure records why a single bar was not written.
type BarFailure struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Error string    `json:"error"`
}

func (r IngestReport) Failed() int {
	return r.Attempted - r.Succeeded
}
