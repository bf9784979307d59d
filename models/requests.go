package models

import dm "pxdata/data/models"

// IngestRequest fetches Query and writes the bars under Symbol. Symbol
// defaults to the query ticker when empty.
type IngestRequest struct {
	Query  dm.QuerySet `json:"query" validate:"-"`
	Symbol string      `json:"symbol" validate:"omitempty,max=16"`
}

func (ir IngestRequest) TargetSymbol() string {
	if ir.Symbol == "" {
		return ir.Query.Ticker
	}
	return ir.Symbol
}

type PingResponse struct {
	Message string `json:"message"`
}
