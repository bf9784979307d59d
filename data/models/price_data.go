package models

import "time"

// PriceData is a row of the PriceData table, one per stored bar.
type PriceData struct {
	Id           int32     `db:"price_id" json:"id"`
	InstrumentId int32     `db:"instrument_id" json:"instrumentId"`
	Date         time.Time `db:"px_date" json:"date"`
	Open         float64   `db:"open_px" json:"open"`
	Close        float64   `db:"close_px" json:"close"`
	High         float64   `db:"high_px" json:"high"`
	Low          float64   `db:"low_px" json:"low"`
	Volume       int64     `db:"volume" json:"volume"`
}

// NewPriceData is a single bar write. The instrument is referenced by symbol
// and resolved to its id by the gateway at write time.
type NewPriceData struct {
	Symbol string    `json:"symbol" validate:"required,max=16"`
	Date   time.Time `json:"date" validate:"required"`
	Open   float64   `json:"open" validate:"gte=0"`
	Close  float64   `json:"close" validate:"gte=0"`
	High   float64   `json:"high" validate:"gte=0"`
	Low    float64   `json:"low" validate:"gte=0"`
	Volume int64     `json:"volume" validate:"gte=0"`
}
