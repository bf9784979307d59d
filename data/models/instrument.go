package models

// Instrument is a row of the Instruments table. Symbol is the business key
// used to join external price data to internal storage.
type Instrument struct {
	Id       int32  `db:"instrument_id" json:"id"`
	Name     string `db:"instrument_name" json:"name"`
	Symbol   string `db:"instrument_symbol" json:"symbol"`
	Type     string `db:"instrument_type" json:"type"`
	Currency string `db:"instrument_currency" json:"currency"`
}

// NewInstrument is the registration payload, the id is assigned by the store.
type NewInstrument struct {
	Name     string `json:"name" validate:"required,max=128"`
	Symbol   string `json:"symbol" validate:"required,max=16"`
	Type     string `json:"type" validate:"required,max=32"`
	Currency string `json:"currency" validate:"required,len=3"`
}
