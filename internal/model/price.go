package model

import "time"

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a symbol's daily closes in ascending date order.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// PriceQuote is the answer to a point-in-time price lookup.
type PriceQuote struct {
	Close  float64 `json:"close"`
	Date   string  `json:"date"`
	Symbol string  `json:"symbol"`
}
