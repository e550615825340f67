package model

import "time"

// CalculationPreferences drive how metrics are displayed and projected.
type CalculationPreferences struct {
	CurrencySymbol          string  `json:"currencySymbol"`
	ExpectedAnnualReturnPct float64 `json:"expectedAnnualReturnPct"`
}

// SharePreferences are the last-used share dialog values.
type SharePreferences struct {
	Password        string `json:"password"`
	ExpireInMinutes *int   `json:"expireInMinutes"`
}

// CalculationSnapshot is a saved copy of a portfolio's metrics.
type CalculationSnapshot struct {
	TotalValue    float64   `json:"totalValue"`
	AvgBuyPrice   float64   `json:"avgBuyPrice"`
	TotalQuantity float64   `json:"totalQuantity"`
	SavedAt       time.Time `json:"savedAt"`
}
