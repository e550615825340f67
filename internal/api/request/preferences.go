package request

type UpdateCalcPreferencesRequest struct {
	CurrencySymbol          *string  `json:"currencySymbol,omitempty"`
	ExpectedAnnualReturnPct *float64 `json:"expectedAnnualReturnPct,omitempty"`
}

type UpdateSharePreferencesRequest struct {
	Password        string `json:"password"`
	ExpireInMinutes *int   `json:"expireInMinutes"`
}
