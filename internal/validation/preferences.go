package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
)

func ValidateUpdateCalcPreferences(req request.UpdateCalcPreferencesRequest) error {
	errors := make(map[string]string)

	if req.CurrencySymbol != nil {
		symbol := strings.TrimSpace(*req.CurrencySymbol)
		if symbol == "" {
			errors["currencySymbol"] = "currencySymbol cannot be empty"
		} else if utf8.RuneCountInString(symbol) > 8 {
			errors["currencySymbol"] = "currencySymbol must be 8 characters or less"
		}
	}
	if req.ExpectedAnnualReturnPct != nil {
		pct := *req.ExpectedAnnualReturnPct
		if !finite(pct) || pct < -100 || pct > 1000 {
			errors["expectedAnnualReturnPct"] = "expectedAnnualReturnPct must be between -100 and 1000"
		}
	}

	return fieldErrors(errors)
}

func ValidateUpdateSharePreferences(req request.UpdateSharePreferencesRequest) error {
	errors := make(map[string]string)

	if len(req.Password) > maxPasswordLength {
		errors["password"] = "password must be 128 characters or less"
	}
	if req.ExpireInMinutes != nil && *req.ExpireInMinutes < 0 {
		errors["expireInMinutes"] = "expireInMinutes cannot be negative"
	}

	return fieldErrors(errors)
}
