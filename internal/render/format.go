package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const notAvailable = "n/a"

// formatter holds the currency used for every monetary cell of one report.
type formatter struct {
	currency *money.Currency
	code     string
}

func newFormatter(code string) formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	return formatter{currency: money.GetCurrency(code), code: code}
}

// Money formats a major-unit amount, e.g. 1234.5 INR -> "₹1,234.50".
// Unknown currency codes fall back to "1234.50 XYZ".
func (f formatter) Money(value float64) string {
	if f.currency == nil {
		return fmt.Sprintf("%.2f %s", value, f.code)
	}
	minor := decimal.NewFromFloat(value).Shift(int32(f.currency.Fraction)).Round(0)
	return f.currency.Formatter().Format(minor.IntPart())
}

// Price formats an optional close.
func (f formatter) Price(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return f.Money(*value)
}

func formatPct(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return fmt.Sprintf("%+.2f%%", *value)
}

func formatRate(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

func formatQty(value float64) string {
	return decimal.NewFromFloat(value).String()
}

// escapeCell keeps free-text names from breaking the markdown table.
func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.Join(strings.Fields(value), " ")
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
