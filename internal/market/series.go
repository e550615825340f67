package market

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CloseOnOrBefore selects the close of the latest point dated on or before
// target, comparing calendar days only. When target predates the whole series
// the earliest point is returned instead, so weekends, holidays and short
// histories still produce a price. The bool is false only for an empty series.
//
// points must be in ascending date order.
func CloseOnOrBefore(points []model.PricePoint, target time.Time) (model.PricePoint, bool) {
	if len(points) == 0 {
		return model.PricePoint{}, false
	}

	day := calendarDay(target)

	// Index of the first point strictly after the target day.
	i := sort.Search(len(points), func(i int) bool {
		return calendarDay(points[i].Date).After(day)
	})
	if i == 0 {
		return points[0], true
	}
	return points[i-1], true
}

// YoY returns (latest - lastYear) / lastYear * 100, or nil when either close
// is unknown or lastYear is zero.
func YoY(latest, lastYear *float64) *float64 {
	if latest == nil || lastYear == nil || *lastYear == 0 {
		return nil
	}

	l := decimal.NewFromFloat(*latest)
	y := decimal.NewFromFloat(*lastYear)
	pct := l.Sub(y).Div(y).Mul(hundred).InexactFloat64()

	return &pct
}

// WeightedYoY weights each row's YoY by its latest value.
// Rows without a latest price are ignored entirely; rows with a latest price
// but no YoY count toward the denominator only. Returns nil when no row has a
// latest price or the total latest value is zero.
func WeightedYoY(rows []model.ReportRow) *float64 {
	numerator := decimal.Zero
	denominator := decimal.Zero

	for _, row := range rows {
		if row.Latest == nil {
			continue
		}
		value := decimal.NewFromFloat(row.LatestValue)
		denominator = denominator.Add(value)
		if row.YoY != nil {
			numerator = numerator.Add(value.Mul(decimal.NewFromFloat(*row.YoY)).Div(hundred))
		}
	}

	if denominator.IsZero() {
		return nil
	}

	weighted := numerator.Div(denominator).Mul(hundred).InexactFloat64()
	return &weighted
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
