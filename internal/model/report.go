package model

import "time"

// Enrichment is the market data gathered for one position.
// Nil fields mean the value could not be determined.
type Enrichment struct {
	Symbol   string   `json:"symbol"`
	Latest   *float64 `json:"latest"`
	LastYear *float64 `json:"lastYear"`
	YoY      *float64 `json:"yoy"`
}

// ReportRow is one position line of a report.
type ReportRow struct {
	PositionID  string   `json:"positionId"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Quantity    float64  `json:"quantity"`
	BuyPrice    float64  `json:"buyPrice"`
	CostValue   float64  `json:"costValue"`
	Latest      *float64 `json:"latest"`
	LastYear    *float64 `json:"lastYear"`
	YoY         *float64 `json:"yoy"`
	LatestValue float64  `json:"latestValue"`
}

// Report is the assembled summary handed to a renderer.
type Report struct {
	Title            string      `json:"title"`
	PortfolioID      string      `json:"portfolioId,omitempty"`
	GeneratedAt      time.Time   `json:"generatedAt"`
	AsOf             time.Time   `json:"asOf"`
	Currency         string      `json:"currency"`
	Totals           Metrics     `json:"totals"`
	Rows             []ReportRow `json:"rows"`
	TotalLatestValue float64     `json:"totalLatestValue"`
	WeightedYoY      *float64    `json:"weightedYoY"`

	ExpectedAnnualReturnPct float64 `json:"expectedAnnualReturnPct"`
	ProjectedValue          float64 `json:"projectedValue"`
}
