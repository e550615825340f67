package model

import "time"

// Portfolio represents a portfolio from the database
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Position is a single holding inside a portfolio.
// Name is free text and may be a ticker or a company name.
type Position struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	BuyPrice    float64   `json:"buyPrice"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Value returns quantity × buy price.
func (p Position) Value() float64 {
	return p.Quantity * p.BuyPrice
}

// Metrics are the buy-price based aggregates of a set of positions.
type Metrics struct {
	TotalValue    float64 `json:"totalValue"`
	AvgBuyPrice   float64 `json:"avgBuyPrice"`
	TotalQuantity float64 `json:"totalQuantity"`
}
