package request

type CreatePositionRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	BuyPrice    float64 `json:"buyPrice"`
}

// UpdatePositionRequest changes only the fields that are present.
type UpdatePositionRequest struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	BuyPrice *float64 `json:"buyPrice,omitempty"`
}
