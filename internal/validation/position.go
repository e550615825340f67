package validation

import (
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
)

func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = "portfolioId must be a valid UUID"
	}
	validName(errors, req.Name)
	if !finite(req.Quantity) || req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if !finite(req.BuyPrice) || req.BuyPrice <= 0 {
		errors["buyPrice"] = "buyPrice must be positive"
	}

	return fieldErrors(errors)
}

func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		validName(errors, *req.Name)
	}
	if req.Quantity != nil && (!finite(*req.Quantity) || *req.Quantity <= 0) {
		errors["quantity"] = "quantity must be positive"
	}
	if req.BuyPrice != nil && (!finite(*req.BuyPrice) || *req.BuyPrice <= 0) {
		errors["buyPrice"] = "buyPrice must be positive"
	}

	return fieldErrors(errors)
}
