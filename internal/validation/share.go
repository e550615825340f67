package validation

import (
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
)

const maxPasswordLength = 128

// ValidateCreateShareLink checks the optional share link limits.
// A zero or negative expireInMinutes is accepted and yields a link that is already expired.
func ValidateCreateShareLink(req request.CreateShareLinkRequest) error {
	errors := make(map[string]string)

	if req.MaxViews != nil && *req.MaxViews < 1 {
		errors["maxViews"] = "maxViews must be at least 1"
	}
	if len(req.Password) > maxPasswordLength {
		errors["password"] = "password must be 128 characters or less"
	}
	if req.PortfolioID != nil && *req.PortfolioID != "" {
		if err := ValidateUUID(*req.PortfolioID); err != nil {
			errors["portfolioId"] = "portfolioId must be a valid UUID"
		}
	}

	return fieldErrors(errors)
}
