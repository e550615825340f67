package validation

import (
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
)

func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)
	validName(errors, req.Name)
	return fieldErrors(errors)
}
