package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioMetricsResponse pairs a portfolio with its buy-price valuation.
type PortfolioMetricsResponse struct {
	Portfolio model.Portfolio `json:"portfolio"`
	Metrics   model.Metrics   `json:"metrics"`
}

// Portfolios handles GET requests to list every portfolio, oldest first.
//
// Endpoint: GET /portfolios
// Response: 200 OK with array of Portfolio
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// CreatePortfolio handles POST requests to create a portfolio.
//
// Endpoint: POST /portfolios
// Request Body: CreatePortfolioRequest (name)
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if the body is invalid or the name is empty after trimming
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondValidation(w, err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// PortfolioMetrics handles GET requests for the valuation metrics of one portfolio.
//
// Endpoint: GET /portfolios/{uuid}/metrics
// Response: 200 OK with PortfolioMetricsResponse
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) PortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	metrics, err := h.portfolioService.GetPortfolioMetrics(r.Context(), portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PortfolioMetricsResponse{
		Portfolio: portfolio,
		Metrics:   metrics,
	})
}

// DeletePortfolio handles DELETE requests to remove a portfolio and its positions.
//
// Endpoint: DELETE /portfolios/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
