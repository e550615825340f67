package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

// PositionHandler handles position-related HTTP requests
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// Positions handles GET requests to list positions, optionally for one portfolio.
//
// Endpoint: GET /positions?portfolioId={uuid}
// Response: 200 OK with array of Position
// Error: 400 Bad Request if portfolioId is not a valid UUID
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}
	}

	positions, err := h.positionService.GetPositions(r.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// CreatePosition handles POST requests to add a position to a portfolio.
//
// Endpoint: POST /positions
// Request Body: CreatePositionRequest (portfolioId, name, quantity, buyPrice)
// Response: 201 Created with Position
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if creation fails
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		respondValidation(w, err)
		return
	}

	position, err := h.positionService.CreatePosition(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// UpdatePosition handles PUT requests to change an existing position.
//
// Endpoint: PUT /positions/{uuid}
// Request Body: UpdatePositionRequest (all fields optional)
// Response: 200 OK with updated Position
// Error: 400 Bad Request if position ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if update fails
func (h *PositionHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePosition(req); err != nil {
		respondValidation(w, err)
		return
	}

	position, err := h.positionService.UpdatePosition(r.Context(), positionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// DeletePosition handles DELETE requests to remove a position.
//
// Endpoint: DELETE /positions/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if position ID is invalid (validated by middleware)
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if deletion fails
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	if err := h.positionService.DeletePosition(r.Context(), positionID); err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
