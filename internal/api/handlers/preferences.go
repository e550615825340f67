package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

// PreferencesHandler handles the stored calculation and share preferences
type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesService: preferencesService,
	}
}

// CalcPreferences handles GET /preferences/calc.
// Defaults are returned when nothing has been stored.
func (h *PreferencesHandler) CalcPreferences(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.preferencesService.GetCalcPreferences())
}

// UpdateCalcPreferences handles PUT requests that change the calculation preferences.
//
// Endpoint: PUT /preferences/calc
// Request Body: UpdateCalcPreferencesRequest (currencySymbol, expectedAnnualReturnPct; both optional)
// Response: 200 OK with CalculationPreferences
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if saving fails
func (h *PreferencesHandler) UpdateCalcPreferences(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateCalcPreferencesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCalcPreferences(req); err != nil {
		respondValidation(w, err)
		return
	}

	prefs, err := h.preferencesService.UpdateCalcPreferences(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSavePrefs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prefs)
}

// SharePreferences handles GET /preferences/share.
func (h *PreferencesHandler) SharePreferences(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.preferencesService.GetSharePreferences())
}

// UpdateSharePreferences handles PUT requests that replace the share dialog defaults.
//
// Endpoint: PUT /preferences/share
// Request Body: UpdateSharePreferencesRequest (password, expireInMinutes)
// Response: 200 OK with SharePreferences
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if saving fails
func (h *PreferencesHandler) UpdateSharePreferences(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSharePreferencesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSharePreferences(req); err != nil {
		respondValidation(w, err)
		return
	}

	prefs, err := h.preferencesService.UpdateSharePreferences(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSavePrefs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prefs)
}

// Snapshot handles GET /preferences/snapshot. The body is null when no
// snapshot has been saved.
func (h *PreferencesHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.preferencesService.GetSnapshot())
}

// SaveSnapshot handles POST requests that store the current metrics of a portfolio.
//
// Endpoint: POST /preferences/snapshot?portfolioId={uuid}
// Response: 201 Created with CalculationSnapshot
// Error: 400 Bad Request if portfolioId is missing or invalid
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if saving fails
func (h *PreferencesHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPortfolioID.Error(), "")
		return
	}
	if err := validation.ValidateUUID(portfolioID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	snapshot, err := h.preferencesService.SaveSnapshot(r.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSavePrefs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}
