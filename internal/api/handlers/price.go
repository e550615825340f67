package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
)

// PriceHandler handles point-in-time price lookups
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// Price handles GET requests for the close of a symbol on or before a date.
// The symbol may also be a company name, which is resolved to a ticker first.
//
// Endpoint: GET /price?symbol={symbol}&date={YYYY-MM-DD}
// Response: 200 OK with PriceQuote
// Error: 400 Bad Request if symbol is missing or date is missing or malformed
// Error: 404 Not Found if the symbol is unknown or has no price data
// Error: 502 Bad Gateway if the price provider fails
func (h *PriceHandler) Price(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	quote, err := h.priceService.GetPrice(r.Context(), query.Get("symbol"), query.Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidSymbol):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidSymbol.Error(), "")
		case errors.Is(err, apperrors.ErrInvalidDate):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDate.Error(), "date must be YYYY-MM-DD")
		case errors.Is(err, apperrors.ErrSymbolNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSymbolNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrNoPriceData):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoPriceData.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToRetrievePrice.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}
