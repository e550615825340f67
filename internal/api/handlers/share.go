package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

// ShareHandler creates share links and serves the reports they grant
type ShareHandler struct {
	shareService *service.ShareService
	reports      *ReportHandler
	baseURL      string
}

// NewShareHandler creates a new ShareHandler. Links are built as baseURL/view/<token>.
func NewShareHandler(shareService *service.ShareService, reports *ReportHandler, baseURL string) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		reports:      reports,
		baseURL:      baseURL,
	}
}

// ShareLinkResponse is returned when a link is created.
type ShareLinkResponse struct {
	Link      string     `json:"link"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ShareValidationResponse is returned when a token and password are accepted.
type ShareValidationResponse struct {
	Valid       bool    `json:"valid"`
	PortfolioID *string `json:"portfolioId"`
}

// CreateShareLink handles POST requests to create a share link for the portfolio summary.
//
// Endpoint: POST /share
// Request Body: CreateShareLinkRequest (password, expireInMinutes, maxViews, portfolioId; all optional)
// Response: 201 Created with ShareLinkResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if portfolioId names an unknown portfolio
// Error: 500 Internal Server Error if creation fails
func (h *ShareHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateShareLinkRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateShareLink(req); err != nil {
		respondValidation(w, err)
		return
	}

	link, err := h.shareService.CreateShareLink(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateShareLink.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ShareLinkResponse{
		Link:      h.baseURL + "/view/" + link.Token,
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt,
	})
}

// ValidateShareLink handles GET requests that check a token and password.
// A successful check counts as one view of the link.
//
// Endpoint: GET /share?token={token}&password={password}
// Response: 200 OK with ShareValidationResponse
// Error: 400 Bad Request if token is missing
// Error: 404 Not Found if no link has the token
// Error: 403 Forbidden if the link has expired or reached its view limit
// Error: 401 Unauthorized if the password is missing or wrong
func (h *ShareHandler) ValidateShareLink(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	link, err := h.shareService.ValidateShareLink(r.Context(), query.Get("token"), query.Get("password"))
	if err != nil {
		respondShareError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, ShareValidationResponse{
		Valid:       true,
		PortfolioID: link.PortfolioID,
	})
}

// View handles GET requests for the page a share link points at. The link is
// validated exactly as ValidateShareLink does, then its report is served.
// A link whose portfolio has since been deleted shows every position.
//
// Endpoint: GET /view/{token}?password={password}&format={pdf|html}
// Response: 200 OK with application/pdf or text/html
// Error: same statuses as ValidateShareLink, 400 Bad Request for an unknown format
func (h *ShareHandler) View(w http.ResponseWriter, r *http.Request) {
	format, ok := parseFormat(r.URL.Query().Get("format"))
	if !ok {
		response.RespondError(w, http.StatusBadRequest, "invalid format", "format must be pdf or html")
		return
	}

	link, err := h.shareService.ValidateShareLink(r.Context(), chi.URLParam(r, "token"), r.URL.Query().Get("password"))
	if err != nil {
		respondShareError(w, err)
		return
	}

	portfolioID := ""
	if link.PortfolioID != nil {
		portfolioID = *link.PortfolioID
	}

	h.reports.serveReport(r.Context(), w, portfolioID, format)
}

func respondShareError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMissingToken):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingToken.Error(), "")
	case errors.Is(err, apperrors.ErrShareLinkNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrShareLinkNotFound.Error(), "")
	case errors.Is(err, apperrors.ErrShareLinkExpired):
		response.RespondError(w, http.StatusForbidden, apperrors.ErrShareLinkExpired.Error(), "")
	case errors.Is(err, apperrors.ErrShareViewLimitReached):
		response.RespondError(w, http.StatusForbidden, apperrors.ErrShareViewLimitReached.Error(), "")
	case errors.Is(err, apperrors.ErrSharePasswordRequired):
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrSharePasswordRequired.Error(), "")
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToValidateShareLink.Error(), err.Error())
	}
}
