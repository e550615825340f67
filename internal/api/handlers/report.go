package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/render"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

// ReportHandler serves rendered portfolio summaries
type ReportHandler struct {
	reportService *service.ReportService
	renderer      *render.Renderer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService, renderer *render.Renderer) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		renderer:      renderer,
	}
}

// Report handles GET requests for the portfolio summary report.
// PDF is served when the renderer can produce one; otherwise the HTML page is
// served with the same content. Without portfolioId every position is included.
//
// Endpoint: GET /report?portfolioId={uuid}&format={pdf|html}
// Response: 200 OK with application/pdf or text/html
// Error: 400 Bad Request if portfolioId is not a valid UUID or format is unknown
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if the report cannot be built
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	portfolioID := query.Get("portfolioId")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}
	}

	format, ok := parseFormat(query.Get("format"))
	if !ok {
		response.RespondError(w, http.StatusBadRequest, "invalid format", "format must be pdf or html")
		return
	}

	h.serveReport(r.Context(), w, portfolioID, format)
}

func (h *ReportHandler) serveReport(ctx context.Context, w http.ResponseWriter, portfolioID string, format render.Format) {
	report, err := h.reportService.BuildReport(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildReport.Error(), err.Error())
		return
	}

	doc, err := h.renderer.Render(ctx, report, format)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildReport.Error(), err.Error())
		return
	}

	response.RespondDocument(w, doc)
}

func parseFormat(value string) (render.Format, bool) {
	switch render.Format(value) {
	case "", render.FormatPDF:
		return render.FormatPDF, true
	case render.FormatHTML:
		return render.FormatHTML, true
	default:
		return "", false
	}
}
