// Package render turns an assembled report into markdown, HTML or PDF.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// Format selects the output of Render.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Document is a rendered report ready to be written to a response or file.
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Renderer produces PDF documents when it has a printer and falls back to
// HTML when it does not or when printing fails.
type Renderer struct {
	printer PDFPrinter
	logger  *logging.Logger
}

// NewRenderer creates a Renderer. A nil printer disables PDF output.
func NewRenderer(printer PDFPrinter, logger *logging.Logger) *Renderer {
	return &Renderer{printer: printer, logger: logger}
}

// Render renders report in the requested format. Only HTML generation errors
// are returned; a PDF failure is logged and answered with the HTML document.
func (r *Renderer) Render(ctx context.Context, report model.Report, format Format) (Document, error) {
	body, err := HTML(report)
	if err != nil {
		return Document{}, err
	}

	htmlDoc := Document{
		ContentType: ContentTypeHTML,
		Filename:    "portfolio-report.html",
		Body:        body,
	}

	if format == FormatHTML {
		return htmlDoc, nil
	}

	pdf, err := r.printPDF(ctx, body)
	if err != nil {
		r.logger.Warn().Err(err).Msg("pdf rendering failed, serving html report")
		return htmlDoc, nil
	}

	return Document{
		ContentType: ContentTypePDF,
		Filename:    "portfolio-report.pdf",
		Body:        pdf,
	}, nil
}

func (r *Renderer) printPDF(ctx context.Context, body []byte) ([]byte, error) {
	if r.printer == nil {
		return nil, apperrors.ErrRendererUnavailable
	}
	pdf, err := r.printer.PrintPDF(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRendererUnavailable, err)
	}
	if len(pdf) == 0 {
		return nil, errors.Join(apperrors.ErrRendererUnavailable, errors.New("empty pdf"))
	}
	return pdf, nil
}
