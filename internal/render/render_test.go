package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

type fakePrinter struct {
	out   []byte
	err   error
	calls int
}

func (p *fakePrinter) PrintPDF(_ context.Context, html []byte) ([]byte, error) {
	p.calls++
	if !bytes.Contains(html, []byte("<table>")) {
		return nil, errors.New("expected a rendered table")
	}
	return p.out, p.err
}

func ptr(f float64) *float64 { return &f }

func sampleReport() model.Report {
	return model.Report{
		Title:       "Retirement | Long term",
		GeneratedAt: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		AsOf:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "USD",
		Totals:      model.Metrics{TotalValue: 1500, AvgBuyPrice: 100, TotalQuantity: 15},
		Rows: []model.ReportRow{
			{Name: "AAPL", Symbol: "AAPL", Quantity: 10, BuyPrice: 100, CostValue: 1000, Latest: ptr(110), LastYear: ptr(100), YoY: ptr(10), LatestValue: 1100},
			{Name: "Acme | Widgets", Symbol: "ACME", Quantity: 5, BuyPrice: 100, CostValue: 500, LatestValue: 500},
		},
		TotalLatestValue:        1600,
		WeightedYoY:             ptr(6.875),
		ExpectedAnnualReturnPct: 8,
		ProjectedValue:          1728,
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown(sampleReport())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{
		"# Retirement | Long term",
		"$1,600.00",
		"$1,728.00",
		"+6.88%",
		"+10.00%",
		"8.00% p.a.",
		`Acme \| Widgets`,
		"| n/a |",
		"prices as of 2024-06-15",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, md)
		}
	}
}

func TestMarkdown_NoRows(t *testing.T) {
	report := sampleReport()
	report.Rows = nil
	report.WeightedYoY = nil

	md, err := Markdown(report)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(md, "*No positions.*") {
		t.Errorf("Expected empty positions note, got\n%s", md)
	}
}

func TestFormatter_UnknownCurrency(t *testing.T) {
	f := newFormatter("xyz")
	if got := f.Money(12.5); got != "12.50 XYZ" {
		t.Errorf("Expected 12.50 XYZ, got %s", got)
	}
}

func TestHTML(t *testing.T) {
	page, err := HTML(sampleReport())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	doc := string(page)
	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Error("Expected a full HTML document")
	}
	if !strings.Contains(doc, "<table>") {
		t.Error("Expected markdown table converted to HTML")
	}
	if !strings.Contains(doc, "<title>Retirement | Long term</title>") {
		t.Error("Expected report title in head")
	}
}

// TestRenderer_Render tests format selection and the PDF to HTML fallback.
//
// WHY: A report must always be delivered. Printer failures and a disabled
// printer both degrade to HTML instead of erroring.
func TestRenderer_Render(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewSilentLogger()

	t.Run("pdf when printer succeeds", func(t *testing.T) {
		printer := &fakePrinter{out: []byte("%PDF-1.4")}
		doc, err := NewRenderer(printer, logger).Render(ctx, sampleReport(), FormatPDF)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if doc.ContentType != ContentTypePDF {
			t.Errorf("Expected %s, got %s", ContentTypePDF, doc.ContentType)
		}
		if string(doc.Body) != "%PDF-1.4" || doc.Filename != "portfolio-report.pdf" {
			t.Errorf("Unexpected document: %s %q", doc.Filename, doc.Body)
		}
	})

	t.Run("html when printer fails", func(t *testing.T) {
		printer := &fakePrinter{err: errors.New("chrome not found")}
		doc, err := NewRenderer(printer, logger).Render(ctx, sampleReport(), FormatPDF)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if doc.ContentType != ContentTypeHTML {
			t.Errorf("Expected HTML fallback, got %s", doc.ContentType)
		}
	})

	t.Run("html when printer returns nothing", func(t *testing.T) {
		doc, _ := NewRenderer(&fakePrinter{}, logger).Render(ctx, sampleReport(), FormatPDF)
		if doc.ContentType != ContentTypeHTML {
			t.Errorf("Expected HTML fallback, got %s", doc.ContentType)
		}
	})

	t.Run("html when pdf disabled", func(t *testing.T) {
		doc, err := NewRenderer(nil, logger).Render(ctx, sampleReport(), FormatPDF)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if doc.ContentType != ContentTypeHTML || doc.Filename != "portfolio-report.html" {
			t.Errorf("Expected HTML document, got %s %s", doc.ContentType, doc.Filename)
		}
	})

	t.Run("html format skips the printer", func(t *testing.T) {
		printer := &fakePrinter{out: []byte("%PDF")}
		doc, _ := NewRenderer(printer, logger).Render(ctx, sampleReport(), FormatHTML)
		if doc.ContentType != ContentTypeHTML {
			t.Errorf("Expected HTML, got %s", doc.ContentType)
		}
		if printer.calls != 0 {
			t.Errorf("Expected no print calls, got %d", printer.calls)
		}
	})
}
