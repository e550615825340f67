package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/render"
)

// StubPrinter is a render.PDFPrinter that returns a fixed document or error
// instead of starting a browser.
type StubPrinter struct {
	mu    sync.Mutex
	PDF   []byte
	Err   error
	calls int
}

// PrintPDF records the call and returns the configured result.
func (p *StubPrinter) PrintPDF(_ context.Context, _ []byte) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.PDF, p.Err
}

// CallCount returns how many documents were printed.
func (p *StubPrinter) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// NewTestRenderer creates a Renderer over printer. A nil printer gives an
// HTML-only renderer.
func NewTestRenderer(printer render.PDFPrinter) *render.Renderer {
	return render.NewRenderer(printer, logging.NewSilentLogger())
}
