package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/config"
)

// TestCORS checks origin echoing and that a wildcard origin never allows credentials.
//
// WHY: browsers reject "*" combined with credentials, and share viewers do not
// need cookies, so a wildcard deployment must drop credentials rather than break.
func TestCORS(t *testing.T) {
	tests := []struct {
		name            string
		origins         []string
		origin          string
		wantOrigin      string
		wantCredentials string
	}{
		{"echoes listed origin with credentials", []string{"http://localhost:3000"}, "http://localhost:3000", "http://localhost:3000", "true"},
		{"ignores unlisted origin", []string{"http://localhost:3000"}, "http://evil.example", "", ""},
		{"wildcard allows any origin without credentials", []string{"*"}, "http://viewer.example", "*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := middleware.CORS(config.CORSConfig{AllowedOrigins: tt.origins})

			req := httptest.NewRequest(http.MethodGet, "/share", nil)
			req.Header.Set("Origin", tt.origin)

			w, called := runMiddleware(mw, req)

			if !called {
				t.Fatal("Expected simple request to reach the handler")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Expected Allow-Origin %q, got %q", tt.wantOrigin, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("Expected Allow-Credentials %q, got %q", tt.wantCredentials, got)
			}
		})
	}
}
