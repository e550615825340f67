package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/search" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected a User-Agent header")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFinanceClient_SearchSymbol(t *testing.T) {
	t.Run("returns first quote symbol", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"quotes":[{"symbol":"AAPL","shortname":"Apple Inc."},{"symbol":"APC.F"}]}`)
		client := NewFinanceClient(srv.URL, time.Second)

		symbol, err := client.SearchSymbol(context.Background(), "Apple Inc")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if symbol != "AAPL" {
			t.Errorf("Expected AAPL, got %s", symbol)
		}
	})

	t.Run("sends query parameters", func(t *testing.T) {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q") + "|" + r.URL.Query().Get("quotesCount") + "|" + r.URL.Query().Get("newsCount")
			_, _ = w.Write([]byte(`{"quotes":[{"symbol":"RELIANCE.NS"}]}`))
		}))
		defer srv.Close()

		client := NewFinanceClient(srv.URL, time.Second)
		if _, err := client.SearchSymbol(context.Background(), "reliance industries"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if gotQuery != "reliance industries|1|0" {
			t.Errorf("Unexpected query %q", gotQuery)
		}
	})

	t.Run("empty quotes is an error", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `{"quotes":[]}`)
		client := NewFinanceClient(srv.URL, time.Second)

		if _, err := client.SearchSymbol(context.Background(), "nothing"); err == nil {
			t.Error("Expected error for empty quotes")
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := newTestServer(t, http.StatusTooManyRequests, `{}`)
		client := NewFinanceClient(srv.URL, time.Second)

		if _, err := client.SearchSymbol(context.Background(), "apple"); err == nil {
			t.Error("Expected error for 429")
		}
	})

	t.Run("oversized response is an error", func(t *testing.T) {
		body := `{"quotes":[{"symbol":"AAPL"}]}`
		srv := newTestServer(t, http.StatusOK, body)
		client := NewFinanceClient(srv.URL, time.Second)
		client.maxBody = int64(len(body)) - 1

		_, err := client.SearchSymbol(context.Background(), "apple")
		if err == nil || !strings.Contains(err.Error(), "exceeds") {
			t.Errorf("Expected size error, got %v", err)
		}
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		srv := newTestServer(t, http.StatusOK, `<html>`)
		client := NewFinanceClient(srv.URL, time.Second)

		if _, err := client.SearchSymbol(context.Background(), "apple"); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})
}
