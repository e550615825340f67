// Package stooq fetches daily price bars from stooq.com as CSV.
package stooq

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// DefaultBaseURL is the public Stooq host.
const DefaultBaseURL = "https://stooq.com"

// csvHeader is how a genuine daily-bars payload starts. Stooq answers unknown
// symbols with 200 and a "No data" body, so the status alone proves nothing.
const csvHeader = "Date,Open,High,Low,Close,Volume"

// maxBodyBytes caps a history download. Decades of daily bars stay well
// below it. Rows are oldest first, so a truncated body would silently lose
// the latest prices and is rejected instead.
const maxBodyBytes = 8 << 20

// Client fetches daily bars.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxBody    int64
}

// NewClient creates a Stooq client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxBody:    maxBodyBytes,
	}
}

// Candidates returns the identifiers tried for a symbol, in order: the bare
// lowercased symbol, then the same with the ".us" market suffix.
func Candidates(symbol string) []string {
	sym := strings.ToLower(strings.Join(strings.Fields(symbol), ""))
	if sym == "" {
		return nil
	}
	return []string{sym, sym + ".us"}
}

// FetchDaily returns the full daily close history of symbol in ascending date order.
// The first candidate answering with a valid CSV payload wins.
//
// Returns ErrSymbolNotFound when no candidate yields a payload, and
// ErrNoPriceData when the payload holds no usable rows. A payload larger than
// the download cap fails the fetch.
func (c *Client) FetchDaily(ctx context.Context, symbol string) (model.PriceSeries, error) {
	for _, candidate := range Candidates(symbol) {
		body, err := c.fetchCSV(ctx, candidate)
		if err != nil {
			return model.PriceSeries{}, err
		}
		if body == nil {
			continue
		}

		points, err := ParseDailyCSV(body)
		if err != nil {
			return model.PriceSeries{}, fmt.Errorf("failed to parse stooq csv for %s: %w", candidate, err)
		}
		if len(points) == 0 {
			return model.PriceSeries{}, fmt.Errorf("%s: %w", candidate, apperrors.ErrNoPriceData)
		}

		return model.PriceSeries{Symbol: strings.ToUpper(symbol), Points: points}, nil
	}

	return model.PriceSeries{}, fmt.Errorf("%s: %w", symbol, apperrors.ErrSymbolNotFound)
}

// fetchCSV returns the body of a 2xx answer carrying the expected header, or
// nil for a miss. Transport errors count as a miss so the next candidate is
// tried; only an oversized payload is an error.
func (c *Client) fetchCSV(ctx context.Context, candidate string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", c.baseURL, url.QueryEscape(candidate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, nil
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("stooq response for %s exceeds %d bytes", candidate, c.maxBody)
	}
	if !bytes.Contains(data, []byte(csvHeader)) {
		return nil, nil
	}

	return data, nil
}

// ParseDailyCSV reads Date,Open,High,Low,Close,Volume rows. Rows with an
// unparsable date or a non-finite close are skipped.
func ParseDailyCSV(data []byte) ([]model.PricePoint, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	points := make([]model.PricePoint, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 5 {
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}

		closePrice, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil || math.IsNaN(closePrice) || math.IsInf(closePrice, 0) {
			continue
		}

		points = append(points, model.PricePoint{Date: date.UTC(), Close: closePrice})
	}

	slices.SortStableFunc(points, func(a, b model.PricePoint) int {
		return a.Date.Compare(b.Date)
	})

	return points, nil
}
