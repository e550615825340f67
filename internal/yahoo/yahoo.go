package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// firstSymbolPath selects the best-ranked quote of a search response.
const firstSymbolPath = "$.quotes[0].symbol"

// maxBodyBytes caps a search response; one quote and no news is a few KiB.
const maxBodyBytes = 1 << 20

// FinanceClient provides methods for querying the Yahoo Finance search API.
// It wraps an HTTP client and sets the headers Yahoo expects from a browser.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	maxBody    int64
}

// NewFinanceClient creates a new Yahoo Finance client.
// An empty baseURL selects DefaultBaseURL; a zero timeout leaves the
// http.Client without one.
func NewFinanceClient(baseURL string, timeout time.Duration) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxBody:    maxBodyBytes,
	}
}

// SearchSymbol asks Yahoo for the ticker that best matches a free-text query,
// such as a company name.
//
// Returns:
//   - string: The first symbol of the search result
//   - error: If the request fails, the response is not JSON, or no quote matched
func (c *FinanceClient) SearchSymbol(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/v1/finance/search?q=%s&quotesCount=1&newsCount=0",
		c.baseURL,
		url.QueryEscape(query),
	)

	result, err := c.queryYahoo(ctx, endpoint)
	if err != nil {
		return "", err
	}

	value, err := jsonpath.Get(firstSymbolPath, result)
	if err != nil {
		return "", fmt.Errorf("no symbol found for %q: %w", query, err)
	}
	// jsonpath may answer with a one-element list instead of the scalar.
	if list, ok := value.([]any); ok && len(list) > 0 {
		value = list[0]
	}

	symbol, ok := value.(string)
	if !ok || strings.TrimSpace(symbol) == "" {
		return "", fmt.Errorf("no symbol found for %q", query)
	}

	return symbol, nil
}

// queryYahoo executes a GET against Yahoo and decodes the JSON body into a
// generic value suitable for jsonpath.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("yahoo response exceeds %d bytes", c.maxBody)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode yahoo response: %w", err)
	}

	return result, nil
}
