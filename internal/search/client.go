package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"symptom-voice-agent/internal/symptom"
)

const defaultBaseURL = "https://www.searchapi.io/api/v1/search"

// UpstreamError reports a failed call to the commerce search backend.
type UpstreamError struct {
	Query string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("search for %q failed: %v", e.Query, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Listings whose title contains any of these are media, not products.
var irrelevantKeywords = []string{"book", "dvd", "video", "movie", "kindle", "audio", "cd"}

// Client queries the SearchAPI amazon_search engine.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ symptom.SearchClient = (*Client)(nil)

func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL points the client at an alternate backend, used by tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type organicResult struct {
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Price     string  `json:"price"`
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"reviews"`
	Link      string  `json:"link"`
	Thumbnail string  `json:"thumbnail"`
	IsPrime   bool    `json:"is_prime"`
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
}

// Search returns ranked product listings for a query. Media listings and
// listings without a rating or reviews are dropped; the maxResults cap is
// applied after filtering.
func (c *Client) Search(ctx context.Context, query, domain string, maxResults int) ([]symptom.Product, error) {
	params := url.Values{}
	params.Set("engine", "amazon_search")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("amazon_domain", domain)
	params.Set("sort_by", "featured")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Query: query, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Query: query, Err: errors.Wrap(err, "searchapi request")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &UpstreamError{
			Query: query,
			Err:   fmt.Errorf("searchapi returned %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &UpstreamError{Query: query, Err: errors.Wrap(err, "decode searchapi response")}
	}

	products := make([]symptom.Product, 0, len(data.OrganicResults))
	for _, r := range data.OrganicResults {
		if isIrrelevant(r.Title) {
			continue
		}
		// Unrated or unreviewed listings are noise, not candidates.
		if r.Rating <= 0 || r.Reviews <= 0 {
			continue
		}
		price := r.Price
		if price == "" {
			price = symptom.PriceUnavailable
		}
		products = append(products, symptom.Product{
			Title:     r.Title,
			Brand:     r.Brand,
			Price:     price,
			Rating:    r.Rating,
			Reviews:   r.Reviews,
			Link:      r.Link,
			Thumbnail: r.Thumbnail,
			IsPrime:   r.IsPrime,
		})
	}

	if maxResults > 0 && len(products) > maxResults {
		products = products[:maxResults]
	}
	return products, nil
}

func isIrrelevant(title string) bool {
	title = strings.ToLower(title)
	for _, keyword := range irrelevantKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}
