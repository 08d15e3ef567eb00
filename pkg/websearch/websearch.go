// Package websearch defines the web-search collaborator contract. The
// provider chooses its own query text; this core only supplies an
// approximate location hint at construction time.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Provider runs a web search for provider-chosen queries.
type Provider interface {
	// Search runs the search around the configured location hint and
	// returns results in relevance order.
	Search(ctx context.Context) ([]Result, error)
}

// Client is an HTTP-backed Provider.
type Client struct {
	baseURL  string
	location string
	client   *http.Client
}

// NewClient creates a Client for the search service at baseURL with the
// given approximate location hint.
func NewClient(baseURL, location string) *Client {
	return &Client{
		baseURL:  baseURL,
		location: location,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	Location string `json:"location,omitempty"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search implements Provider.
func (c *Client) Search(ctx context.Context) ([]Result, error) {
	body, err := json.Marshal(searchRequest{Location: c.location})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search service returned status: %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return sr.Results, nil
}

var _ Provider = (*Client)(nil)
