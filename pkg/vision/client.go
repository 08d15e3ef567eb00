// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is an HTTP-backed Analyzer talking to an image-analysis service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the analysis service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Init verifies the analysis service is reachable.
func (c *Client) Init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("vision service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vision service returned status: %d", resp.StatusCode)
	}
	return nil
}

type analyzeRequest struct {
	ImageURL string `json:"image_url"`
}

// AnalyzeImage implements Analyzer. All transport and decoding failures are
// converted into an error-shaped Analysis.
func (c *Client) AnalyzeImage(ctx context.Context, imageURL string) Analysis {
	body, err := json.Marshal(analyzeRequest{ImageURL: imageURL})
	if err != nil {
		return Analysis{Error: fmt.Sprintf("failed to encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Analysis{Error: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Analysis{Error: fmt.Sprintf("analysis call failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Analysis{Error: fmt.Sprintf("analysis service returned status %d", resp.StatusCode)}
	}

	var analysis Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return Analysis{Error: fmt.Sprintf("failed to decode analysis: %v", err)}
	}
	return analysis
}

var _ Analyzer = (*Client)(nil)
var _ Initializer = (*Client)(nil)
