package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bankora/bankora-api/internal/config"
)

// BankoraClient talks to the search-augmented provider. Request is
// {"query": ...}, response is {"response": ...}.
type BankoraClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewBankoraClient(apiURL string) *BankoraClient {
	return &BankoraClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: config.BankoraTimeout},
	}
}

func (c *BankoraClient) Name() string { return "bankora" }

func (c *BankoraClient) Answer(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bankora request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bankora returned status %d", resp.StatusCode)
	}

	var result struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if result.Response == nil {
		return "", fmt.Errorf("bankora returned malformed envelope")
	}

	return *result.Response, nil
}
