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

// FinGenieClient talks to the general-knowledge provider. The wire format
// is the Gemini generateContent envelope with the API key as a query
// parameter.
type FinGenieClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewFinGenieClient(apiURL, apiKey string) *FinGenieClient {
	return &FinGenieClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.FinGenieTimeout},
	}
}

func (c *FinGenieClient) Name() string { return "fingenie" }

func (c *FinGenieClient) Answer(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": query},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fingenie request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fingenie returned status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("fingenie returned no candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
