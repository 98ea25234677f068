package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// CompletionClient talks to a plain JSON text-completion endpoint:
// POST {BaseURL}/complete {"prompt": ...} -> {"text": ...}.
type CompletionClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewCompletionClient creates a client with no request timeout; callers bound
// calls through ctx.
func NewCompletionClient(baseURL, apiKey string) *CompletionClient {
	return &CompletionClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{},
	}
}

type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

type CompletionResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (c *CompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	b, err := json.Marshal(CompletionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("completion encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/complete", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	var out CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("completion decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 {
		if out.Error != "" {
			return "", fmt.Errorf("completion error (status %d): %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("completion error (status %d)", resp.StatusCode)
	}

	return out.Text, nil
}
