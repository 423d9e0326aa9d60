package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the fixed local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Model describes one locally installed model, as reported by /api/tags.
// Fetched fresh on every run, never cached.
type Model struct {
	Name string `json:"name"`
}

// Client talks to the local Ollama HTTP API.
type Client struct {
	baseURL string
	// probe has a short timeout: availability checks and model listing should
	// answer quickly or not at all. generate has none, since a cold local
	// model can take arbitrarily long to produce a completion.
	probe    *http.Client
	generate *http.Client
}

// NewClient creates a client against the default local endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL exists for tests; the endpoint is otherwise fixed.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		probe:    &http.Client{Timeout: 5 * time.Second},
		generate: &http.Client{},
	}
}

// IsAvailable reports whether the Ollama service is reachable. Any network
// error, non-success status, or undecodable body reads as "not available";
// this is a routine boolean gate, never an error to the caller.
func (c *Client) IsAvailable() bool {
	resp, err := c.probe.Get(c.baseURL + "/api/tags")
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}

	return true
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

// ListModels returns the installed models, or an empty slice on any failure.
func (c *Client) ListModels() []Model {
	resp, err := c.probe.Get(c.baseURL + "/api/tags")
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil
	}

	models := make([]Model, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			models = append(models, m)
		}
	}

	return models
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs a single non-streaming completion and returns the raw
// response text.
func (c *Client) Generate(ctx context.Context, model, promptText string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: promptText,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.generate.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Response, nil
}
