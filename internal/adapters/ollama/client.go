// Package ollama implements the vision-model port against an Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// keywordPrompt is the fixed instruction sent with every image.
const keywordPrompt = `Describe the image as exactly 4 keywords. Output in JSON format. Use the following schema: {"keywords": ["...", "...", "...", "..."]}.`

// Client talks to an Ollama server's HTTP API.
type Client struct {
	host       string
	model      string
	httpClient *http.Client
}

// New creates a client for the given server base URL (e.g.
// http://localhost:11434) and model name.
func New(host, model string) *Client {
	return &Client{
		host:       strings.TrimRight(host, "/"),
		model:      model,
		httpClient: &http.Client{},
	}
}

// Model returns the model name this client classifies with.
func (c *Client) Model() string {
	return c.model
}

// Message is one role-tagged chat message. Images carry base64-encoded
// payloads alongside the text content.
type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Describe implements the VisionModel port: one synchronous chat request
// carrying the keyword instruction and the base64-encoded image. The model's
// text response is returned verbatim; callers parse it.
func (c *Client) Describe(ctx context.Context, image []byte) (string, error) {
	body := chatRequest{
		Model:  c.model,
		Stream: false,
		Messages: []Message{{
			Role:    "user",
			Content: keywordPrompt,
			Images:  []string{base64.StdEncoding.EncodeToString(image)},
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat request returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	return parsed.Message.Content, nil
}

// Health reports whether the server is reachable at all.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable at %s: %w", c.host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server at %s returned %s", c.host, resp.Status)
	}
	return nil
}

// Models lists the model names the server has pulled.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tags request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tags request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tags request returned %s", resp.Status)
	}

	var parsed tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tags response: %w", err)
	}

	names := make([]string, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// HasModel reports whether the configured model is available on the server.
// Names match with or without a tag suffix, so "llava-phi3" matches
// "llava-phi3:latest".
func (c *Client) HasModel(ctx context.Context) (bool, error) {
	names, err := c.Models(ctx)
	if err != nil {
		return false, err
	}

	want := c.model
	for _, name := range names {
		if name == want || strings.TrimSuffix(name, ":latest") == want || name == want+":latest" {
			return true, nil
		}
		if base, _, found := strings.Cut(name, ":"); found && base == want {
			return true, nil
		}
	}
	return false, nil
}
