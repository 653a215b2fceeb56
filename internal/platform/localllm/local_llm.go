// Package localllm talks to a vision model served on the local machine
// through an OpenAI compatible chat completions endpoint.
package localllm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dietapp/internal/recipe"
)

// Defaults for an LM Studio style server on the local machine.
const (
	DefaultURL   = "http://localhost:1234/v1/chat/completions"
	DefaultModel = "gemma-3-12b-it:2"
)

const (
	systemPrompt = "Sei un assistente che trascrive ricette italiane. Rispondi solo con JSON valido."
	maxErrorBody = 512
)

// ErrEmptyAnswer is returned when the model sends no choices back.
var ErrEmptyAnswer = errors.New("local llm returned no choices")

// Client scans recipe photos with a local model.
type Client struct {
	httpClient *http.Client
	apiURL     string
	model      string
}

// NewClient creates a new client for the local LLM. Empty arguments fall
// back to DefaultURL and DefaultModel.
func NewClient(apiURL, model string) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiURL:     apiURL,
		model:      model,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func textPart(s string) contentPart {
	return contentPart{Type: "text", Text: s}
}

func imagePart(data []byte, format string) contentPart {
	url := "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)
	return contentPart{Type: "image_url", ImageURL: &imageURL{URL: url}}
}

// complete sends the prompt and the photo and returns the text of the first
// choice.
func (c *Client) complete(ctx context.Context, prompt string, imageData []byte, format string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: []contentPart{textPart(systemPrompt)}},
			{Role: "user", Content: []contentPart{textPart(prompt), imagePart(imageData, format)}},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("local llm answered status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyAnswer
	}
	return out.Choices[0].Message.Content, nil
}

// ScanRecipe reads a recipe draft from a photo. format is the image
// subtype, "jpeg" or "png".
func (c *Client) ScanRecipe(ctx context.Context, imageData []byte, format string) (*recipe.Recipe, error) {
	text, err := c.complete(ctx, recipe.ScanPrompt, imageData, format)
	if err != nil {
		return nil, err
	}

	r, err := recipe.ParseDraft(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse local llm recipe: %w", err)
	}
	return r, nil
}
