// Package gemini scans recipe photos with the Gemini API.
package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"dietapp/internal/recipe"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// Client is a client for the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(0.2)
	m.ResponseMIMEType = "application/json"
	return &Client{client: client, model: m}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateImageHash calculates the SHA256 hash of the image data.
func GenerateImageHash(imageData []byte) string {
	hash := sha256.Sum256(imageData)
	return hex.EncodeToString(hash[:])
}

// ScanRecipe reads a recipe draft from a photo. format is the image
// subtype, "jpeg" or "png".
func (c *Client) ScanRecipe(ctx context.Context, imageData []byte, format string) (*recipe.Recipe, error) {
	prompt := []genai.Part{
		genai.ImageData(format, imageData),
		genai.Text(recipe.ScanPrompt),
	}

	resp, err := c.model.GenerateContent(ctx, prompt...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	r, err := recipe.ParseDraft(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Gemini recipe: %w", err)
	}
	return r, nil
}
