package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogenai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/carecompass/platform/internal/media"
)

// Request is one schema-constrained inference call: inline media parts in the
// user's selection order, followed by the task instruction. The schema is a
// request to the backend, not a guarantee on its response; callers still
// validate what comes back.
type Request struct {
	ModelID     string
	Instruction string
	Schema      *gogenai.Schema
	Attachments []media.Attachment
}

// Generator abstracts the inference backend so services and tests can swap in
// stubs.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Close() error
}

// Client implements Generator using Google's Gemini API.
type Client struct {
	client         *gogenai.Client
	defaultModelID string
}

// NewClient creates a Gemini-backed Generator.
func NewClient(ctx context.Context, apiKey, modelID string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("genai: api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := gogenai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai: failed to create client: %w", err)
	}

	return &Client{client: client, defaultModelID: modelID}, nil
}

// permissiveSafetySettings disables blocking across all harm categories.
// Medical imagery and symptom language trip false-positive refusals at the
// default thresholds; this is a considered trade-off, not an oversight.
func permissiveSafetySettings() []*gogenai.SafetySetting {
	categories := []gogenai.HarmCategory{
		gogenai.HarmCategoryHarassment,
		gogenai.HarmCategoryHateSpeech,
		gogenai.HarmCategorySexuallyExplicit,
		gogenai.HarmCategoryDangerousContent,
	}
	settings := make([]*gogenai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &gogenai.SafetySetting{
			Category:  c,
			Threshold: gogenai.HarmBlockNone,
		})
	}
	return settings
}

// Generate sends one structured-output request and returns the raw response
// text. The response is expected to be JSON but may arrive fenced; callers
// normalize it.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	modelID := req.ModelID
	if strings.TrimSpace(modelID) == "" {
		modelID = c.defaultModelID
	}

	model := c.client.GenerativeModel(modelID)
	model.SafetySettings = permissiveSafetySettings()
	model.ResponseMIMEType = "application/json"
	if req.Schema != nil {
		model.ResponseSchema = req.Schema
	}

	// Media parts go first, instruction last, matching the order the backend
	// was tuned against.
	parts := make([]gogenai.Part, 0, len(req.Attachments)+1)
	for _, a := range req.Attachments {
		parts = append(parts, gogenai.Blob{MIMEType: a.MIMEType, Data: a.Data})
	}
	parts = append(parts, gogenai.Text(req.Instruction))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("genai: generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("genai: backend returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("genai: backend returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(gogenai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

// Close releases resources held by the underlying client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
