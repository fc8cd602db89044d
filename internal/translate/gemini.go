package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiProvider struct {
	client       *genai.Client
	model        string
	sourceLocale string
}

func newGeminiProvider(cfg Config) (Provider, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY environment variable or configure provider.gemini_key")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiProvider{
		client:       client,
		model:        model,
		sourceLocale: cfg.SourceLocale,
	}, nil
}

func (p *geminiProvider) TranslateBatch(ctx context.Context, batch map[string]string, targetLocale string) (map[string]string, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}

	prompt := fmt.Sprintf("Translate the values of this JSON object from %s to %s. Keep every key exactly as-is. Do not translate placeholders like {name} or {{count}}, HTML tags, or URLs. Respond with only the translated JSON object.\n\n%s",
		p.sourceLocale, targetLocale, payload)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.3),
	})
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no translation returned")
	}
	return decodeBatchResponse(text)
}

// The genai SDK does not expose a stable typed quota error across
// backends, so classification falls back to the status text.
func classifyGeminiError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("Gemini API error: %w", err)
}
