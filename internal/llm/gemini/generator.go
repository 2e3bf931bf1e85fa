package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"beachtrack/internal/config"
	"beachtrack/internal/llm"
	"beachtrack/internal/port"
)

const defaultModel = "gemini-2.0-flash"

// Generator implements port.TextGenerator using the Gemini API through the genai SDK.
type Generator struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGenerator creates a Gemini-backed text generator.
func NewGenerator(ctx context.Context, cfg *config.AIProviderConfig) (*Generator, error) {
	return newGenerator(ctx, cfg, "")
}

// NewGeneratorWithBaseURL creates a generator pointing at a custom API base URL (for testing).
func NewGeneratorWithBaseURL(ctx context.Context, cfg *config.AIProviderConfig, baseURL string) (*Generator, error) {
	return newGenerator(ctx, cfg, baseURL)
}

// Factory adapts NewGenerator to llm.ProviderFactory.
func Factory(ctx context.Context, cfg *config.AIProviderConfig) (port.TextGenerator, error) {
	return NewGenerator(ctx, cfg)
}

func newGenerator(ctx context.Context, cfg *config.AIProviderConfig, baseURL string) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Generator{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (*port.GenerateOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(g.temperature),
		},
	)
	if err != nil {
		if code, ok := apiErrorCode(err); ok && code == http.StatusTooManyRequests {
			return nil, llm.NewRateLimitError("gemini", err, 0)
		}
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	return &port.GenerateOutput{
		Text:      text,
		ModelUsed: g.model,
	}, nil
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, true
	}
	return 0, false
}

// Compile-time check.
var _ port.TextGenerator = (*Generator)(nil)
