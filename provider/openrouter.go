package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/lingo"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "openai/gpt-4o-mini"
)

func init() {
	Register("openrouter", func(cfg Config) (Provider, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("provider: openrouter requires an API key")
		}
		return NewOpenRouter(cfg), nil
	})
}

// OpenRouter translates via an OpenAI-compatible chat completion API.
// The default endpoint is OpenRouter's, but any compatible gateway works
// through the BaseURL override.
type OpenRouter struct {
	client      *openai.Client
	model       string
	temperature float32
	usage       Usage
}

// NewOpenRouter creates an OpenRouter provider.
func NewOpenRouter(cfg Config) *OpenRouter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	return &OpenRouter{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: 0.3,
	}
}

// Name implements Provider.
func (p *OpenRouter) Name() string {
	return "openrouter"
}

// Usage returns a snapshot of the provider's request counters.
func (p *OpenRouter) Usage() UsageSnapshot {
	return p.usage.Snapshot()
}

// Translate implements Provider using a chat completion.
func (p *OpenRouter) Translate(ctx context.Context, content, sourceLang, targetLang string) (string, error) {
	failed := false
	defer func() { p.usage.Record(failed) }()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt(sourceLang, targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		failed = true
		return "", p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		failed = true
		return "", &lingo.ProviderError{
			Kind:      lingo.ErrMalformedResponse,
			Provider:  p.Name(),
			Message:   "no choices in completion response",
			Retryable: true,
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// DetectLanguage implements the LanguageDetector capability via a short
// classification prompt.
func (p *OpenRouter) DetectLanguage(ctx context.Context, content string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Identify the language of the user's text. Respond with only its two-letter ISO 639-1 code.",
			},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		MaxTokens:   5,
		Temperature: 0,
	})
	if err != nil {
		p.usage.Record(true)
		return "", p.wrapError(err)
	}
	p.usage.Record(false)

	if len(resp.Choices) == 0 {
		return "", &lingo.ProviderError{
			Kind:     lingo.ErrMalformedResponse,
			Provider: p.Name(),
			Message:  "no choices in detection response",
		}
	}

	code := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	if len(code) != 2 {
		return "", &lingo.ProviderError{
			Kind:     lingo.ErrMalformedResponse,
			Provider: p.Name(),
			Message:  fmt.Sprintf("unexpected detection output %q", code),
		}
	}
	return code, nil
}

// TestConnection implements Provider by listing models.
func (p *OpenRouter) TestConnection(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return p.wrapError(err)
	}
	return nil
}

// systemPrompt builds the translation instruction. Preservation markers
// and excluded terms are called out so the model leaves them untouched.
func (p *OpenRouter) systemPrompt(sourceLang, targetLang string) string {
	return fmt.Sprintf(`You are a translation engine. Translate the user's text from %s to %s.
- Respond with ONLY the translation, no commentary, no quotes.
- Preserve HTML tags, URLs, email addresses, placeholders like {{name}} and %%s, and any [[!...!]] tokens exactly as they appear.
- Preserve meaningful whitespace and line breaks.`,
		lingo.GetLanguageName(sourceLang), lingo.GetLanguageName(targetLang))
}

// wrapError maps go-openai errors to the provider error taxonomy.
func (p *OpenRouter) wrapError(err error) error {
	kind := lingo.ErrNetwork
	retryable := true
	message := "chat completion failed"

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			kind = lingo.ErrAuth
			retryable = false
		case http.StatusTooManyRequests, http.StatusPaymentRequired:
			kind = lingo.ErrQuota
			retryable = true
		case http.StatusBadRequest:
			kind = lingo.ErrMalformedResponse
			retryable = false
		default:
			retryable = apiErr.HTTPStatusCode >= 500
		}
		message = fmt.Sprintf("HTTP %d", apiErr.HTTPStatusCode)
	}

	return &lingo.ProviderError{
		Kind:      kind,
		Provider:  p.Name(),
		Message:   message,
		Cause:     err,
		Retryable: retryable,
	}
}

// Verify OpenRouter implements Provider and LanguageDetector
var (
	_ Provider         = (*OpenRouter)(nil)
	_ LanguageDetector = (*OpenRouter)(nil)
)
