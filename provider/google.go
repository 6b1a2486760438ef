package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZaguanLabs/lingo"
)

const defaultGoogleBaseURL = "https://translation.googleapis.com/language/translate/v2"

func init() {
	Register("google", func(cfg Config) (Provider, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("provider: google requires an API key")
		}
		return NewGoogle(cfg), nil
	})
}

// Google translates via the Google Cloud Translation v2 REST API.
type Google struct {
	apiKey  string
	baseURL string
	client  *http.Client
	usage   Usage
}

// NewGoogle creates a Google Translate provider.
func NewGoogle(cfg Config) *Google {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &Google{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  httpClient(cfg),
	}
}

// Name implements Provider.
func (g *Google) Name() string {
	return "google"
}

// Usage returns a snapshot of the provider's request counters.
func (g *Google) Usage() UsageSnapshot {
	return g.usage.Snapshot()
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

type googleDetectResponse struct {
	Data struct {
		Detections [][]struct {
			Language string `json:"language"`
		} `json:"detections"`
	} `json:"data"`
}

type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// Translate implements Provider.
func (g *Google) Translate(ctx context.Context, content, sourceLang, targetLang string) (string, error) {
	form := url.Values{
		"q":      {content},
		"source": {lingo.BaseLang(sourceLang)},
		"target": {lingo.BaseLang(targetLang)},
		"format": {"text"},
	}

	failed := false
	defer func() { g.usage.Record(failed) }()

	body, err := g.post(ctx, g.baseURL, form)
	if err != nil {
		failed = true
		return "", err
	}

	var parsed googleTranslateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		failed = true
		return "", g.malformed("unparseable translate response", err)
	}
	if len(parsed.Data.Translations) == 0 {
		failed = true
		return "", g.malformed("empty translations array", nil)
	}
	return parsed.Data.Translations[0].TranslatedText, nil
}

// DetectLanguage implements the LanguageDetector capability.
func (g *Google) DetectLanguage(ctx context.Context, content string) (string, error) {
	body, err := g.post(ctx, g.baseURL+"/detect", url.Values{"q": {content}})
	if err != nil {
		g.usage.Record(true)
		return "", err
	}
	g.usage.Record(false)

	var parsed googleDetectResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", g.malformed("unparseable detect response", err)
	}
	if len(parsed.Data.Detections) == 0 || len(parsed.Data.Detections[0]) == 0 {
		return "", g.malformed("empty detections array", nil)
	}
	return parsed.Data.Detections[0][0].Language, nil
}

// TestConnection implements Provider with a cheap languages listing.
func (g *Google) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/languages?key="+url.QueryEscape(g.apiKey), nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return g.wrapTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return g.wrapStatus(resp.StatusCode, body)
	}
	return nil
}

func (g *Google) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?key="+url.QueryEscape(g.apiKey), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", lingo.UserAgent())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.wrapTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, g.wrapTransport(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, g.wrapStatus(resp.StatusCode, body)
	}
	return body, nil
}

func (g *Google) wrapTransport(err error) error {
	return &lingo.ProviderError{
		Kind:      lingo.ErrNetwork,
		Provider:  g.Name(),
		Message:   "request failed",
		Cause:     err,
		Retryable: true,
	}
}

func (g *Google) wrapStatus(status int, body []byte) error {
	var parsed googleErrorResponse
	message := fmt.Sprintf("HTTP %d", status)
	reason := ""
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
		if len(parsed.Error.Errors) > 0 {
			reason = parsed.Error.Errors[0].Reason
		}
	}

	kind := lingo.ErrNetwork
	retryable := status >= 500
	switch {
	case status == http.StatusUnauthorized:
		kind = lingo.ErrAuth
	case status == http.StatusForbidden:
		kind = lingo.ErrAuth
		if reason == "dailyLimitExceeded" || reason == "userRateLimitExceeded" {
			kind = lingo.ErrQuota
		}
	case status == http.StatusTooManyRequests:
		kind = lingo.ErrQuota
		retryable = true
	case status == http.StatusBadRequest:
		kind = lingo.ErrMalformedResponse
		if strings.Contains(strings.ToLower(message), "language") {
			kind = lingo.ErrUnsupportedLanguage
		}
	}

	return &lingo.ProviderError{
		Kind:      kind,
		Provider:  g.Name(),
		Message:   message,
		Retryable: retryable,
	}
}

func (g *Google) malformed(message string, cause error) error {
	return &lingo.ProviderError{
		Kind:     lingo.ErrMalformedResponse,
		Provider: g.Name(),
		Message:  message,
		Cause:    cause,
	}
}

// Verify Google implements Provider and LanguageDetector
var (
	_ Provider         = (*Google)(nil)
	_ LanguageDetector = (*Google)(nil)
)
