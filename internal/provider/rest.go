package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/duotext/duotext/internal/logger"
)

// RESTTranslator speaks the LibreTranslate-compatible POST /translate JSON
// API. Transient failures are retried with backoff before surfacing as a
// TranslationError.
type RESTTranslator struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewRESTTranslator(baseURL, apiKey string) *RESTTranslator {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = logger.NewLeveled(logger.Get())

	return &RESTTranslator{
		client:  rc.StandardClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type restTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type restTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

func (t *RESTTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload, err := json.Marshal(restTranslateRequest{
		Q:      text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: t.apiKey,
	})
	if err != nil {
		return "", &TranslationError{Provider: "rest", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", &TranslationError{Provider: "rest", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &TranslationError{Provider: "rest", Err: err}
	}
	defer resp.Body.Close()

	var result restTranslateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &TranslationError{Provider: "rest", Err: fmt.Errorf("decoding response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		msg := result.Error
		if msg == "" {
			msg = resp.Status
		}
		return "", &TranslationError{Provider: "rest", Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)}
	}
	return result.TranslatedText, nil
}
