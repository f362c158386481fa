package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duotext/duotext/internal/config"
	"github.com/duotext/duotext/internal/core"
	"github.com/duotext/duotext/internal/core/color"
	"github.com/duotext/duotext/internal/core/highlight"
	"github.com/duotext/duotext/internal/core/model"
	"github.com/duotext/duotext/internal/provider"
)

type stubTranslator struct {
	out string
	err error
}

func (s *stubTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return s.out, s.err
}

type stubExtractor struct {
	entities []model.Entity
}

func (s *stubExtractor) Extract(ctx context.Context, text, language string) ([]model.Entity, error) {
	return s.entities, nil
}

type processResponse struct {
	SentencePairs  []model.SentencePair `json:"sentencePairs"`
	SourceText     string               `json:"sourceText"`
	TranslatedText string               `json:"translatedText"`
	Entities       []model.Entity       `json:"entities"`
	Error          string               `json:"error"`
}

func newTestServer(t *testing.T, translator provider.Translator, extractor provider.Extractor, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pipeline := core.NewPipeline(translator, extractor, core.Options{
		ColorMode:            color.ModeDistinct,
		HighlightPolicy:      highlight.PolicyAll,
		ReextractTranslation: true,
		SegmentSentences:     true,
	})
	return NewServerWith(pipeline, cfg).SetupRouter()
}

func doJSON(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) processResponse {
	t.Helper()
	var resp processResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProcessEndpoint(t *testing.T) {
	translator := &stubTranslator{out: "Alice est allée à Paris."}
	extractor := &stubExtractor{entities: []model.Entity{{Name: "Paris", Type: model.EntityLocation}}}
	r := newTestServer(t, translator, extractor, nil)

	w := doJSON(r, "/process", `{"text":"Alice went to Paris.","sourceLanguage":"en","targetLanguage":"fr"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.Len(t, resp.SentencePairs, 1)
	assert.Contains(t, resp.SourceText, `<span class="entity"`)
	assert.Contains(t, resp.TranslatedText, `<span class="entity"`)
	require.Len(t, resp.Entities, 1)
	assert.Equal(t, "Paris", resp.Entities[0].Name)
}

func TestProcessEndpointMissingFields(t *testing.T) {
	r := newTestServer(t, &stubTranslator{out: "x"}, nil, nil)

	for _, body := range []string{
		`{}`,
		`{"text":"hi"}`,
		`{"text":"hi","sourceLanguage":"en"}`,
		`not json`,
	} {
		w := doJSON(r, "/process", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.NotEmpty(t, decode(t, w).Error)
	}
}

func TestProcessEndpointTranslationFailure(t *testing.T) {
	translator := &stubTranslator{err: &provider.TranslationError{Provider: "stub", Err: errors.New("quota")}}
	r := newTestServer(t, translator, nil, nil)

	w := doJSON(r, "/process", `{"text":"hi","sourceLanguage":"en","targetLanguage":"fr"}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "translation failed", decode(t, w).Error)
}

func TestInterimEndpoint(t *testing.T) {
	translator := &stubTranslator{out: "Bonjour tout le monde. Ça va."}
	extractor := &stubExtractor{entities: []model.Entity{{Name: "monde", Type: model.EntityLocation}}}
	r := newTestServer(t, translator, extractor, nil)

	w := doJSON(r, "/interim", `{"text":"Hello everyone. How are you.","sourceLanguage":"en","targetLanguage":"fr"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	// single unsegmented, unannotated pair
	require.Len(t, resp.SentencePairs, 1)
	assert.NotContains(t, resp.SentencePairs[0].Translation, "<span")
}

func TestRequireTokenMiddleware(t *testing.T) {
	cfg := config.Default()
	cfg.Server.APIToken = "secret"
	r := newTestServer(t, &stubTranslator{out: "ok"}, nil, cfg)

	w := doJSON(r, "/interim", `{"text":"hi","sourceLanguage":"en","targetLanguage":"fr"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "/interim", `{"text":"hi","sourceLanguage":"en","targetLanguage":"fr"}`,
		map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimitRPS = 1
	cfg.Server.RateLimitBurst = 1
	r := newTestServer(t, &stubTranslator{out: "ok"}, nil, cfg)

	body := `{"text":"hi","sourceLanguage":"en","targetLanguage":"fr"}`
	first := doJSON(r, "/interim", body, nil)
	second := doJSON(r, "/interim", body, nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestServer(t, &stubTranslator{out: "ok"}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
