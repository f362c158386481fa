package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTTranslatorTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)

		var req restTranslateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Q)
		assert.Equal(t, "en", req.Source)
		assert.Equal(t, "fr", req.Target)

		json.NewEncoder(w).Encode(restTranslateResponse{TranslatedText: "bonjour"})
	}))
	defer srv.Close()

	tr := NewRESTTranslator(srv.URL, "")

	out, err := tr.Translate(context.Background(), "hello", "en", "fr")

	require.NoError(t, err)
	assert.Equal(t, "bonjour", out)
}

func TestRESTTranslatorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(restTranslateResponse{Error: "invalid api key"})
	}))
	defer srv.Close()

	tr := NewRESTTranslator(srv.URL, "bad-key")

	_, err := tr.Translate(context.Background(), "hello", "en", "fr")

	var terr *TranslationError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Error(), "invalid api key")
}

func TestRESTTranslatorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	tr := NewRESTTranslator(srv.URL, "")

	_, err := tr.Translate(context.Background(), "hello", "en", "fr")

	var terr *TranslationError
	assert.ErrorAs(t, err, &terr)
}
