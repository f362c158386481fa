package core

import (
	"context"
	"sync/atomic"

	"github.com/duotext/duotext/internal/core/model"
	"github.com/duotext/duotext/internal/provider"
)

type MockTranslator struct {
	Translated string
	Err        error
	Calls      atomic.Int32
	LastSource string
	LastTarget string
}

func (m *MockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.Calls.Add(1)
	m.LastSource = sourceLang
	m.LastTarget = targetLang
	if m.Err != nil {
		return "", m.Err
	}
	return m.Translated, nil
}

type MockExtractor struct {
	// Queue is consumed one response per call; when exhausted, Entities is
	// returned.
	Queue    [][]model.Entity
	Entities []model.Entity
	Err      error
	Calls    atomic.Int32
	Langs    []string
}

func (m *MockExtractor) Extract(ctx context.Context, text, language string) ([]model.Entity, error) {
	m.Calls.Add(1)
	m.Langs = append(m.Langs, language)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Queue) > 0 {
		next := m.Queue[0]
		m.Queue = m.Queue[1:]
		return next, nil
	}
	return m.Entities, nil
}

var _ provider.Translator = (*MockTranslator)(nil)
var _ provider.Extractor = (*MockExtractor)(nil)
