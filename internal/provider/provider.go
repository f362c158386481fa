// Package provider holds the two external capabilities the pipeline consumes:
// translation and entity extraction. Every implementation converts its own
// failures into the typed errors below; nothing vendor-specific escapes.
package provider

import (
	"context"
	"fmt"

	"github.com/duotext/duotext/internal/core/model"
)

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Extractor returns the named entities of a text, already filtered to the
// allow-listed types.
type Extractor interface {
	Extract(ctx context.Context, text, language string) ([]model.Entity, error)
}

// LLMClient is a minimal text-generation interface shared by the vendor
// clients.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranslationError wraps any failure of the translation capability. It is
// fatal to the request that triggered it.
type TranslationError struct {
	Provider string
	Err      error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation via %s failed: %v", e.Provider, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// ExtractionError wraps any failure of the entity-extraction capability. The
// pipeline degrades it to "zero entities" rather than failing the request.
type ExtractionError struct {
	Provider string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("entity extraction via %s failed: %v", e.Provider, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
