package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/duotext/duotext/internal/core/model"
)

// Default prompt templates. Deployments can override them in the [prompts]
// config section; overrides must keep the same fmt verbs in the same order.
const (
	// verbs: source language, target language, text
	defaultTranslatePrompt = `Translate the following text from %s to %s.
Respond with only the translated text, without commentary or quotes.

Text:
%s`

	// verbs: language, text
	defaultExtractPrompt = `Extract the named entities from the following text (language: %s).
Allowed types: PERSON, ORGANIZATION, LOCATION, DATE, NUMBER, PRICE.
Use the exact surface form from the text as the name.
Return a JSON object of the form:
{"entities": [{"name": "Paris", "type": "LOCATION"}]}

Text:
%s`
)

// LLMTranslator implements Translator on top of any LLMClient.
type LLMTranslator struct {
	client LLMClient
	name   string
	prompt string
}

func NewLLMTranslator(client LLMClient, name, prompt string) *LLMTranslator {
	if prompt == "" {
		prompt = defaultTranslatePrompt
	}
	return &LLMTranslator{client: client, name: name, prompt: prompt}
}

func (t *LLMTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	out, err := t.client.Generate(ctx, fmt.Sprintf(t.prompt, sourceLang, targetLang, text))
	if err != nil {
		return "", &TranslationError{Provider: t.name, Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &TranslationError{Provider: t.name, Err: fmt.Errorf("empty translation")}
	}
	return out, nil
}

type extractedEntities struct {
	Entities []model.Entity `json:"entities"`
}

// LLMExtractor implements Extractor on top of any LLMClient. Responses are
// filtered to the allow-listed entity types before they leave this boundary.
type LLMExtractor struct {
	client LLMClient
	name   string
	prompt string
}

func NewLLMExtractor(client LLMClient, name, prompt string) *LLMExtractor {
	if prompt == "" {
		prompt = defaultExtractPrompt
	}
	return &LLMExtractor{client: client, name: name, prompt: prompt}
}

func (x *LLMExtractor) Extract(ctx context.Context, text, language string) ([]model.Entity, error) {
	out, err := x.client.Generate(ctx, fmt.Sprintf(x.prompt, language, text))
	if err != nil {
		return nil, &ExtractionError{Provider: x.name, Err: err}
	}

	parsed, err := parseJSON[extractedEntities](out)
	if err != nil {
		return nil, &ExtractionError{Provider: x.name, Err: err}
	}
	return model.FilterEntities(parsed.Entities), nil
}
