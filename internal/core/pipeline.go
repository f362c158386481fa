// Package core orchestrates the annotation pipeline: concurrent translation
// and entity extraction, color assignment, highlighting, and sentence
// alignment.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/duotext/duotext/internal/core/color"
	"github.com/duotext/duotext/internal/core/highlight"
	"github.com/duotext/duotext/internal/core/model"
	"github.com/duotext/duotext/internal/core/segment"
	"github.com/duotext/duotext/internal/logger"
	"github.com/duotext/duotext/internal/provider"
)

// ErrInvalidRequest marks client errors caught before any external call.
var ErrInvalidRequest = errors.New("invalid request")

// Request is one unit of transcript text to annotate.
type Request struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
}

// Result is the assembled bilingual transcript for one request.
type Result struct {
	SourceText     string
	TranslatedText string
	Pairs          []model.SentencePair
	Entities       []model.Entity
}

// Options are the per-deployment pipeline policies.
type Options struct {
	ColorMode       color.Mode
	UniformColor    string
	HighlightPolicy highlight.Policy
	// ReextractTranslation runs a second, independent extraction on the
	// translated text; when false the source entity list is reused for both
	// sides.
	ReextractTranslation bool
	// SegmentSentences splits both texts into aligned sentence pairs; when
	// false the result holds a single whole-text pair.
	SegmentSentences bool
	// UnsupportedLanguages are codes the extraction capability cannot
	// handle; extraction is skipped for them instead of called and failed.
	UnsupportedLanguages []string
}

type Pipeline struct {
	translator  provider.Translator
	extractor   provider.Extractor
	assigner    *color.Assigner
	opts        Options
	unsupported map[string]bool
	log         *logrus.Logger
}

func NewPipeline(translator provider.Translator, extractor provider.Extractor, opts Options) *Pipeline {
	unsupported := make(map[string]bool, len(opts.UnsupportedLanguages))
	for _, lang := range opts.UnsupportedLanguages {
		unsupported[lang] = true
	}
	return &Pipeline{
		translator:  translator,
		extractor:   extractor,
		assigner:    color.NewAssigner(opts.ColorMode, opts.UniformColor),
		opts:        opts,
		unsupported: unsupported,
		log:         logger.Get(),
	}
}

func validate(req Request) error {
	switch {
	case req.Text == "":
		return fmt.Errorf("%w: text is required", ErrInvalidRequest)
	case req.SourceLanguage == "":
		return fmt.Errorf("%w: sourceLanguage is required", ErrInvalidRequest)
	case req.TargetLanguage == "":
		return fmt.Errorf("%w: targetLanguage is required", ErrInvalidRequest)
	}
	return nil
}

// Process runs the full annotation pipeline. Translation and source-side
// extraction run concurrently and both must finish before anything else;
// translation failure aborts the request while extraction failure degrades
// to unannotated text.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// Fork: the two calls are independent and each goroutine owns its own
	// result slots until the join.
	var (
		wg             sync.WaitGroup
		translated     string
		translateErr   error
		sourceEntities []model.Entity
		extractErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		translated, translateErr = p.translator.Translate(ctx, req.Text, req.SourceLanguage, req.TargetLanguage)
	}()
	go func() {
		defer wg.Done()
		sourceEntities, extractErr = p.extract(ctx, req.Text, req.SourceLanguage)
	}()
	wg.Wait()

	if translateErr != nil {
		return nil, translateErr
	}
	if extractErr != nil {
		p.log.WithError(extractErr).Warn("source entity extraction failed, continuing unannotated")
		sourceEntities = nil
	}

	// The translated side depends on the translation result, so it runs
	// after the join.
	var translatedEntities []model.Entity
	if p.opts.ReextractTranslation {
		var err error
		translatedEntities, err = p.extract(ctx, translated, req.TargetLanguage)
		if err != nil {
			p.log.WithError(err).Warn("translated entity extraction failed, continuing unannotated")
			translatedEntities = nil
		}
	} else {
		translatedEntities = sourceEntities
	}

	colors := p.assigner.Assign(sourceEntities, translatedEntities)
	highlightedSource := highlight.Apply(req.Text, sourceEntities, colors, p.opts.HighlightPolicy)
	highlightedTranslation := highlight.Apply(translated, translatedEntities, colors, p.opts.HighlightPolicy)

	var pairs []model.SentencePair
	if p.opts.SegmentSentences {
		pairs = model.ZipSentences(segment.Split(highlightedSource), segment.Split(highlightedTranslation))
	} else {
		pairs = []model.SentencePair{{Source: highlightedSource, Translation: highlightedTranslation}}
	}

	return &Result{
		SourceText:     highlightedSource,
		TranslatedText: highlightedTranslation,
		Pairs:          pairs,
		Entities:       mergeEntities(sourceEntities, translatedEntities),
	}, nil
}

// Interim is the low-latency path for streaming partial utterances:
// translation only, one unsegmented pair, no annotation.
func (p *Pipeline) Interim(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	translated, err := p.translator.Translate(ctx, req.Text, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	return &Result{
		SourceText:     req.Text,
		TranslatedText: translated,
		Pairs:          []model.SentencePair{{Source: req.Text, Translation: translated}},
	}, nil
}

// extract consults the unsupported-language set before calling out; for those
// languages, and for deployments without an extractor, it reports zero
// entities rather than an error.
func (p *Pipeline) extract(ctx context.Context, text, language string) ([]model.Entity, error) {
	if p.extractor == nil || p.unsupported[language] {
		return nil, nil
	}
	return p.extractor.Extract(ctx, text, language)
}

func mergeEntities(a, b []model.Entity) []model.Entity {
	seen := make(map[model.Entity]bool, len(a)+len(b))
	var out []model.Entity
	for _, e := range append(append([]model.Entity{}, a...), b...) {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
