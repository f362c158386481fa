package provider

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/duotext/duotext/internal/core/model"
)

// BreakerSettings configures the circuit breakers protecting adapter calls.
type BreakerSettings struct {
	// MaxFailures is the consecutive-failure count that trips the circuit.
	MaxFailures uint32
	// Timeout is how long the circuit stays open before a probe is allowed.
	Timeout time.Duration
}

func newBreaker(name string, s BreakerSettings) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
	})
}

// BreakerTranslator wraps a Translator in a circuit breaker so a failing
// translation backend sheds load instead of stacking up timeouts.
type BreakerTranslator struct {
	inner   Translator
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerTranslator(inner Translator, s BreakerSettings) *BreakerTranslator {
	return &BreakerTranslator{
		inner:   inner,
		breaker: newBreaker("translator", s),
	}
}

func (b *BreakerTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		var terr *TranslationError
		if errors.As(err, &terr) {
			return "", terr
		}
		return "", &TranslationError{Provider: "translator breaker", Err: err}
	}
	return out.(string), nil
}

// BreakerExtractor is the extraction-side counterpart of BreakerTranslator.
type BreakerExtractor struct {
	inner   Extractor
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerExtractor(inner Extractor, s BreakerSettings) *BreakerExtractor {
	return &BreakerExtractor{
		inner:   inner,
		breaker: newBreaker("extractor", s),
	}
}

func (b *BreakerExtractor) Extract(ctx context.Context, text, language string) ([]model.Entity, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.Extract(ctx, text, language)
	})
	if err != nil {
		var xerr *ExtractionError
		if errors.As(err, &xerr) {
			return nil, xerr
		}
		return nil, &ExtractionError{Provider: "extractor breaker", Err: err}
	}
	return out.([]model.Entity), nil
}
