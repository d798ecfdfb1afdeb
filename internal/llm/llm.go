package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-builder/resume/model"
)

// Enricher rewrites free-text parts of a candidate record. Implementations
// must not modify the record they are given.
type Enricher interface {
	EnhanceSummary(ctx context.Context, record model.CandidateRecord) (string, error)
}

// EnricherFunc adapts a function to the Enricher interface.
type EnricherFunc func(ctx context.Context, record model.CandidateRecord) (string, error)

// EnhanceSummary calls f.
func (f EnricherFunc) EnhanceSummary(ctx context.Context, record model.CandidateRecord) (string, error) {
	return f(ctx, record)
}

// ErrNotImplemented is returned by the placeholder enricher.
var ErrNotImplemented = errors.New("LLM not implemented")

// ErrEmptyOutput is returned when a provider answers with no usable text.
var ErrEmptyOutput = errors.New("empty enrichment output")

// PlaceholderEnricher is used when no provider is configured.
type PlaceholderEnricher struct{}

// EnhanceSummary returns ErrNotImplemented.
func (PlaceholderEnricher) EnhanceSummary(ctx context.Context, record model.CandidateRecord) (string, error) {
	_ = ctx
	_ = record
	return "", ErrNotImplemented
}

// EnrichmentError reports a provider failure. The record is left unchanged.
type EnrichmentError struct {
	Provider string
	Cause    error
}

func (e *EnrichmentError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("enrichment failed: %v", e.Cause)
	}
	return fmt.Sprintf("enrichment failed (%s): %v", e.Provider, e.Cause)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Cause
}

type namedEnricher interface {
	Provider() string
}

// Apply asks the enricher for a new professional summary and returns a copy
// of the record carrying it. The result is validated like any other input,
// so an out-of-range summary yields a *model.ValidationError.
func Apply(ctx context.Context, enricher Enricher, record model.CandidateRecord) (model.CandidateRecord, error) {
	if enricher == nil {
		return record, nil
	}
	provider := ""
	if named, ok := enricher.(namedEnricher); ok {
		provider = named.Provider()
	}

	summary, err := enricher.EnhanceSummary(ctx, record)
	if err != nil {
		var enrichErr *EnrichmentError
		if errors.As(err, &enrichErr) {
			return record, err
		}
		return record, &EnrichmentError{Provider: provider, Cause: err}
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return record, &EnrichmentError{Provider: provider, Cause: ErrEmptyOutput}
	}

	enriched := record.Canonical()
	enriched.ProfessionalSummary = model.Some(summary)
	if err := enriched.Validate(); err != nil {
		return record, err
	}
	return enriched, nil
}
