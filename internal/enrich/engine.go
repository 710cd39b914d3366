package enrich

import (
	"context"
	"log"
)

// DefaultMaxSummaryLength is the display budget for generated summaries.
const DefaultMaxSummaryLength = 150

// TruncationMarker is appended when the fallback cuts a description short.
const TruncationMarker = "..."

// FallbackRecorder counts enrichment degradations for telemetry.
type FallbackRecorder interface {
	RecordEnrichmentFallback(ctx context.Context, reason string)
}

// Result carries the candidate values enrichment produced. The caller decides
// what to attach; the engine persists nothing.
type Result struct {
	Summary         string
	SuggestedLabels []string
}

// Engine derives a shortened summary and category suggestions from raw text.
// A nil client means the text backend is disabled and the deterministic
// fallback applies.
type Engine struct {
	client     Client
	maxSummary int
	metrics    FallbackRecorder
}

func NewEngine(client Client, metrics FallbackRecorder) *Engine {
	return &Engine{
		client:     client,
		maxSummary: DefaultMaxSummaryLength,
		metrics:    metrics,
	}
}

// Enrich never fails: any backend error is logged and degrades to the
// truncation fallback so record creation is never blocked on the text service.
func (e *Engine) Enrich(ctx context.Context, description, mission string, vocabulary []string) Result {
	result := Result{
		Summary: Truncate(description, e.maxSummary),
	}

	if e.client == nil {
		return result
	}

	if description != "" {
		summary, err := e.client.GenerateSummary(ctx, description, e.maxSummary)
		if err != nil {
			log.Printf("Enrichment summary degraded to truncation fallback: %v", err)
			e.recordFallback(ctx, "summary")
		} else if summary != "" {
			result.Summary = summary
		}
	}

	if mission != "" && len(vocabulary) > 0 {
		labels, err := e.client.SuggestCategories(ctx, mission, vocabulary)
		if err != nil {
			log.Printf("Enrichment category suggestion degraded: %v", err)
			e.recordFallback(ctx, "categories")
		} else {
			result.SuggestedLabels = labels
		}
	}

	return result
}

func (e *Engine) recordFallback(ctx context.Context, reason string) {
	if e.metrics != nil {
		e.metrics.RecordEnrichmentFallback(ctx, reason)
	}
}

// Truncate cuts text to max characters, appending the truncation marker when
// anything was removed. The cut is rune-based so multibyte text is never
// split mid-character.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + TruncationMarker
}
