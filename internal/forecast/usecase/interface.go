// Package usecase defines the interfaces and implementations for the forecast
// pipeline steps. Use cases orchestrate the synthesizer, the tabular storage
// and the outbound topic to implement the generation and publish operations.
package usecase

import (
	"context"

	"github.com/allisson/liquidity/internal/forecast/domain"
)

// Synthesizer defines the interface for producing simulated forecast events.
type Synthesizer interface {
	Synthesize(params domain.GenerateParams) ([]*domain.ForecastEvent, error)
}

// EventSink defines the interface for persisting forecast events as a tabular object.
type EventSink interface {
	WriteEvents(ctx context.Context, key string, events []*domain.ForecastEvent) error
}

// EventSource defines the interface for iterating rows of a tabular object.
type EventSource interface {
	Iterate(ctx context.Context, key string, fn func(index int, record map[string]string) error) error
}

// GenerateUseCase defines the interface for the forecast generation step.
type GenerateUseCase interface {
	// Generate synthesizes events for the given parameters and writes them to
	// the tabular object under key. Validation failures happen before any
	// object is created.
	Generate(ctx context.Context, params domain.GenerateParams, key string) (*domain.GenerateSummary, error)
}

// PublishUseCase defines the interface for the forecast publish step.
type PublishUseCase interface {
	// Publish reads the tabular object under key and delivers one message per
	// row. Row-level schema and transport failures are collected in the
	// summary; only file-level failures abort the run.
	Publish(ctx context.Context, key string) (*domain.PublishSummary, error)
}
