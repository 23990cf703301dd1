package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/liquidity/internal/forecast/domain"
)

// generateUseCase implements GenerateUseCase.
type generateUseCase struct {
	synthesizer Synthesizer
	sink        EventSink
	logger      *slog.Logger
}

// NewGenerateUseCase creates a new GenerateUseCase.
func NewGenerateUseCase(synthesizer Synthesizer, sink EventSink, logger *slog.Logger) GenerateUseCase {
	return &generateUseCase{
		synthesizer: synthesizer,
		sink:        sink,
		logger:      logger,
	}
}

// Generate synthesizes events and writes them to the tabular object under key.
func (g *generateUseCase) Generate(
	ctx context.Context,
	params domain.GenerateParams,
	key string,
) (*domain.GenerateSummary, error) {
	events, err := g.synthesizer.Synthesize(params)
	if err != nil {
		return nil, err
	}

	if err := g.sink.WriteEvents(ctx, key, events); err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "forecast events generated",
		slog.Int("rows", len(events)),
		slog.String("output_key", key),
		slog.Int64("seed", params.Seed),
	)

	return &domain.GenerateSummary{
		Rows:      len(events),
		OutputKey: key,
	}, nil
}
