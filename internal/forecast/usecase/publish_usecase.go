package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/liquidity/internal/forecast/domain"
	"github.com/allisson/liquidity/internal/messaging"
)

// publishUseCase implements PublishUseCase with per-row failure isolation: a
// row that cannot be mapped, validated or delivered is recorded and skipped,
// and processing continues with the next row.
type publishUseCase struct {
	source    EventSource
	publisher messaging.Publisher
	logger    *slog.Logger

	// Injectable for deterministic tests.
	now        func() time.Time
	newEventID func() string
}

// NewPublishUseCase creates a new PublishUseCase.
func NewPublishUseCase(source EventSource, publisher messaging.Publisher, logger *slog.Logger) PublishUseCase {
	return &publishUseCase{
		source:     source,
		publisher:  publisher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newEventID: uuid.NewString,
	}
}

// Publish reads the object under key and delivers one message per row.
func (p *publishUseCase) Publish(ctx context.Context, key string) (*domain.PublishSummary, error) {
	summary := &domain.PublishSummary{}

	err := p.source.Iterate(ctx, key, func(index int, record map[string]string) error {
		summary.Processed++

		if err := p.publishRecord(ctx, index, record); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, domain.PublishFailure{
				RecordRef:   index,
				ErrorDetail: err.Error(),
			})
			p.logger.WarnContext(ctx, "forecast event rejected",
				slog.Int("record", index),
				slog.String("forecast_id", record["forecast_id"]),
				slog.String("error", err.Error()),
			)
			return nil
		}

		summary.Delivered++
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "forecast events published",
		slog.String("input_key", key),
		slog.Int("processed", summary.Processed),
		slog.Int("delivered", summary.Delivered),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

// publishRecord maps, validates and delivers a single row.
func (p *publishUseCase) publishRecord(ctx context.Context, index int, record map[string]string) error {
	message, err := domain.NewEventMessage(record, p.newEventID(), p.now())
	if err != nil {
		return err
	}

	if err := message.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode record %d: %w", index, err)
	}

	return p.publisher.Publish(ctx, &messaging.Message{
		Body: body,
		Metadata: map[string]string{
			"event_type":  message.EventType,
			"business_id": message.BusinessID,
		},
	})
}
