package app

import (
	"context"
	"fmt"

	forecastRepository "github.com/allisson/liquidity/internal/forecast/repository"
	forecastService "github.com/allisson/liquidity/internal/forecast/service"
	forecastUsecase "github.com/allisson/liquidity/internal/forecast/usecase"
)

// Synthesizer returns the forecast event synthesizer.
func (c *Container) Synthesizer() forecastService.Synthesizer {
	c.synthesizerInit.Do(func() {
		c.synthesizer = forecastService.NewSynthesizer()
	})
	return c.synthesizer
}

// EventSink returns the forecast event sink.
func (c *Container) EventSink(ctx context.Context) (forecastUsecase.EventSink, error) {
	var err error
	c.eventSinkInit.Do(func() {
		c.eventSink, err = c.initEventSink(ctx)
		if err != nil {
			c.initErrors["eventSink"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventSink"]; exists {
		return nil, storedErr
	}
	return c.eventSink, nil
}

// EventSource returns the forecast event source.
func (c *Container) EventSource(ctx context.Context) (forecastUsecase.EventSource, error) {
	var err error
	c.eventSourceInit.Do(func() {
		c.eventSource, err = c.initEventSource(ctx)
		if err != nil {
			c.initErrors["eventSource"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["eventSource"]; exists {
		return nil, storedErr
	}
	return c.eventSource, nil
}

// GenerateUseCase returns the forecast generation use case, metrics included.
func (c *Container) GenerateUseCase(ctx context.Context) (forecastUsecase.GenerateUseCase, error) {
	var err error
	c.generateUseCaseInit.Do(func() {
		c.generateUseCase, err = c.initGenerateUseCase(ctx)
		if err != nil {
			c.initErrors["generateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generateUseCase"]; exists {
		return nil, storedErr
	}
	return c.generateUseCase, nil
}

// PublishUseCase returns the forecast publish use case, metrics included.
func (c *Container) PublishUseCase(ctx context.Context) (forecastUsecase.PublishUseCase, error) {
	var err error
	c.publishUseCaseInit.Do(func() {
		c.publishUseCase, err = c.initPublishUseCase(ctx)
		if err != nil {
			c.initErrors["publishUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publishUseCase"]; exists {
		return nil, storedErr
	}
	return c.publishUseCase, nil
}

// initEventSink creates the forecast event sink on the configured bucket.
func (c *Container) initEventSink(ctx context.Context) (forecastUsecase.EventSink, error) {
	bucket, err := c.Bucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for event sink: %w", err)
	}
	return forecastRepository.NewCSVEventSink(bucket), nil
}

// initEventSource creates the forecast event source on the configured bucket.
func (c *Container) initEventSource(ctx context.Context) (forecastUsecase.EventSource, error) {
	bucket, err := c.Bucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for event source: %w", err)
	}
	return forecastRepository.NewCSVEventSource(bucket), nil
}

// initGenerateUseCase assembles the generation use case with metrics decoration.
func (c *Container) initGenerateUseCase(ctx context.Context) (forecastUsecase.GenerateUseCase, error) {
	sink, err := c.EventSink(ctx)
	if err != nil {
		return nil, err
	}

	pipelineMetrics, err := c.PipelineMetrics()
	if err != nil {
		return nil, err
	}

	useCase := forecastUsecase.NewGenerateUseCase(c.Synthesizer(), sink, c.Logger())
	return forecastUsecase.NewGenerateUseCaseWithMetrics(useCase, pipelineMetrics), nil
}

// initPublishUseCase assembles the publish use case with metrics decoration.
func (c *Container) initPublishUseCase(ctx context.Context) (forecastUsecase.PublishUseCase, error) {
	source, err := c.EventSource(ctx)
	if err != nil {
		return nil, err
	}

	publisher, err := c.Publisher(ctx)
	if err != nil {
		return nil, err
	}

	pipelineMetrics, err := c.PipelineMetrics()
	if err != nil {
		return nil, err
	}

	useCase := forecastUsecase.NewPublishUseCase(source, publisher, c.Logger())
	return forecastUsecase.NewPublishUseCaseWithMetrics(useCase, pipelineMetrics), nil
}
