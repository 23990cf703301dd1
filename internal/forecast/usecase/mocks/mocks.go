// Package mocks provides mock implementations for testing forecast use cases.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	forecastDomain "github.com/allisson/liquidity/internal/forecast/domain"
)

// MockSynthesizer is a mock implementation of Synthesizer for testing.
type MockSynthesizer struct {
	mock.Mock
}

// NewMockSynthesizer creates a MockSynthesizer with expectations asserted on cleanup.
func NewMockSynthesizer(t *testing.T) *MockSynthesizer {
	m := &MockSynthesizer{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Synthesize mocks the Synthesize method of Synthesizer.
func (m *MockSynthesizer) Synthesize(params forecastDomain.GenerateParams) ([]*forecastDomain.ForecastEvent, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*forecastDomain.ForecastEvent), args.Error(1)
}

// MockEventSink is a mock implementation of EventSink for testing.
type MockEventSink struct {
	mock.Mock
}

// NewMockEventSink creates a MockEventSink with expectations asserted on cleanup.
func NewMockEventSink(t *testing.T) *MockEventSink {
	m := &MockEventSink{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WriteEvents mocks the WriteEvents method of EventSink.
func (m *MockEventSink) WriteEvents(ctx context.Context, key string, events []*forecastDomain.ForecastEvent) error {
	args := m.Called(ctx, key, events)
	return args.Error(0)
}

// MockEventSource is a mock implementation of EventSource for testing.
// Records set before the call are replayed through the callback.
type MockEventSource struct {
	mock.Mock

	Records []map[string]string
}

// NewMockEventSource creates a MockEventSource with expectations asserted on cleanup.
func NewMockEventSource(t *testing.T) *MockEventSource {
	m := &MockEventSource{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Iterate mocks the Iterate method of EventSource. When the mocked error is
// nil, the configured records are replayed to fn before returning.
func (m *MockEventSource) Iterate(
	ctx context.Context,
	key string,
	fn func(index int, record map[string]string) error,
) error {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return err
	}
	for i, record := range m.Records {
		if err := fn(i, record); err != nil {
			return err
		}
	}
	return nil
}

// MockGenerateUseCase is a mock implementation of GenerateUseCase for testing.
type MockGenerateUseCase struct {
	mock.Mock
}

// NewMockGenerateUseCase creates a MockGenerateUseCase with expectations asserted on cleanup.
func NewMockGenerateUseCase(t *testing.T) *MockGenerateUseCase {
	m := &MockGenerateUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Generate mocks the Generate method of GenerateUseCase.
func (m *MockGenerateUseCase) Generate(
	ctx context.Context,
	params forecastDomain.GenerateParams,
	key string,
) (*forecastDomain.GenerateSummary, error) {
	args := m.Called(ctx, params, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecastDomain.GenerateSummary), args.Error(1)
}

// MockPublishUseCase is a mock implementation of PublishUseCase for testing.
type MockPublishUseCase struct {
	mock.Mock
}

// NewMockPublishUseCase creates a MockPublishUseCase with expectations asserted on cleanup.
func NewMockPublishUseCase(t *testing.T) *MockPublishUseCase {
	m := &MockPublishUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Publish mocks the Publish method of PublishUseCase.
func (m *MockPublishUseCase) Publish(ctx context.Context, key string) (*forecastDomain.PublishSummary, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecastDomain.PublishSummary), args.Error(1)
}
