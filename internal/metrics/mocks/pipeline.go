// Package mocks provides mock implementations for testing metrics instrumentation.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPipelineMetrics is a mock implementation of PipelineMetrics for testing.
type MockPipelineMetrics struct {
	mock.Mock
}

// NewMockPipelineMetrics creates a MockPipelineMetrics with expectations asserted on cleanup.
func NewMockPipelineMetrics(t *testing.T) *MockPipelineMetrics {
	m := &MockPipelineMetrics{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// RecordOperation mocks the RecordOperation method of PipelineMetrics.
func (m *MockPipelineMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

// RecordDuration mocks the RecordDuration method of PipelineMetrics.
func (m *MockPipelineMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// RecordRecords mocks the RecordRecords method of PipelineMetrics.
func (m *MockPipelineMetrics) RecordRecords(
	ctx context.Context,
	domain, operation, status string,
	count int64,
) {
	m.Called(ctx, domain, operation, status, count)
}
