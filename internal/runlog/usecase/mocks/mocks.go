// Package mocks provides mock implementations for testing the run ledger.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
)

// MockRunRepository is a mock implementation of RunRepository for testing.
type MockRunRepository struct {
	mock.Mock
}

// NewMockRunRepository creates a MockRunRepository with expectations asserted on cleanup.
func NewMockRunRepository(t *testing.T) *MockRunRepository {
	m := &MockRunRepository{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of RunRepository.
func (m *MockRunRepository) Create(ctx context.Context, run *runlogDomain.PipelineRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// CreateFailure mocks the CreateFailure method of RunRepository.
func (m *MockRunRepository) CreateFailure(ctx context.Context, failure *runlogDomain.RecordFailure) error {
	args := m.Called(ctx, failure)
	return args.Error(0)
}

// ListRecent mocks the ListRecent method of RunRepository.
func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]*runlogDomain.PipelineRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runlogDomain.PipelineRun), args.Error(1)
}

// MockRunLedger is a mock implementation of RunLedger for testing.
type MockRunLedger struct {
	mock.Mock
}

// NewMockRunLedger creates a MockRunLedger with expectations asserted on cleanup.
func NewMockRunLedger(t *testing.T) *MockRunLedger {
	m := &MockRunLedger{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Record mocks the Record method of RunLedger.
func (m *MockRunLedger) Record(
	ctx context.Context,
	run *runlogDomain.PipelineRun,
	failures []*runlogDomain.RecordFailure,
) error {
	args := m.Called(ctx, run, failures)
	return args.Error(0)
}

// ListRecent mocks the ListRecent method of RunLedger.
func (m *MockRunLedger) ListRecent(ctx context.Context, limit int) ([]*runlogDomain.PipelineRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*runlogDomain.PipelineRun), args.Error(1)
}
