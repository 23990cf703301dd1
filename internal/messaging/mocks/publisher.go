// Package mocks provides mock implementations for testing message publishing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/liquidity/internal/messaging"
)

// MockPublisher is a mock implementation of Publisher for testing.
type MockPublisher struct {
	mock.Mock

	// Published collects every successfully accepted message.
	Published []*messaging.Message
}

// NewMockPublisher creates a MockPublisher with expectations asserted on cleanup.
func NewMockPublisher(t *testing.T) *MockPublisher {
	m := &MockPublisher{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Publish mocks the Publish method of Publisher.
func (m *MockPublisher) Publish(ctx context.Context, msg *messaging.Message) error {
	args := m.Called(ctx, msg)
	if err := args.Error(0); err != nil {
		return err
	}
	m.Published = append(m.Published, msg)
	return nil
}

// Shutdown mocks the Shutdown method of Publisher.
func (m *MockPublisher) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
