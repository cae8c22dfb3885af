package services

import (
	"context"

	"github.com/qolzam/telar-blog/views/repository"
	"github.com/stretchr/testify/mock"
)

// MockViewCounter is a mock implementation of ViewCounter for testing
type MockViewCounter struct {
	mock.Mock
}

var _ repository.ViewCounter = (*MockViewCounter)(nil)

// IncrementViews mocks the IncrementViews method
func (m *MockViewCounter) IncrementViews(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}
