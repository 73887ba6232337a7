package mocks

import (
	"context"

	"pathsync/core/backend"
	"pathsync/core/path"

	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of backend.Backend[string].
type Backend struct {
	mock.Mock
}

var _ backend.Backend[string] = (*Backend)(nil)

func (m *Backend) Set(ctx context.Context, p path.FilePath, item *string) (string, bool, error) {
	args := m.Called(ctx, p, item)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Backend) Get(ctx context.Context, p path.FilePath) (string, bool, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Backend) List(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]backend.Entry[string], error) {
	args := m.Called(ctx, depth, scope)
	if entries, ok := args.Get(0).([]backend.Entry[string]); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
