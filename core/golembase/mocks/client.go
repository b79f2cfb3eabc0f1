package mocks

import (
	"context"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of golembase.Client
type Client struct {
	mock.Mock
}

func (m *Client) QueryEntities(ctx context.Context, query string) ([]golembase.Entity, error) {
	args := m.Called(ctx, query)
	if entities, ok := args.Get(0).([]golembase.Entity); ok {
		return entities, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateEntities(ctx context.Context, creates []golembase.Create) ([]golembase.Receipt, error) {
	args := m.Called(ctx, creates)
	if receipts, ok := args.Get(0).([]golembase.Receipt); ok {
		return receipts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UpdateEntities(ctx context.Context, updates []golembase.Update) ([]golembase.Receipt, error) {
	args := m.Called(ctx, updates)
	if receipts, ok := args.Get(0).([]golembase.Receipt); ok {
		return receipts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetEntityMetadata(ctx context.Context, key string) (*golembase.EntityMetadata, error) {
	args := m.Called(ctx, key)
	if meta, ok := args.Get(0).(*golembase.EntityMetadata); ok {
		return meta, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) WatchLogs(ctx context.Context, label string, callbacks golembase.WatchCallbacks) (func(), error) {
	args := m.Called(ctx, label, callbacks)
	if stop, ok := args.Get(0).(func()); ok {
		return stop, args.Error(1)
	}
	return func() {}, args.Error(1)
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}
