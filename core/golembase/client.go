package golembase

import "context"

// Client defines the operations this tool needs from the entity store.
type Client interface {
	// QueryEntities returns every entity matching the query string.
	QueryEntities(ctx context.Context, query string) ([]Entity, error)
	// CreateEntities writes a batch of new entities.
	CreateEntities(ctx context.Context, creates []Create) ([]Receipt, error)
	// UpdateEntities replaces a batch of existing entities in place.
	UpdateEntities(ctx context.Context, updates []Update) ([]Receipt, error)
	// GetEntityMetadata fetches owner and annotations for one entity key.
	GetEntityMetadata(ctx context.Context, key string) (*EntityMetadata, error)
	// WatchLogs subscribes to entity lifecycle events over the websocket
	// endpoint. The returned stop function ends the subscription.
	WatchLogs(ctx context.Context, label string, callbacks WatchCallbacks) (stop func(), err error)
	// Close releases the underlying connections.
	Close() error
}
