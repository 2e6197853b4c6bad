package domain

import "context"

// CacheStore defines the interface for the persistent namespace store
// backing the daily cache. Each namespace has two slots, payload and
// cached-on date, always written and cleared together.
type CacheStore interface {
	// Get returns the payload and cached-on date for a namespace,
	// or ErrNotFound when the namespace is absent.
	Get(ctx context.Context, namespace string) ([]byte, string, error)

	// Put stores payload and date for a namespace, replacing any prior entry.
	Put(ctx context.Context, namespace string, payload []byte, cachedOn string) error

	// Delete removes a namespace. Deleting an absent namespace is not an error.
	Delete(ctx context.Context, namespace string) error

	// List returns the cached-on date of every stored namespace.
	List(ctx context.Context) (map[string]string, error)

	Close() error
}

// CacheStatus describes the daily cache as seen at a point in time.
type CacheStatus struct {
	HasAny          bool
	ValidNamespaces []string
	AsOfDate        string
}
