package contracts

import "context"

type DraftStore interface {
	Save(ctx context.Context, key string, value interface{}) error
	// Load decodes the value stored under key into dst and reports whether
	// anything was found.
	Load(ctx context.Context, key string, dst interface{}) (bool, error)
	Clear(ctx context.Context, keys ...string) error
}
