// Package localdata persists small client-side key/value records (the
// serialized session identity and the bearer token) in the local database.
package localdata

import (
	"context"
)

// Repository is the durable storage contract. Get returns (nil, nil) when
// the key is absent; Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
