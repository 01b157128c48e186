// Package metadata is the durable key/value port behind the auth session.
// It stands in for browser local storage: small JSON blobs under fixed keys.
package metadata

import (
	"context"
)

// Repository stores opaque values by key.
//
// Get returns (nil, nil) when the key is absent. SetMany writes all pairs or
// none of them.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
