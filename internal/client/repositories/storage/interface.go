// Package storage is the durable key/value port behind the session and
// preference stores, with a SQLite adapter for the console and an
// in-memory adapter for tests.
package storage

import "context"

// Storage is a narrow read/write/clear capability over byte values.
//
// Get returns (nil, nil) for a missing key. SetMany and DeleteMany apply all
// keys or none of them.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
}
