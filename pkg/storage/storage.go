package storage

import (
	"context"
)

// Adapter mirrors small serialized snapshots to a durable backing store. It
// plays the role browser local storage plays for the web client: a flat
// key-value namespace holding the serialized session user.
//
// Read reports absence through the boolean, not through an error; errors are
// reserved for backend failures. Callers treat any failure as "no snapshot".
type Adapter interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
