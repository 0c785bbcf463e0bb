// Package slot provides single-key storage locations that hold the whole
// serialized task collection. Writes fully overwrite the previous value; there
// is no locking between processes and the last writer wins.
package slot

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been written to the slot yet.
var ErrNotFound = errors.New("slot: not found")

// Slot is one named location in a key-value store.
type Slot interface {
	Name() string
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, value []byte) error
}

// Pinger is implemented by slots backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
