package outbound

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Get when the named object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the opaque blob store holding the order collection as one
// serialized document under a fixed key.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}
