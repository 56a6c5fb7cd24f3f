// Package blobstore defines the port interface for binary asset storage.
package blobstore

import "context"

// Store is the port interface for logo uploads. Objects are write-once:
// each upload creates a new object, overwriting is not supported.
type Store interface {
	// Put stores the object and returns a durable URL for it.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}
