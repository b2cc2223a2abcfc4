package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Package storage holds the blob half of the backing store: the raw document
// bytes live in an S3-compatible object store, addressed by caller-chosen
// keys. Implementations must avoid using local disk and rely on streaming
// I/O only.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
// Methods use context and streaming readers/writers; no local disk is used.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadError reports a failed blob upload (key collision or transport
// failure). An upload failure never leaves a partial object behind.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// RemovalError reports a failed blob delete. Callers decide severity:
// compensating cleanup logs and continues, an explicit delete surfaces it.
type RemovalError struct {
	Key string
	Err error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("remove %s: %v", e.Key, e.Err)
}

func (e *RemovalError) Unwrap() error { return e.Err }
