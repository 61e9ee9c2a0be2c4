// Package storage is the boundary between the video API and blob storage:
// one-time upload slots, and backends that store blobs and resolve storage
// references to fetchable URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"wonderscape/internal/config"
	"wonderscape/internal/dbmongo"
)

var ErrSlotNotFound = errors.New("upload slot not found or expired")

// BlobStore persists uploaded content and resolves references to URLs.
type BlobStore interface {
	// Put stores the content and returns its permanent reference.
	// size is -1 when unknown.
	Put(ctx context.Context, name, contentType string, uploader uint64, size int64, r io.Reader) (string, error)
	// URL resolves a reference. ok is false when nothing is stored under ref.
	URL(ctx context.Context, ref string) (url string, ok bool, err error)
}

// NewBlobStore picks the backend named by STORAGE_BACKEND.
func NewBlobStore(ctx context.Context, cfg *config.Config, mongoClient *dbmongo.MongoClient) (BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageGridFS, "":
		return NewGridFSStore(dbmongo.NewMediaStorage(mongoClient), cfg.Server.MediaBaseURL), nil
	case config.StorageS3:
		return NewS3Store(ctx, cfg.Storage)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
