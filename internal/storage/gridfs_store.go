package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"wonderscape/internal/dbmongo"
)

// GridFSStore keeps blobs in the Mongo media bucket; references are GridFS
// file ids served by the media HTTP server under MEDIA_BASE_URL.
type GridFSStore struct {
	media   *dbmongo.MediaStorage
	baseURL string
}

func NewGridFSStore(media *dbmongo.MediaStorage, baseURL string) *GridFSStore {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &GridFSStore{media: media, baseURL: baseURL}
}

func (g *GridFSStore) Put(ctx context.Context, name, contentType string, uploader uint64, _ int64, r io.Reader) (string, error) {
	file, err := g.media.UploadFile(ctx, name, contentType, uploader, r)
	if err != nil {
		return "", fmt.Errorf("gridfs put: %w", err)
	}
	return file.ID, nil
}

func (g *GridFSStore) URL(ctx context.Context, ref string) (string, bool, error) {
	ok, err := g.media.Exists(ctx, ref)
	if err != nil || !ok {
		return "", false, err
	}
	return g.baseURL + ref, true, nil
}
