package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"go.mongodb.org/mongo-driver/mongo/options"

	"wonderscape/internal/common"
)

var ErrFileNotFound = errors.New("media file not found")

type MediaStorage struct {
	gridFS *gridfs.Bucket
}

func NewMediaStorage(mongoClient *MongoClient) *MediaStorage {
	return &MediaStorage{
		gridFS: mongoClient.GridFS,
	}
}

type MediaFile struct {
	ID          string               `json:"id"` // GridFS ObjectID hex
	Filename    string               `json:"filename"`
	Size        int64                `json:"size"`
	ContentType string               `json:"content_type"`
	FileType    common.MediaFileType `json:"file_type"`
	UploadedBy  uint64               `json:"uploaded_by"`
	UploadedAt  time.Time            `json:"uploaded_at"`
}

func (ms *MediaStorage) UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*MediaFile, error) {
	if mimeType == "" {
		mimeType = common.DefaultContentType
	}
	fileType := common.DetectFileType(mimeType)

	metadata := bson.M{
		"file_type":   fileType.String(),
		"mime_type":   mimeType,
		"uploaded_by": int64(uploaderID),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := ms.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	size, err := io.Copy(stream, content)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("file copy failed: %w", err)
	}
	// chunks are only flushed on close
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("upload finalize failed: %w", err)
	}

	return &MediaFile{
		ID:          stream.FileID.(primitive.ObjectID).Hex(),
		Filename:    filename,
		Size:        size,
		ContentType: mimeType,
		FileType:    fileType,
		UploadedBy:  uploaderID,
		UploadedAt:  time.Now(),
	}, nil
}

// DownloadFile opens a stream for the file. The caller must close it.
func (ms *MediaStorage) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *MediaFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, ErrFileNotFound
	}

	stream, err := ms.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if fileInfo.Metadata != nil {
		_ = bson.Unmarshal(fileInfo.Metadata, &metadata)
	}

	mediaFile := &MediaFile{
		ID:          fileID,
		Filename:    fileInfo.Name,
		Size:        fileInfo.Length,
		ContentType: getStringFromMap(metadata, "mime_type"),
		FileType:    common.MediaFileType(getStringFromMap(metadata, "file_type")),
		UploadedBy:  uint64(getInt64FromMap(metadata, "uploaded_by")),
		UploadedAt:  fileInfo.UploadDate,
	}

	return stream, mediaFile, nil
}

// Exists reports whether a file with this id is stored in the bucket.
// Malformed ids simply do not exist.
func (ms *MediaStorage) Exists(ctx context.Context, fileID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return false, nil
	}

	cursor, err := ms.gridFS.FindContext(ctx, bson.M{"_id": objectID}, options.GridFSFind().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("lookup failed: %w", err)
	}
	defer cursor.Close(ctx)

	found := cursor.Next(ctx)
	if err := cursor.Err(); err != nil {
		return false, fmt.Errorf("lookup failed: %w", err)
	}
	return found, nil
}

func (ms *MediaStorage) DeleteFile(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return ErrFileNotFound
	}
	if err := ms.gridFS.DeleteContext(ctx, objectID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

func getStringFromMap(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if str, ok := m[key].(string); ok {
		return str
	}
	return ""
}

func getInt64FromMap(m bson.M, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
