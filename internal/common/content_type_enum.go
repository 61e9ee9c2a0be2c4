package common

import "strings"

// MediaFileType classifies uploaded blobs; stored in GridFS metadata and S3 object metadata
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVideo MediaFileType = "video"
	MediaFileTypeOther MediaFileType = "other"
)

func (mft MediaFileType) String() string {
	return string(mft)
}

// IsValid checks if the media file type is one the catalog can display
func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

func DetectFileType(mimeType string) MediaFileType {
	lowerMimeType := strings.ToLower(strings.TrimSpace(mimeType))
	if strings.HasPrefix(lowerMimeType, "image/") {
		return MediaFileTypeImage
	}
	if strings.HasPrefix(lowerMimeType, "video/") {
		return MediaFileTypeVideo
	}
	return MediaFileTypeOther
}

// DefaultContentType is used when an upload arrives without a Content-Type header.
const DefaultContentType = "application/octet-stream"
