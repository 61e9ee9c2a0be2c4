package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"wonderscape/internal/video"
)

var (
	ErrNoVideoFile  = errors.New("Please select a video file")
	ErrUploadFailed = errors.New("Upload failed")
)

func isNoVideoFile(err error) bool { return errors.Is(err, ErrNoVideoFile) }

type File struct {
	Name        string
	ContentType string
	Size        int64 // -1 when unknown
	Body        io.Reader
}

type Form struct {
	Title       string
	Description string
	Video       *File
	Thumbnail   *File
}

type UploadAPI interface {
	RequestUploadSlot(ctx context.Context) (string, error)
	Upload(ctx context.Context, uploadURL, filename, contentType string, size int64, body io.Reader) (string, error)
	CreateVideo(ctx context.Context, in video.CreateVideoInput) (string, error)
}

type Uploader struct {
	api UploadAPI
}

func NewUploader(api UploadAPI) *Uploader {
	return &Uploader{api: api}
}

// Upload sends the video, then the optional thumbnail, each through a fresh
// upload slot, and finally records the video. Steps run one after another.
// Any failure is reported as ErrUploadFailed wrapping the cause; blobs that
// were already stored are left in place.
func (u *Uploader) Upload(ctx context.Context, form Form) (string, error) {
	if form.Video == nil {
		return "", ErrNoVideoFile
	}

	videoRef, err := u.send(ctx, form.Video)
	if err != nil {
		return "", fmt.Errorf("%w: video: %w", ErrUploadFailed, err)
	}

	var thumbRef *string
	if form.Thumbnail != nil {
		ref, err := u.send(ctx, form.Thumbnail)
		if err != nil {
			return "", fmt.Errorf("%w: thumbnail: %w", ErrUploadFailed, err)
		}
		thumbRef = &ref
	}

	id, err := u.api.CreateVideo(ctx, video.CreateVideoInput{
		Title:       form.Title,
		Description: form.Description,
		StorageID:   videoRef,
		ThumbnailID: thumbRef,
	})
	if err != nil {
		return "", fmt.Errorf("%w: create: %w", ErrUploadFailed, err)
	}
	return id, nil
}

func (u *Uploader) send(ctx context.Context, f *File) (string, error) {
	url, err := u.api.RequestUploadSlot(ctx)
	if err != nil {
		return "", err
	}
	return u.api.Upload(ctx, url, f.Name, f.ContentType, f.Size, f.Body)
}
