package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wonderscape/internal/common"
	"wonderscape/internal/metrics"
	"wonderscape/internal/storage"
)

type SlotConsumer interface {
	Consume(ctx context.Context, token string) (uint64, error)
}

type BlobWriter interface {
	Put(ctx context.Context, name, contentType string, uploader uint64, size int64, r io.Reader) (string, error)
}

// UploadHandler accepts the binary body posted to a one-time upload URL.
type UploadHandler struct {
	slots SlotConsumer
	blobs BlobWriter
	log   zerolog.Logger

	// bodyTimeout replaces the server read/write deadlines for the transfer;
	// zero keeps the server defaults.
	bodyTimeout time.Duration
}

func NewUploadHandler(slots SlotConsumer, blobs BlobWriter, bodyTimeout time.Duration, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{slots: slots, blobs: blobs, bodyTimeout: bodyTimeout, log: log}
}

type UploadResponse struct {
	StorageID string `json:"storageId"`
}

func (h *UploadHandler) RegisterRoutes(r *mux.Router, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	r.Handle("/uploads/{token}", limit(http.HandlerFunc(h.Upload))).Methods(http.MethodPost)
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	h.extendDeadlines(w)

	// the slot is spent before the body is read; a failed transfer needs a new slot
	uploader, err := h.slots.Consume(r.Context(), token)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			metrics.RecordUpload("rejected", 0)
			common.WriteError(w, http.StatusNotFound, common.CodeNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("consume upload slot")
		common.WriteError(w, http.StatusInternalServerError, common.CodeInternal, "internal error")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = common.DefaultContentType
	}
	name := r.Header.Get("X-Filename")
	if name == "" {
		name = token
	}

	body := &countingReader{r: r.Body}
	ref, err := h.blobs.Put(r.Context(), name, contentType, uploader, r.ContentLength, body)
	if err != nil {
		metrics.RecordUpload("failed", body.n)
		h.log.Error().Err(err).Uint64("user_id", uploader).Msg("store upload")
		common.WriteError(w, http.StatusInternalServerError, common.CodeInternal, "upload failed")
		return
	}

	metrics.RecordUpload("success", body.n)
	h.log.Info().
		Str("storage_id", ref).
		Str("content_type", contentType).
		Int64("bytes", body.n).
		Uint64("user_id", uploader).
		Msg("upload stored")

	common.WriteJSON(w, http.StatusOK, UploadResponse{StorageID: ref})
}

// extendDeadlines lets a large body outlive the server-wide ReadTimeout. It
// runs before the slot is consumed so a slow link does not burn the slot.
func (h *UploadHandler) extendDeadlines(w http.ResponseWriter) {
	if h.bodyTimeout <= 0 {
		return
	}
	deadline := time.Now().Add(h.bodyTimeout)
	rc := http.NewResponseController(w)
	if err := rc.SetReadDeadline(deadline); err != nil {
		h.log.Debug().Err(err).Msg("upload read deadline not extended")
		return
	}
	if err := rc.SetWriteDeadline(deadline); err != nil {
		h.log.Debug().Err(err).Msg("upload write deadline not extended")
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
