package video

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wonderscape/internal/common"
)

// Handler exposes the video operations under /videos.
type Handler struct {
	videoService VideoService
	log          zerolog.Logger
}

func NewHandler(videoService VideoService, log zerolog.Logger) *Handler {
	return &Handler{videoService: videoService, log: log}
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
}

type CreateVideoResponse struct {
	ID string `json:"id"`
}

// RegisterRoutes mounts the video endpoints. uploadSlot wraps the slot
// route so callers can rate limit it.
func (h *Handler) RegisterRoutes(r *mux.Router, uploadSlot func(http.Handler) http.Handler) {
	if uploadSlot == nil {
		uploadSlot = func(next http.Handler) http.Handler { return next }
	}

	r.Handle("/videos/upload-url", uploadSlot(http.HandlerFunc(h.RequestUploadURL))).Methods(http.MethodPost)
	r.HandleFunc("/videos", h.CreateVideo).Methods(http.MethodPost)
	r.HandleFunc("/videos", h.ListVideos).Methods(http.MethodGet)
	r.HandleFunc("/videos/{id}", h.GetVideo).Methods(http.MethodGet)
	r.HandleFunc("/videos/{id}/views", h.IncrementViews).Methods(http.MethodPost)
}

func (h *Handler) RequestUploadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.videoService.RequestUploadSlot(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, UploadURLResponse{UploadURL: url})
}

func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var in CreateVideoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.WriteError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body")
		return
	}

	id, err := h.videoService.CreateVideo(r.Context(), in)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, CreateVideoResponse{ID: id})
}

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	videos, err := h.videoService.ListVideos(r.Context(), SortBy(q.Get("sortBy")), q.Get("searchQuery"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, videos)
}

// GetVideo answers null rather than 404 for unknown ids.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	v, err := h.videoService.GetVideo(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	if err := h.videoService.IncrementViews(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		common.WriteError(w, http.StatusUnauthorized, common.CodeUnauthenticated, err.Error())
	case errors.Is(err, ErrValidation):
		common.WriteError(w, http.StatusBadRequest, common.CodeValidation, err.Error())
	default:
		h.log.Error().Err(err).Msg("video request failed")
		common.WriteError(w, http.StatusInternalServerError, common.CodeInternal, "internal error")
	}
}
