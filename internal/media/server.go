package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wonderscape/internal/common"
	"wonderscape/internal/dbmongo"
)

type fileSource interface {
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.MediaFile, error)
}

// HTTPServer streams GridFS files at /media/{fileId}.
type HTTPServer struct {
	storage fileSource
	router  *mux.Router
	log     zerolog.Logger
}

func NewHTTPServer(storage *dbmongo.MediaStorage, log zerolog.Logger) *HTTPServer {
	return newHTTPServer(storage, log)
}

func newHTTPServer(storage fileSource, log zerolog.Logger) *HTTPServer {
	s := &HTTPServer{storage: storage, router: mux.NewRouter(), log: log}
	s.RegisterRoutes(s.router)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	return s
}

// RegisterRoutes mounts the download route on an existing router.
func (s *HTTPServer) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/media/{fileId}", s.serveFile).Methods(http.MethodGet, http.MethodHead)
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	fileReader, mediaFile, err := s.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, dbmongo.ErrFileNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Str("file_id", fileID).Msg("open media file")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer fileReader.Close()

	w.Header().Set("Content-Type", contentType(mediaFile))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", mediaFile.Size))
	// stored files are never rewritten under the same id
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if r.Method == http.MethodHead {
		return
	}

	if _, err := io.Copy(w, fileReader); err != nil {
		s.log.Warn().Err(err).Str("file_id", fileID).Msg("stream media file")
	}
}

// contentType prefers the type recorded at upload time and falls back to
// the file extension.
func contentType(f *dbmongo.MediaFile) string {
	if f.ContentType != "" && f.ContentType != common.DefaultContentType {
		return f.ContentType
	}

	switch strings.ToLower(filepath.Ext(f.Filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	default:
		return common.DefaultContentType
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
