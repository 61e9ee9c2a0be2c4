package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"wonderscape/internal/common"
	"wonderscape/internal/media"
	"wonderscape/internal/user"
	"wonderscape/internal/video"
)

// Deps are the handlers and options the API router is assembled from.
type Deps struct {
	Users   *user.Handler
	Videos  *video.Handler
	Uploads *media.UploadHandler
	// Media is nil unless blobs live in GridFS.
	Media *media.HTTPServer
	JWT   *common.JWTManager

	UploadRateLimit int // per minute per IP
	EnableMetrics   bool
	Log             zerolog.Logger

	// Ready backs /health; nil means always healthy.
	Ready func(ctx context.Context) error
}

// NewRouter builds the HTTP surface of the API process. CORS wraps the
// whole router so preflight requests are answered for every path.
func NewRouter(d Deps) http.Handler {
	router := mux.NewRouter()
	router.Use(accessLog(d.Log))
	router.Use(metricsMiddleware)

	router.HandleFunc("/health", healthHandler(d.Ready)).Methods(http.MethodGet)
	if d.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
	if d.Media != nil {
		d.Media.RegisterRoutes(router)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(common.AuthMiddleware(d.JWT))

	limit := media.RateLimit(d.UploadRateLimit, time.Minute)
	d.Users.RegisterRoutes(api)
	d.Videos.RegisterRoutes(api, limit)
	d.Uploads.RegisterRoutes(api, limit)

	return corsMiddleware(router)
}

func healthHandler(ready func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				common.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy", "service": "wonderscape", "error": err.Error(),
				})
				return
			}
		}
		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "wonderscape"})
	}
}
