package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wonderscape/internal/wire"
)

func main() {
	app, err := wire.InitializeMediaApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize media server: %v\n", err)
		os.Exit(1)
	}
	log := app.Log.With().Str("component", "media-server").Logger()
	defer app.Mongo.Close(context.Background())

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.Config.Server.Host, app.Config.Server.MediaServerPort),
		Handler: app.Server,
		// downloads can be large, so only the header read is bounded
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("media server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("media server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("media server forced to shutdown")
	}
	log.Info().Msg("media server stopped")
}
