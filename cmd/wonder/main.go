package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wonderscape/internal/client/api"
	"wonderscape/internal/client/cli"
	"wonderscape/internal/common"
	"wonderscape/internal/logging"
)

func main() {
	baseURL := flag.String("api", envOr("WONDER_API", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("WONDER_TOKEN"), "bearer token")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logging.Configure(logging.Config{Level: level, Format: "console", Output: os.Stderr, Service: "wonder"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(*baseURL, api.WithToken(*token))
	app := cli.NewApp(client, os.Stdout, logging.WithComponent("cli"))

	if err := app.Run(ctx, flag.Args()); err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "Please log in: run `wonder login` and export WONDER_TOKEN")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
