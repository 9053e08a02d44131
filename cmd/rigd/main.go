package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autorig/internal/app"
	"autorig/internal/host"
)

func main() {
	if err := run(); err != nil {
		slog.Error("rigd failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", ":8733", "listen address")
	project := flag.String("project", "", "project root (default: nearest parent with .autorig)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dir := *project
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if found, ok := app.FindProject(cwd); ok {
			dir = found
		} else {
			dir = cwd
		}
	}

	wire, err := app.NewWire(app.Config{ProjectDir: dir})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: *addr,
		Handler: host.NewServer(host.Services{
			Scene:     wire.Scene,
			Selection: wire.Selection,
			Joints:    wire.Joints,
			Spine:     wire.Spine,
			Skeleton:  wire.Skeleton,
		}, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("rigd listening", "addr", *addr, "project", dir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
