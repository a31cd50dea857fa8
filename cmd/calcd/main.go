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

	"github.com/smartcalc/calc/internal/server"
)

func main() {
	var (
		addr  string
		debug bool
	)
	flag.StringVar(&addr, "addr", ":5000", "listen address")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv := server.New(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- srv.Start(addr) }()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		if err := srv.Stop(); err != nil {
			log.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
		<-done
	}
}
