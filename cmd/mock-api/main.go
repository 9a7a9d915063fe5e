package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"warranty/internal/config"
	"warranty/internal/fallback"
	"warranty/internal/logging"
)

func main() {
	cfg := config.LoadMockAPI()
	logging.Init("mock-api", cfg.LogFormat)

	s := &server{
		cfg:  cfg,
		data: fallback.Default(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}

	slog.Info("mock api listening", "port", cfg.Port, "outcome_mode", cfg.OutcomeMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           loggingMiddleware(s.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("mock api server failed", "err", err)
		os.Exit(1)
	}
}
