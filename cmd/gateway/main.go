package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"warranty/internal/apiclient"
	"warranty/internal/config"
	"warranty/internal/fallback"
	"warranty/internal/httpserver"
	"warranty/internal/logging"
	"warranty/internal/observability"
	"warranty/internal/service"
)

func main() {
	cfg := config.LoadGateway()
	logger := logging.Init("gateway", cfg.LogFormat)

	observability.Register(prometheus.DefaultRegisterer)

	client := apiclient.New(apiclient.Options{
		BaseURL:         cfg.Upstream.APIBaseURL,
		Timeout:         cfg.Upstream.APITimeout,
		RPS:             cfg.Upstream.APIRPS,
		Burst:           cfg.Upstream.APIBurst,
		BreakerFailures: cfg.Upstream.BreakerFailures,
		BreakerTimeout:  cfg.Upstream.BreakerTimeout,
	})
	svc := service.New(client, &fallback.Resolver{
		Logger:   logger,
		Disabled: !cfg.Upstream.FallbackEnabled,
	})

	if cfg.TelegramBotToken == "" {
		slog.Warn("gateway init data verification disabled", "reason", "TELEGRAM_BOT_TOKEN not set")
	}

	s := httpserver.New()
	s.Mount(&httpserver.API{Svc: svc}, &httpserver.InitData{
		BotToken: cfg.TelegramBotToken,
		MaxAge:   cfg.InitDataMaxAge,
	})
	s.Mux.HandleFunc("/healthz", httpserver.Healthz())
	s.Mux.HandleFunc("/readyz", httpserver.Readyz(2*time.Second, httpserver.BreakerCheck(client.Breaker)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("gateway shutdown", "signal", sig.String())
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("gateway listening",
		"port", cfg.Port,
		"api_base_url", cfg.Upstream.APIBaseURL,
		"fallback_enabled", cfg.Upstream.FallbackEnabled,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("gateway server failed", "err", err)
		os.Exit(1)
	}
}
