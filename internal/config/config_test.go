package config

import (
	"testing"
	"time"
)

func TestLoadGatewayDefaults(t *testing.T) {
	cfg := LoadGateway()
	if cfg.Port != "8080" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Upstream.APITimeout != 10*time.Second || !cfg.Upstream.FallbackEnabled {
		t.Fatalf("unexpected upstream defaults %+v", cfg.Upstream)
	}
	if cfg.TelegramBotToken != "" {
		t.Fatalf("bot token should be empty by default")
	}
}

func TestLoadGatewayFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:3000/api/v1")
	t.Setenv("FALLBACK_ENABLED", "false")
	t.Setenv("API_BREAKER_TIMEOUT", "5s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "1:abc")

	cfg := LoadGateway()
	if cfg.Upstream.APIBaseURL != "http://localhost:3000/api/v1" || cfg.Upstream.FallbackEnabled {
		t.Fatalf("env not applied %+v", cfg.Upstream)
	}
	if cfg.Upstream.BreakerTimeout != 5*time.Second || cfg.TelegramBotToken != "1:abc" {
		t.Fatalf("env not applied %+v", cfg)
	}
}

func TestLoadCLIPanicsOnBadValue(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid duration")
		}
	}()
	LoadCLI()
}
