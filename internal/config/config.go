package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// UpstreamConfig describes the remote warranty REST API.
type UpstreamConfig struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://167.86.94.200:3000/api/v1"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`

	// per-process outbound limit; 0 disables it
	APIRPS   float64 `envconfig:"API_RPS" default:"20"`
	APIBurst int     `envconfig:"API_BURST" default:"40"`

	BreakerFailures uint32        `envconfig:"API_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"API_BREAKER_TIMEOUT" default:"30s"`

	// serve canned demo data when the API is down
	FallbackEnabled bool `envconfig:"FALLBACK_ENABLED" default:"true"`
}

type GatewayConfig struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	Upstream UpstreamConfig `envconfig:""`

	// Telegram WebApp init data verification is on when a bot token is set.
	TelegramBotToken string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	InitDataMaxAge   time.Duration `envconfig:"TELEGRAM_INIT_DATA_MAX_AGE" default:"24h"`
}

type CLIConfig struct {
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	Upstream UpstreamConfig `envconfig:""`

	// SESSION_DSN moves the session from the file into Postgres.
	SessionFile      string `envconfig:"SESSION_FILE"`
	SessionDSN       string `envconfig:"SESSION_DSN"`
	SessionNamespace string `envconfig:"SESSION_NAMESPACE" default:"default"`
}

type MockAPIConfig struct {
	Port        string  `envconfig:"PORT" default:"3000"`
	LogFormat   string  `envconfig:"LOG_FORMAT" default:"json"`
	OutcomeMode string  `envconfig:"MOCK_OUTCOME_MODE" default:"ok"`
	SuccessRate float64 `envconfig:"MOCK_SUCCESS_RATE" default:"0.8"`
	DelayMs     int     `envconfig:"MOCK_DELAY_MS" default:"0"`
	AuthStatus  string  `envconfig:"MOCK_AUTH_STATUS" default:"CREATED"`
}

func LoadGateway() GatewayConfig {
	var cfg GatewayConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func LoadCLI() CLIConfig {
	var cfg CLIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func LoadMockAPI() MockAPIConfig {
	var cfg MockAPIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}
