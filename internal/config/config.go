package config

import (
	"fmt"
	"os"
	"time"

	"idle-redeemer/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	APIBaseURL    string
	CodesURL      string
	CodePrefix    string
	DBPath        string
	LogLevel      string
	UserAgent     string
	CodesCacheTTL time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		APIBaseURL:    getEnv("API_BASE_URL", "http://ps7.idlechampions.com/~idledragons"),
		CodesURL:      getEnv("CODES_URL", "https://incendar.com/idlechampions_codes.php"),
		CodePrefix:    getEnv("CODE_PREFIX", "incendar"),
		DBPath:        getEnv("DB_PATH", "redeemer.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		UserAgent:     getEnv("USER_AGENT", "idle-redeemer"),
		CodesCacheTTL: constants.CodesCacheTTL,
	}

	if raw := os.Getenv("CODES_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CODES_CACHE_TTL %q: %w", raw, err)
		}
		cfg.CodesCacheTTL = ttl
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.CodesURL == "" {
		return nil, fmt.Errorf("CODES_URL must not be empty")
	}

	logger.Info().
		Str("api_base_url", cfg.APIBaseURL).
		Str("codes_url", cfg.CodesURL).
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Dur("codes_cache_ttl", cfg.CodesCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
