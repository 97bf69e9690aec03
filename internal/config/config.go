package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	NATSURL          string
	JWTSecret        string
	TokenTTL         time.Duration
	LeaderboardTTL   time.Duration
	OpenAIAPIKey     string
	OpenAIModel      string
	GenerationTokens int
	GenerationTemp   float32
	SubmitRatePerMin int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ARENA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Prompt Arena API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("leaderboard.ttl", "30s")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("generation.max_tokens", 512)
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("submit.rate_per_min", 6)

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	leaderboardTTL, err := time.ParseDuration(v.GetString("leaderboard.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         tokenTTL,
		LeaderboardTTL:   leaderboardTTL,
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		OpenAIModel:      v.GetString("openai.model"),
		GenerationTokens: v.GetInt("generation.max_tokens"),
		GenerationTemp:   float32(v.GetFloat64("generation.temperature")),
		SubmitRatePerMin: v.GetInt("submit.rate_per_min"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.GenerationTokens <= 0 {
		cfg.GenerationTokens = 512
	}

	if cfg.SubmitRatePerMin <= 0 {
		cfg.SubmitRatePerMin = 6
	}

	return cfg, nil
}
