package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the arena API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	ModelBaseURL        string
	ModelAPIKey         string
	ModelName           string
	ModelTimeout        time.Duration
	GenerationMaxTokens int
	JudgeMaxTokens      int
	ChallengesPath      string
	SubmissionsPath     string
	CasesPath           string
	RedisURL            string
	LeaderboardCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
//
// The upstream model credential is deliberately not required here: the read-side
// endpoints (categories, challenges, leaderboard) must keep working when no model
// is configured, and the gateway reports its own configuration failure per call.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ARENA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Prompt Arena API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("model.name", "gpt-4o-mini")
	v.SetDefault("model.timeout_ms", 60000)
	v.SetDefault("generation.max_tokens", 512)
	v.SetDefault("judge.max_tokens", 300)
	v.SetDefault("ledger.submissions_path", "data/submissions.csv")
	v.SetDefault("ledger.cases_path", "data/cases.csv")
	v.SetDefault("leaderboard.cache_ttl", "30s")

	timeoutMs := v.GetInt("model.timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 60000
	}

	ttlString := v.GetString("leaderboard.cache_ttl")
	if ttlString == "" {
		ttlString = "30s"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid leaderboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		ModelBaseURL:        v.GetString("model.base_url"),
		ModelAPIKey:         v.GetString("model.api_key"),
		ModelName:           v.GetString("model.name"),
		ModelTimeout:        time.Duration(timeoutMs) * time.Millisecond,
		GenerationMaxTokens: v.GetInt("generation.max_tokens"),
		JudgeMaxTokens:      v.GetInt("judge.max_tokens"),
		ChallengesPath:      v.GetString("challenges.path"),
		SubmissionsPath:     v.GetString("ledger.submissions_path"),
		CasesPath:           v.GetString("ledger.cases_path"),
		RedisURL:            v.GetString("redis.url"),
		LeaderboardCacheTTL: ttl,
	}

	if cfg.GenerationMaxTokens <= 0 {
		cfg.GenerationMaxTokens = 512
	}

	if cfg.JudgeMaxTokens <= 0 {
		cfg.JudgeMaxTokens = 300
	}

	return cfg, nil
}
