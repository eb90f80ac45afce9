package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "Prompt Arena API", cfg.AppName)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "gpt-4o-mini", cfg.ModelName)
	require.Equal(t, 60*time.Second, cfg.ModelTimeout)
	require.Equal(t, 512, cfg.GenerationMaxTokens)
	require.Equal(t, 300, cfg.JudgeMaxTokens)
	require.Equal(t, "data/submissions.csv", cfg.SubmissionsPath)
	require.Equal(t, "data/cases.csv", cfg.CasesPath)
	require.Equal(t, 30*time.Second, cfg.LeaderboardCacheTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ARENA_APP_PORT", "9090")
	t.Setenv("ARENA_MODEL_BASE_URL", "http://localhost:8000/v1")
	t.Setenv("ARENA_MODEL_API_KEY", "secret")
	t.Setenv("ARENA_MODEL_TIMEOUT_MS", "1500")
	t.Setenv("ARENA_LEDGER_SUBMISSIONS_PATH", "/tmp/subs.csv")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, "http://localhost:8000/v1", cfg.ModelBaseURL)
	require.Equal(t, "secret", cfg.ModelAPIKey)
	require.Equal(t, 1500*time.Millisecond, cfg.ModelTimeout)
	require.Equal(t, "/tmp/subs.csv", cfg.SubmissionsPath)
}

func TestLoadRejectsInvalidCacheTTL(t *testing.T) {
	t.Setenv("ARENA_LEADERBOARD_CACHE_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":8080", Config{AppPort: ":8080"}.HTTPAddress())
}
