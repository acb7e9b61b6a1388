package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(map[string]string{
		"DATABASE_URL":       "postgres://localhost/sweat",
		"GAME_SERVICE_TOKEN": "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "5300", c.Port)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
	assert.Equal(t, 5, c.BattleMaxRetries)
	assert.Equal(t, time.Minute, c.RewardReconcileInterval)
	assert.Equal(t, time.Hour, c.ActivitySyncInterval)
	assert.False(t, c.R2.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	c, err := FromEnv(map[string]string{
		"PORT":                      "8080",
		"DB_DRIVER":                 "sqlite",
		"DATABASE_URL":              "file:sweat.db",
		"GAME_SERVICE_TOKEN":        "tok",
		"ALLOWED_ORIGINS":           " https://a.app , https://b.app,",
		"HEALTH_SERVICE_URL":        "https://health.internal/",
		"BATTLE_MAX_RETRIES":        "8",
		"REWARD_RECONCILE_INTERVAL": "30s",
		"ACTIVITY_SYNC_INTERVAL":    "15m",
	})
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, c.AllowedOrigins)
	assert.Equal(t, "https://health.internal", c.HealthServiceURL)
	assert.Equal(t, 8, c.BattleMaxRetries)
	assert.Equal(t, 30*time.Second, c.RewardReconcileInterval)
	assert.Equal(t, 15*time.Minute, c.ActivitySyncInterval)
}

func TestFromEnv_ZeroDisablesActivitySync(t *testing.T) {
	c, err := FromEnv(map[string]string{
		"DATABASE_URL":           "x",
		"GAME_SERVICE_TOKEN":     "tok",
		"ACTIVITY_SYNC_INTERVAL": "0",
	})
	require.NoError(t, err)
	assert.Zero(t, c.ActivitySyncInterval)

	_, err = FromEnv(map[string]string{
		"DATABASE_URL":              "x",
		"GAME_SERVICE_TOKEN":        "tok",
		"REWARD_RECONCILE_INTERVAL": "0s",
	})
	assert.ErrorContains(t, err, "REWARD_RECONCILE_INTERVAL")
}

func TestFromEnv_ReportsAllProblems(t *testing.T) {
	_, err := FromEnv(map[string]string{
		"DB_DRIVER":          "mysql",
		"BATTLE_MAX_RETRIES": "zero",
	})
	require.Error(t, err)
	// parse errors name the struct field rather than the variable
	for _, want := range []string{"DB_DRIVER", "DATABASE_URL", "GAME_SERVICE_TOKEN", "BattleMaxRetries"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestFromEnv_RejectsNonPositiveRetries(t *testing.T) {
	_, err := FromEnv(map[string]string{
		"DATABASE_URL":       "x",
		"GAME_SERVICE_TOKEN": "tok",
		"BATTLE_MAX_RETRIES": "0",
	})
	assert.ErrorContains(t, err, "BATTLE_MAX_RETRIES")
}

func TestFromEnv_R2(t *testing.T) {
	c, err := FromEnv(map[string]string{
		"DATABASE_URL":          "x",
		"GAME_SERVICE_TOKEN":    "tok",
		"CLOUDFLARE_ACCOUNT_ID": "acct",
		"R2_ACCESS_KEY_ID":      "key",
		"R2_ACCESS_KEY_SECRET":  "secret",
		"R2_BUCKET_NAME":        "battles",
		"CDN_BASE_URL":          "https://cdn.example.com",
	})
	require.NoError(t, err)
	assert.True(t, c.R2.Enabled())
	assert.Equal(t, "battles", c.R2.Bucket)
	assert.Equal(t, "https://cdn.example.com", c.R2.CDNBaseURL)
}
