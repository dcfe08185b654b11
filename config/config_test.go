package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("USER", "shell-user")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DB.User)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "restaurant-events", cfg.Kafka.Topic)
	assert.Equal(t, "table-reconciler", cfg.Kafka.GroupID)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.SlotLockTTL)
	assert.False(t, cfg.TakeawayStrictTransitions)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("AUTH_TOKEN_TTL", "30m")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "restaurant")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("KAFKA_GROUP_ID", "other")
	t.Setenv("TAKEAWAY_STRICT_TRANSITIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "other", cfg.Kafka.GroupID)
	assert.True(t, cfg.TakeawayStrictTransitions)
	assert.Equal(t, "host=db port=5432 user=restaurant password= dbname=restaurant sslmode=require", cfg.DB.DSN())
	assert.Equal(t, "postgres://restaurant:@db:5432/restaurant?sslmode=require", cfg.DB.URL())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	assert.NoError(t, cfg.SetupLogging())

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.SetupLogging())
}
