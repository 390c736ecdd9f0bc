package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "community-currency", cfg.StateNamespace)
	assert.Equal(t, uint32(100000), cfg.StateTTLThreshold)
	assert.Equal(t, uint32(100000), cfg.StateTTLExtendTo)
	assert.Equal(t, 5*time.Second, cfg.StateTTLLedgerDuration)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "community-currency", cfg.JWTIssuer)
	assert.False(t, cfg.StrictInitialize)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("STATE_NAMESPACE", "town-hall")
	t.Setenv("STATE_TTL_THRESHOLD", "10")
	t.Setenv("STATE_TTL_EXTEND_TO", "20")
	t.Setenv("STATE_TTL_LEDGER_DURATION", "1s")
	t.Setenv("STRICT_INITIALIZE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_DB", "3")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/ledger.db", cfg.SQLitePath)
	assert.Equal(t, "town-hall", cfg.StateNamespace)
	assert.Equal(t, uint32(10), cfg.StateTTLThreshold)
	assert.Equal(t, uint32(20), cfg.StateTTLExtendTo)
	assert.Equal(t, time.Second, cfg.StateTTLLedgerDuration)
	assert.True(t, cfg.StrictInitialize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")
	t.Setenv("JWT_EXPIRY_DURATION", "soon")
	t.Setenv("STATE_TTL_LEDGER_DURATION", "-1s")
	t.Setenv("STATE_TTL_THRESHOLD", "-4")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 5*time.Second, cfg.StateTTLLedgerDuration)
	assert.Equal(t, uint32(100000), cfg.StateTTLThreshold)
}
