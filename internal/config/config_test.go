package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docuchat", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 10, cfg.LLM.MaxHistoryMessage)
	assert.Equal(t, 50, cfg.MySQL.MaxOpenConns)
	assert.Equal(t, 10, cfg.MySQL.MaxIdleConns)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, "chat.transcript.persist", cfg.RabbitMQ.TranscriptPersistQueue)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ADMIN_USERNAME", "operator")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("REDIS_HISTORY_TTL_SECONDS", "120")
	t.Setenv("MYSQL_MAX_OPEN_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "operator", cfg.Auth.AdminUsername)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 120, cfg.Redis.HistoryTTLSeconds)
	assert.Equal(t, 25, cfg.MySQL.MaxOpenConns)
}

func TestLoadBadEnvFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.toml")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
}

func TestHTTPAddrAndDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 9000
	cfg.MySQL.User = "u"
	cfg.MySQL.Password = "p"
	cfg.MySQL.Host = "db"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "chat"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr())
	assert.Equal(t, "u:p@tcp(db:3307)/chat?parseTime=true", cfg.MySQLDSN())
}
