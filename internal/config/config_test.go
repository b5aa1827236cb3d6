package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8081

[database]
host = "db"
user = "salon"
password = "from-file"
dbname = "salon"

[redis]
addr = "redis:6379"

[rate_limit]
enabled = true
limit = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.True(t, cfg.RateLimit.FailOpen)
	assert.Equal(t, 8, cfg.Availability.Parallelism)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMC_DB_PASSWORD", "from-env")
	t.Setenv("SMC_DB_PORT", "6432")
	t.Setenv("SMC_NOTIFICATION_SERVICE", "http://notifications:8080")

	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "http://notifications:8080", cfg.NotificationService.URL)
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	t.Setenv("SMC_HTTP_PORT", "eighty")

	_, err := Load(writeConfig(t, sampleConfig))

	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "db"

[rate_limit]
enabled = true
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.user is required")
	assert.Contains(t, err.Error(), "database.dbname is required")
	assert.Contains(t, err.Error(), "rate_limit.enabled requires redis.addr")
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig+`trusted_proxies = ["10.0.0.0/8", "192.168.1.10"]
`))

	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.RateLimit.TrustedProxies)

	_, err = Load(writeConfig(t, sampleConfig+`trusted_proxies = ["10.0.0.0/33"]
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit.trusted_proxies")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "salon", Password: "p@ss word", DBName: "salon", SSLMode: "disable"}

	assert.Equal(t, "postgres://salon:p%40ss%20word@db:5432/salon?sslmode=disable", c.DSN())
}
