package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
user = "eventsync"
password = "${EVENTSYNC_TEST_DB_PASSWORD}"
dbname = "eventsync"
query_timeout = 3000
tx_retries = 5

[redis]
enabled = true
address = "localhost:6379"

[booking]
pending_ttl = 48
sweep_interval = 60
max_advance_days = 30

[admins]
user_ids = ["admin-1", "admin-2"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("EVENTSYNC_TEST_DB_PASSWORD", "s3cr3t")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Server.WriteTimeout, "defaults kept for missing keys")
	assert.Equal(t, "s3cr3t", cfg.Database.Password)
	assert.Equal(t, 5, cfg.Database.TxRetries)
	assert.Equal(t, 48*time.Hour, cfg.Booking.PendingTTLDuration())
	assert.Equal(t, time.Minute, cfg.Booking.SweepIntervalDuration())
	assert.Equal(t, uint64(100), cfg.Booking.SweepBatchSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "localhost"
user = "eventsync"
dbname = "eventsync"

[redis]
enabled = true

[booking]
max_advance_days = 0
`))

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "redis.address")
	assert.Contains(t, err.Error(), "booking.max_advance_days")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:         "db",
		Port:         5432,
		User:         "eventsync",
		Password:     "p@ss",
		DBName:       "eventsync",
		SSLMode:      "disable",
		QueryTimeout: 3000,
	}

	dsn := d.DSN()

	assert.True(t, strings.HasPrefix(dsn, "postgres://eventsync:p%40ss@db:5432/eventsync?"))
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "statement_timeout%3D3000")
}

func TestAdminsConfig_IsAdmin(t *testing.T) {
	a := AdminsConfig{UserIDs: []string{"admin-1"}}

	assert.True(t, a.IsAdmin("admin-1"))
	assert.False(t, a.IsAdmin("student-1"))
	assert.False(t, a.IsAdmin(""))
}
