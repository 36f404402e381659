package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "subscription_billing", cfg.Database.DBName)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)

	assert.True(t, cfg.Gateway.Sandbox)
	assert.Equal(t, "SUB", cfg.Gateway.TradePrefix)
	assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout)

	assert.Equal(t, 7*24*time.Hour, cfg.Billing.GraceWindow)
	assert.Equal(t, 3, cfg.Billing.MaxRetries)
	assert.Equal(t, "TWD", cfg.Billing.Currency)

	assert.Equal(t, 2*time.Hour, cfg.Scheduler.RetryInterval)
	assert.Equal(t, 6*time.Hour, cfg.Scheduler.MaintenanceInterval)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.CleanupInterval)
	assert.Equal(t, 90*24*time.Hour, cfg.Scheduler.WebhookRetention)
	assert.Equal(t, 100, cfg.Scheduler.SweepBatchSize)

	assert.Equal(t, "subscription-billing", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
database:
  host: "db.example.com"
  port: 5433
  dbname: "billing_prod"
gateway:
  merchant_id: "2000132"
  hash_key: "5294y06JbISpM5x9"
  hash_iv: "v77hoKGq4kWxNNIS"
  sandbox: false
billing:
  grace_window: "72h"
  max_retries: 5
scheduler:
  retry_interval: "1h"
`)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "billing_prod", cfg.Database.DBName)
	assert.Equal(t, "2000132", cfg.Gateway.MerchantID)
	assert.False(t, cfg.Gateway.Sandbox)
	assert.Equal(t, 72*time.Hour, cfg.Billing.GraceWindow)
	assert.Equal(t, 5, cfg.Billing.MaxRetries)
	assert.Equal(t, time.Hour, cfg.Scheduler.RetryInterval)
	// Untouched keys keep defaults
	assert.Equal(t, 6*time.Hour, cfg.Scheduler.MaintenanceInterval)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SUB_DATABASE_HOST", "env-db-host")
	t.Setenv("SUB_GATEWAY_MERCHANT_ID", "3002607")
	t.Setenv("SUB_BILLING_MAX_RETRIES", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-db-host", cfg.Database.Host)
	assert.Equal(t, "3002607", cfg.Gateway.MerchantID)
	assert.Equal(t, 7, cfg.Billing.MaxRetries)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "app", Password: "pw",
		DBName: "billing", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@localhost:5432/billing?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
