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
	assert.Equal(t, "memory", cfg.Storage.Driver)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "bitcoin_wallet", cfg.Database.DBName)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())

	assert.Equal(t, "admin_api_key", cfg.Admin.APIKey)
	assert.Equal(t, 25000.0, cfg.Exchange.USDPerBTC)

	assert.Equal(t, 0.0, cfg.Fees.Deposit)
	assert.Equal(t, 0.0, cfg.Fees.Withdraw)
	assert.Equal(t, 0.005, cfg.Fees.SameOwner)
	assert.Equal(t, 0.015, cfg.Fees.DifferentOwner)

	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "bitcoin-wallet", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
storage:
  driver: "postgres"
admin:
  api_key: "super_secret_admin"
exchange:
  usd_per_btc: 40000
fees:
  same_owner: 0.01
  different_owner: 0.02
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "super_secret_admin", cfg.Admin.APIKey)
	assert.Equal(t, 40000.0, cfg.Exchange.USDPerBTC)
	assert.Equal(t, 0.01, cfg.Fees.SameOwner)
	assert.Equal(t, 0.02, cfg.Fees.DifferentOwner)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BTCW_ADMIN_API_KEY", "env_admin_key")
	t.Setenv("BTCW_FEES_SAME_OWNER", "0.003")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env_admin_key", cfg.Admin.APIKey)
	assert.Equal(t, 0.003, cfg.Fees.SameOwner)
}

func TestLoad_Validation(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("different_owner must exceed same_owner", func(t *testing.T) {
		_, err := Load(write(t, "fees:\n  same_owner: 0.02\n  different_owner: 0.01\n"))
		assert.Error(t, err)
	})

	t.Run("rates must be below one", func(t *testing.T) {
		_, err := Load(write(t, "fees:\n  same_owner: 0.5\n  different_owner: 1.5\n"))
		assert.Error(t, err)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := Load(write(t, "fees:\n  deposit: -0.1\n"))
		assert.Error(t, err)
	})

	t.Run("exchange rate must be positive", func(t *testing.T) {
		_, err := Load(write(t, "exchange:\n  usd_per_btc: 0\n"))
		assert.Error(t, err)
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		_, err := Load(write(t, "storage:\n  driver: \"cassandra\"\n"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.local", Port: 5433, User: "app", Password: "pw",
		DBName: "wallet", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db.local:5433/wallet?sslmode=disable", d.DSN())
}
