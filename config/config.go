package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Fees     FeesConfig     `mapstructure:"fees"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, postgres
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// AdminConfig holds the distinguished administrator credential used
// by the statistics endpoint.
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// ExchangeConfig holds the fixed USD/BTC exchange rate.
type ExchangeConfig struct {
	USDPerBTC float64 `mapstructure:"usd_per_btc"`
}

// FeesConfig holds the four fee rates as fractional multipliers.
// DifferentOwner must be strictly greater than SameOwner.
type FeesConfig struct {
	Deposit        float64 `mapstructure:"deposit"`
	Withdraw       float64 `mapstructure:"withdraw"`
	SameOwner      float64 `mapstructure:"same_owner"`
	DifferentOwner float64 `mapstructure:"different_owner"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BTCW.
// Nested keys use underscore: BTCW_DATABASE_HOST, BTCW_ADMIN_API_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "bitcoin_wallet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "bitcoin-wallet")
	v.SetDefault("admin.api_key", "admin_api_key")
	v.SetDefault("exchange.usd_per_btc", 25000.0)
	v.SetDefault("fees.deposit", 0.0)
	v.SetDefault("fees.withdraw", 0.0)
	v.SetDefault("fees.same_owner", 0.005)
	v.SetDefault("fees.different_owner", 0.015)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BTCW_FEES_SAME_OWNER -> fees.same_owner
	v.SetEnvPrefix("BTCW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Exchange.USDPerBTC <= 0 {
		return fmt.Errorf("exchange.usd_per_btc must be positive, got %v", c.Exchange.USDPerBTC)
	}
	if c.Fees.DifferentOwner <= c.Fees.SameOwner {
		return fmt.Errorf("fees.different_owner (%v) must exceed fees.same_owner (%v)",
			c.Fees.DifferentOwner, c.Fees.SameOwner)
	}
	for name, rate := range map[string]float64{
		"deposit":         c.Fees.Deposit,
		"withdraw":        c.Fees.Withdraw,
		"same_owner":      c.Fees.SameOwner,
		"different_owner": c.Fees.DifferentOwner,
	} {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("fees.%s must be in [0,1), got %v", name, rate)
		}
	}
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("storage.driver must be memory or postgres, got %q", c.Storage.Driver)
	}
	return nil
}
