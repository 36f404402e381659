package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	Billing   BillingConfig   `mapstructure:"billing"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
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
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GatewayConfig holds the payment gateway credentials and endpoints.
// Sandbox and production key pairs are distinct configs, never process globals,
// so tests can run both side by side.
type GatewayConfig struct {
	MerchantID   string        `mapstructure:"merchant_id"`
	HashKey      string        `mapstructure:"hash_key"`
	HashIV       string        `mapstructure:"hash_iv"`
	AuthorizeURL string        `mapstructure:"authorize_url"`
	ChargeURL    string        `mapstructure:"charge_url"`
	RefundURL    string        `mapstructure:"refund_url"`
	ReturnURL    string        `mapstructure:"return_url"`    // Browser redirect after authorization
	CallbackURL  string        `mapstructure:"callback_url"`  // Server-to-server webhook base
	Sandbox      bool          `mapstructure:"sandbox"`
	TradePrefix  string        `mapstructure:"trade_prefix"`  // 3-char merchant trade number prefix
	Timeout      time.Duration `mapstructure:"timeout"`
}

// BillingConfig holds subscription lifecycle parameters.
type BillingConfig struct {
	GraceWindow   time.Duration `mapstructure:"grace_window"`   // Usable window after a failed charge
	MaxRetries    int           `mapstructure:"max_retries"`    // Charge retry ceiling per period
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`  // Base interval, doubled per attempt
	Currency      string        `mapstructure:"currency"`
	PlanOverrides map[string]int64 `mapstructure:"plan_overrides"` // plan id -> amount in minor units
}

// SchedulerConfig holds the reconciliation sweep cadences.
type SchedulerConfig struct {
	RetryInterval       time.Duration `mapstructure:"retry_interval"`       // Payment retry sweep
	MaintenanceInterval time.Duration `mapstructure:"maintenance_interval"` // Grace expiry, period-end cancels
	CleanupInterval     time.Duration `mapstructure:"cleanup_interval"`     // Webhook log pruning
	WebhookRetention    time.Duration `mapstructure:"webhook_retention"`    // Age before pruning succeeded events
	SweepBatchSize      int           `mapstructure:"sweep_batch_size"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SUB_.
// Nested keys use underscore: SUB_DATABASE_HOST, SUB_GATEWAY_HASH_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "subscription_billing")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gateway.merchant_id", "")
	v.SetDefault("gateway.hash_key", "")
	v.SetDefault("gateway.hash_iv", "")
	v.SetDefault("gateway.authorize_url", "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5")
	v.SetDefault("gateway.charge_url", "https://payment-stage.ecpay.com.tw/CreditDetail/DoCharge")
	v.SetDefault("gateway.refund_url", "https://payment-stage.ecpay.com.tw/CreditDetail/DoAction")
	v.SetDefault("gateway.return_url", "")
	v.SetDefault("gateway.callback_url", "")
	v.SetDefault("gateway.sandbox", true)
	v.SetDefault("gateway.trade_prefix", "SUB")
	v.SetDefault("gateway.timeout", "15s")
	v.SetDefault("billing.grace_window", "168h") // 7 days
	v.SetDefault("billing.max_retries", 3)
	v.SetDefault("billing.retry_backoff", "24h")
	v.SetDefault("billing.currency", "TWD")
	v.SetDefault("scheduler.retry_interval", "2h")
	v.SetDefault("scheduler.maintenance_interval", "6h")
	v.SetDefault("scheduler.cleanup_interval", "24h")
	v.SetDefault("scheduler.webhook_retention", "2160h") // 90 days
	v.SetDefault("scheduler.sweep_batch_size", 100)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "subscription-billing")
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

	// Environment variables: SUB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
