package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "luzfilms"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "LUZFILMS_DB_DSN"
	EnvDBHost = "LUZFILMS_DB_HOST"
	EnvDBUser = "LUZFILMS_DB_USER"
	EnvDBName = "LUZFILMS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Webhook      WebhookConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUZFILMS_APP_ENV" required:"true"`
	Port         string `envconfig:"LUZFILMS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUZFILMS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUZFILMS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUZFILMS_DB_DSN"`
	Driver string `envconfig:"LUZFILMS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUZFILMS_DB_HOST"`
	LegacyPort     int    `envconfig:"LUZFILMS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUZFILMS_DB_USER"`
	LegacyPassword string `envconfig:"LUZFILMS_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUZFILMS_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUZFILMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUZFILMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUZFILMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUZFILMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUZFILMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the dev-only sqlite driver was requested.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"LUZFILMS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUZFILMS_REDIS_ADDR"`
	Password     string        `envconfig:"LUZFILMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUZFILMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUZFILMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUZFILMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUZFILMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUZFILMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUZFILMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey string `envconfig:"LUZFILMS_STRIPE_API_KEY"`
	Secret string `envconfig:"LUZFILMS_STRIPE_SECRET"`
	Env    string `envconfig:"LUZFILMS_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type WebhookConfig struct {
	// IdempotencyTTL bounds how long processed event ids are remembered.
	// Stripe retries deliveries for up to three days.
	IdempotencyTTL time.Duration `envconfig:"LUZFILMS_WEBHOOK_IDEMPOTENCY_TTL" default:"96h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LUZFILMS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
