package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Relay        RelayConfig
	Planner      PlannerConfig
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
	Env          string   `envconfig:"WEDELITE_APP_ENV" required:"true"`
	Port         string   `envconfig:"WEDELITE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"WEDELITE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"WEDELITE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"WEDELITE_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WEDELITE_DB_DSN"`
	Driver string `envconfig:"WEDELITE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WEDELITE_DB_HOST"`
	LegacyPort     int    `envconfig:"WEDELITE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WEDELITE_DB_USER"`
	LegacyPassword string `envconfig:"WEDELITE_DB_PASSWORD"`
	LegacyName     string `envconfig:"WEDELITE_DB_NAME"`
	LegacySSLMode  string `envconfig:"WEDELITE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WEDELITE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WEDELITE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WEDELITE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WEDELITE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WEDELITE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WEDELITE_REDIS_ADDR"`
	Password     string        `envconfig:"WEDELITE_REDIS_PASSWORD"`
	DB           int           `envconfig:"WEDELITE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WEDELITE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WEDELITE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WEDELITE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WEDELITE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WEDELITE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// RelayConfig controls the per-wedding change-event fan-out.
type RelayConfig struct {
	Enabled       bool   `envconfig:"WEDELITE_RELAY_ENABLED" default:"true"`
	ChannelPrefix string `envconfig:"WEDELITE_RELAY_CHANNEL_PREFIX" default:"wedelite"`
}

// PlannerConfig carries the product defaults applied at wedding creation.
// The category weight table and timeline task templates themselves live in
// internal/planner; these values parameterize them.
type PlannerConfig struct {
	DefaultTotalBudget decimal.Decimal `envconfig:"WEDELITE_PLANNER_DEFAULT_TOTAL_BUDGET" default:"165000"`
	DefaultGuestCount  int             `envconfig:"WEDELITE_PLANNER_DEFAULT_GUEST_COUNT" default:"400"`
	MinLeadDays        int             `envconfig:"WEDELITE_PLANNER_MIN_LEAD_DAYS" default:"30"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WEDELITE_AUTO_MIGRATE" default:"false"`
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
