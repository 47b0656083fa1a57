package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "octofit"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "OCTOFIT_APP_ENV"
	EnvPort     = "OCTOFIT_APP_PORT"
	EnvDBDSN    = "OCTOFIT_DB_DSN"
	EnvRedisURL = "OCTOFIT_REDIS_URL"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Password     PasswordConfig
	Leaderboard  LeaderboardConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OCTOFIT_APP_ENV" required:"true"`
	Port         string `envconfig:"OCTOFIT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OCTOFIT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OCTOFIT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OCTOFIT_DB_DSN"`
	Driver string `envconfig:"OCTOFIT_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"OCTOFIT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OCTOFIT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OCTOFIT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OCTOFIT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) validate() error {
	switch db.Driver {
	case "postgres":
		if db.DSN == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	case "sqlite":
		// sqlite defaults to an on-disk dev database when no DSN is given
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"OCTOFIT_REDIS_URL" required:"true"`
	Password     string        `envconfig:"OCTOFIT_REDIS_PASSWORD"`
	DB           int           `envconfig:"OCTOFIT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OCTOFIT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OCTOFIT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OCTOFIT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OCTOFIT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OCTOFIT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OCTOFIT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OCTOFIT_ARGON_TIME" default:"1"`
	ArgonParallelism int `envconfig:"OCTOFIT_ARGON_PARALLELISM" default:"4"`
	ArgonSaltLen     int `envconfig:"OCTOFIT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OCTOFIT_ARGON_KEY_LEN" default:"32"`
}

type LeaderboardConfig struct {
	TopCacheTTL time.Duration `envconfig:"OCTOFIT_LEADERBOARD_CACHE_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OCTOFIT_AUTO_MIGRATE" default:"true"`
}
