package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Auth    AuthConfig
	JWT     JWTConfig
	Storage StorageConfig
	Redis   RedisConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required when the redis snapshot backend is selected", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REWEAR_APP_ENV" default:"dev"`
	Port         string `envconfig:"REWEAR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"REWEAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REWEAR_LOG_WARN_STACK" default:"false"`
	SeedDemo     bool   `envconfig:"REWEAR_SEED_DEMO" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AuthConfig tunes the simulated credential flow. Passwords are never
// verified: the account is derived from the email alone, which is the
// documented demo behavior.
type AuthConfig struct {
	AdminEmail   string        `envconfig:"REWEAR_AUTH_ADMIN_EMAIL" default:"admin@rewear.com"`
	LoginDelay   time.Duration `envconfig:"REWEAR_AUTH_LOGIN_DELAY" default:"1s"`
	LoginPoints  int           `envconfig:"REWEAR_AUTH_LOGIN_POINTS" default:"150"`
	WelcomeBonus int           `envconfig:"REWEAR_AUTH_WELCOME_BONUS" default:"50"`
	SnapshotKey  string        `envconfig:"REWEAR_AUTH_SNAPSHOT_KEY" default:"rewear_user"`
}

type JWTConfig struct {
	Secret            string `envconfig:"REWEAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"REWEAR_JWT_ISSUER" default:"rewear"`
	ExpirationMinutes int    `envconfig:"REWEAR_JWT_EXPIRATION_MINUTES" default:"60"`
}

// StorageConfig selects where the session snapshot is mirrored.
type StorageConfig struct {
	Backend    string `envconfig:"REWEAR_STORAGE_BACKEND" default:"file"`
	FilePath   string `envconfig:"REWEAR_STORAGE_FILE_PATH" default:"rewear_session.json"`
	SQLitePath string `envconfig:"REWEAR_STORAGE_SQLITE_PATH" default:"rewear.db"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendMemory, StorageBackendFile, StorageBackendSQLite, StorageBackendRedis:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q", s.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"REWEAR_REDIS_URL"`
	Address      string        `envconfig:"REWEAR_REDIS_ADDR"`
	Password     string        `envconfig:"REWEAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"REWEAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REWEAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REWEAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REWEAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REWEAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REWEAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"REWEAR_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
