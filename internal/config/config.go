package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	StoreDriver string `env:"STORE_DRIVER" env-default:"postgres"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	BcryptCost  int    `env:"BCRYPT_COST" env-default:"10"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:"0.0.0.0:8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

type PostgresConfig struct {
	Host         string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port         string `env:"POSTGRES_PORT" env-default:"5432"`
	User         string `env:"POSTGRES_USER" env-default:"postgres"`
	Password     string `env:"POSTGRES_PASSWORD"`
	DB           string `env:"POSTGRES_DB" env-default:"dailyvote"`
	SSLMode      string `env:"POSTGRES_SSLMODE" env-default:"disable"`
	MaxOpenConns int    `env:"POSTGRES_MAX_OPEN_CONNS" env-default:"10"`
	AutoMigrate  bool   `env:"POSTGRES_AUTO_MIGRATE" env-default:"true"`
}

// ConnString builds a lib/pq connection URL.
func (c PostgresConfig) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DB,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// New reads the configuration from the environment. Values in a .env file in
// the working directory are loaded first when the file exists.
func New() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be %s or %s", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}
	if c.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return nil
}
