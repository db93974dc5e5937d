package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/yusufkecer/calorist-backend/internal/i18n"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	Env            string        `yaml:"env" env:"ENV" env-default:"local"`
	Port           string        `yaml:"port" env:"PORT" env-default:"8080"`
	DB             DBConfig      `yaml:"db"`
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"720h"`
	APIKey         string        `yaml:"api_key" env:"API_KEY"`
	AllowedOrigins string        `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"*"`
	Language       string        `yaml:"language" env:"DEFAULT_LANGUAGE" env-default:"tr"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"10s"`
	TrustProxy     bool          `yaml:"trust_proxy" env:"TRUST_PROXY" env-default:"false"`
}

type DBConfig struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER" env-default:"mysql"`
	Host       string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port       string `yaml:"port" env:"DB_PORT" env-default:"3306"`
	User       string `yaml:"user" env:"DB_USER" env-default:"calorist"`
	Password   string `yaml:"password" env:"DB_PASSWORD" env-default:"calorist_pass"`
	Name       string `yaml:"name" env:"DB_NAME" env-default:"calorist"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"calorist.db"`
}

// Load reads the configuration from path, or from CONFIG_PATH when path is
// empty, falling back to environment variables. A .env file in the working
// directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.DB.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if _, ok := i18n.Parse(c.Language); !ok {
		return fmt.Errorf("unsupported DEFAULT_LANGUAGE %q", c.Language)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == DriverSQLite {
		return "file:" + c.DB.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return c.DB.User + ":" + c.DB.Password + "@tcp(" + c.DB.Host + ":" + c.DB.Port + ")/" + c.DB.Name +
		"?parseTime=true&charset=utf8mb4&clientFoundRows=true"
}
