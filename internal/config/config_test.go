package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "secret", cfg.JWTSecret)
	require.Equal(t, DriverMySQL, cfg.DB.Driver)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "tr", cfg.Language)
	require.Equal(t, 720*time.Hour, cfg.TokenTTL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.False(t, cfg.TrustProxy)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load("")
	require.ErrorContains(t, err, "DB_DRIVER")
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
env: prod
port: "9090"
jwt_secret: from-file
language: en
token_ttl: 1h
db:
  driver: sqlite3
  sqlite_path: /tmp/calorist.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "en", cfg.Language)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, DriverSQLite, cfg.DB.Driver)
	require.Equal(t, "file:/tmp/calorist.db?_foreign_keys=on&_busy_timeout=5000", cfg.DSN())
}

func TestDSN_MySQL(t *testing.T) {
	cfg := Config{DB: DBConfig{
		Driver:   DriverMySQL,
		Host:     "db",
		Port:     "3306",
		User:     "u",
		Password: "p",
		Name:     "calorist",
	}}
	require.Equal(t, "u:p@tcp(db:3306)/calorist?parseTime=true&charset=utf8mb4&clientFoundRows=true", cfg.DSN())
}
