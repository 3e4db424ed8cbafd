package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "letterforge", cfg.App.Name)
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, 24, cfg.Letter.TTLHours)
	require.Equal(t, 50, cfg.Letter.MinExplanationChars)
	require.Equal(t, "letter.email.send", cfg.RabbitMQ.EmailSendQueue)
	require.Empty(t, cfg.Redis.Addr)
	require.Empty(t, cfg.MySQL.Host)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
name = "letterforge-test"
port = 9090

[letter]
ttl_hours = 1

[redis]
addr = "localhost:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "letterforge-test", cfg.App.Name)
	require.Equal(t, 9090, cfg.App.Port)
	require.Equal(t, 1, cfg.Letter.TTLHours)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	// untouched sections keep their defaults
	require.Equal(t, 50, cfg.Letter.MinExplanationChars)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[app]\nport = 9090\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7070")
	t.Setenv("LETTER_TTL_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.App.Port)
	require.Equal(t, 2, cfg.Letter.TTLHours)
}

func TestHTTPAddr(t *testing.T) {
	cfg := &Config{App: AppConfig{Host: "127.0.0.1", Port: 8081}}
	require.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr())
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{MySQL: MySQLConfig{
		Host:     "db",
		Port:     3306,
		User:     "root",
		Password: "secret",
		DB:       "letterforge",
		Params:   "parseTime=true",
	}}
	require.Equal(t, "root:secret@tcp(db:3306)/letterforge?parseTime=true", cfg.MySQLDSN())
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
}
