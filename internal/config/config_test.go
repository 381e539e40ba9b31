package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// 空のディレクトリを指定し、デフォルト値だけで起動できることを確認
	t.Setenv("OPENAI_API_KEY", "sk-test")

	require.NoError(t, LoadConfig(t.TempDir()))

	assert.Equal(t, DefaultServerPort, Cfg.Server.Port)
	assert.Equal(t, DefaultDatabaseDriver, Cfg.Database.Driver)
	assert.Equal(t, DefaultSQLitePath, Cfg.Database.URL)
	assert.Equal(t, "sk-test", Cfg.OpenAI.APIKey)
	assert.Equal(t, DefaultOpenAIModel, Cfg.OpenAI.Model)
	assert.Equal(t, DefaultOpenAITimeout, Cfg.OpenAI.Timeout)
	assert.Equal(t, DefaultMinCards, Cfg.Deck.MinCards)
	assert.Equal(t, DefaultMaxCards, Cfg.Deck.MaxCards)
	assert.Equal(t, DefaultSnapshotKey, Cfg.Deck.SnapshotKey)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "8081"
database:
  driver: "postgres"
  url: "postgres://u:p@localhost:5432/db"
openai:
  model: "gpt-4o"
  timeout: "5s"
deck:
  max_cards: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	require.NoError(t, LoadConfig(dir))

	assert.Equal(t, ":8081", Cfg.Server.Port, "コロン無しのポートは補正される")
	assert.Equal(t, "postgres", Cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", Cfg.Database.URL)
	assert.Equal(t, "gpt-4o", Cfg.OpenAI.Model)
	assert.Equal(t, 5*time.Second, Cfg.OpenAI.Timeout)
	assert.Equal(t, 20, Cfg.Deck.MaxCards)
	assert.Equal(t, DefaultMinCards, Cfg.Deck.MinCards)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("APP_ENV", "prod")
	NewLogger(&buf, slog.LevelInfo).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	t.Setenv("APP_ENV", "dev")
	NewLogger(&buf, slog.LevelWarn).Info("hidden")
	assert.Empty(t, buf.String())
}
