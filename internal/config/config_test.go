//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
bot:
  token: "123:abc"
channel:
  id: "-1001234567890"
http:
  port: 9090
log:
  level: debug
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Bot.Token != "123:abc" || cfg.HTTP.Port != 9090 || cfg.Log.Level != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Bot.Workers != 4 || cfg.Bot.InlineCacheTime != 10 || cfg.Catalog.Source != "static" {
		t.Errorf("defaults not applied: %+v", cfg.Bot)
	}
	if cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected default shutdown timeout, got %v", cfg.HTTP.ShutdownTimeout)
	}
	if !cfg.Runtime.Dev {
		t.Error("expected dev flag to be carried")
	}
}

func TestLoadConfig_EnvOverridesAndMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("DEFAULT_CHANNEL_ID", "@moviechannel")
	t.Setenv("PORT", "7000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Bot.Token != "env-token" || cfg.Channel.ID != "@moviechannel" || cfg.HTTP.Port != 7000 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// godotenv never overrides variables that are already set
	for _, k := range []string{"BOT_TOKEN", "DEFAULT_CHANNEL_ID"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BOT_TOKEN=dotenv-token\nDEFAULT_CHANNEL_ID=-10042\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("", false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Bot.Token != "dotenv-token" || cfg.Channel.ID != "-10042" {
		t.Errorf(".env values not applied: %+v", cfg)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	chdir(t, t.TempDir())
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing token", "channel:\n  id: \"-1\"\n", "bot.token"},
		{"missing channel", "bot:\n  token: t\n", "channel.id"},
		{"bad channel", "bot:\n  token: t\nchannel:\n  id: movies\n", "invalid channel.id"},
		{"yaml catalog without path", "bot:\n  token: t\nchannel:\n  id: \"-1\"\ncatalog:\n  source: yaml\n", "catalog.path"},
		{"mongo catalog without uri", "bot:\n  token: t\nchannel:\n  id: \"-1\"\ncatalog:\n  source: mongo\n", "mongo_uri"},
		{"unknown catalog", "bot:\n  token: t\nchannel:\n  id: \"-1\"\ncatalog:\n  source: sql\n", "unknown catalog.source"},
		{"negative refresh", "bot:\n  token: t\nchannel:\n  id: \"-1\"\ncatalog:\n  source: yaml\n  path: c.yaml\n  refresh_interval: -1m\n", "refresh_interval"},
		{"webhook mode", "bot:\n  token: t\n  mode: webhook\nchannel:\n  id: \"-1\"\n", "not supported"},
		{"broken yaml", "bot: [", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "")
			t.Setenv("DEFAULT_CHANNEL_ID", "")
			_, err := LoadConfig(writeConfig(t, tt.body), false)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestChannelConfig_Target(t *testing.T) {
	id, user, err := ChannelConfig{ID: "-1001"}.Target()
	if err != nil || id != -1001 || user != "" {
		t.Errorf("numeric: got %d %q %v", id, user, err)
	}
	id, user, err = ChannelConfig{ID: "@movies"}.Target()
	if err != nil || id != 0 || user != "@movies" {
		t.Errorf("username: got %d %q %v", id, user, err)
	}
	if _, _, err := (ChannelConfig{ID: "@"}).Target(); err == nil {
		t.Error("expected error for bare @")
	}
}
