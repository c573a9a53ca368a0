// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token           string `yaml:"token"`
	Mode            string `yaml:"mode"` // polling only
	Username        string `yaml:"username"`
	Workers         int    `yaml:"workers"`           // update workers
	PollTimeout     int    `yaml:"poll_timeout"`      // long-poll timeout, seconds
	InlineCacheTime int    `yaml:"inline_cache_time"` // seconds clients may cache inline answers
}

type ChannelConfig struct {
	ID   string `yaml:"id"`   // numeric chat id (-100...) or @username
	Link string `yaml:"link"` // public link shown under channel cards
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig selects the Redis user-state backend when URL is set.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CatalogConfig struct {
	Source          string        `yaml:"source"` // static | yaml | mongo
	Path            string        `yaml:"path"`   // yaml source file
	MongoURI        string        `yaml:"mongo_uri"`
	MongoDatabase   string        `yaml:"mongo_database"`
	MongoCollection string        `yaml:"mongo_collection"`
	RefreshInterval time.Duration `yaml:"refresh_interval"` // re-read yaml/mongo sources; 0 disables
}

type LimitsConfig struct {
	CommandsPerMinute  int `yaml:"commands_per_minute"`
	CallbacksPerMinute int `yaml:"callbacks_per_minute"`
	InlinePerMinute    int `yaml:"inline_per_minute"`
}

type I18nConfig struct {
	Lang string `yaml:"lang"`
}

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Channel ChannelConfig `yaml:"channel"`
	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Catalog CatalogConfig `yaml:"catalog"`
	Limits  LimitsConfig  `yaml:"limits"`
	I18n    I18nConfig    `yaml:"i18n"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads .env (if any), the YAML file at path (if it exists) and
// then applies environment overrides. BOT_TOKEN and DEFAULT_CHANNEL_ID are
// the variables deployments usually set.
func LoadConfig(path string, dev bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// environment only
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	cfg.Runtime.Dev = dev

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Bot.Token, "BOT_TOKEN")
	setString(&cfg.Channel.ID, "DEFAULT_CHANNEL_ID")
	setString(&cfg.Channel.Link, "CHANNEL_LINK")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Catalog.Source, "CATALOG_SOURCE")
	setString(&cfg.Catalog.Path, "CATALOG_PATH")
	setString(&cfg.Catalog.MongoURI, "MONGO_URI")
	setString(&cfg.I18n.Lang, "BOT_LANG")
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = p
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 4
	}
	if cfg.Bot.PollTimeout <= 0 {
		cfg.Bot.PollTimeout = 60
	}
	if cfg.Bot.InlineCacheTime <= 0 {
		cfg.Bot.InlineCacheTime = 10
	}
	if cfg.Channel.Link == "" {
		cfg.Channel.Link = "https://t.me/moviechannel"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8000
	}
	cfg.HTTP.ReadTimeout = normalizeTimeout(cfg.HTTP.ReadTimeout, 10*time.Second)
	cfg.HTTP.WriteTimeout = normalizeTimeout(cfg.HTTP.WriteTimeout, 10*time.Second)
	cfg.HTTP.ShutdownTimeout = normalizeTimeout(cfg.HTTP.ShutdownTimeout, 5*time.Second)
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = "static"
	}
	cfg.Catalog.Source = strings.ToLower(cfg.Catalog.Source)
	if cfg.Catalog.MongoDatabase == "" {
		cfg.Catalog.MongoDatabase = "moviebot"
	}
	if cfg.Catalog.MongoCollection == "" {
		cfg.Catalog.MongoCollection = "movies"
	}
	if cfg.Limits.CommandsPerMinute <= 0 {
		cfg.Limits.CommandsPerMinute = 20
	}
	if cfg.Limits.CallbacksPerMinute <= 0 {
		cfg.Limits.CallbacksPerMinute = 30
	}
	if cfg.Limits.InlinePerMinute <= 0 {
		cfg.Limits.InlinePerMinute = 60
	}
	if cfg.I18n.Lang == "" {
		cfg.I18n.Lang = "en"
	}
}

// Validate checks the settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("bot.token is required (or set BOT_TOKEN)")
	}
	if c.Channel.ID == "" {
		return errors.New("channel.id is required (or set DEFAULT_CHANNEL_ID)")
	}
	if _, _, err := c.Channel.Target(); err != nil {
		return err
	}
	switch c.Catalog.Source {
	case "static":
	case "yaml":
		if c.Catalog.Path == "" {
			return errors.New("catalog.path is required for yaml source")
		}
	case "mongo":
		if c.Catalog.MongoURI == "" {
			return errors.New("catalog.mongo_uri is required for mongo source")
		}
	default:
		return fmt.Errorf("unknown catalog.source %q", c.Catalog.Source)
	}
	if c.Catalog.RefreshInterval < 0 {
		return errors.New("catalog.refresh_interval must not be negative")
	}
	if strings.ToLower(c.Bot.Mode) != "polling" {
		return fmt.Errorf("bot.mode %q not supported; use polling", c.Bot.Mode)
	}
	return nil
}

// Target splits the channel identifier into a numeric chat ID or an
// @username. Exactly one of the results is set.
func (c ChannelConfig) Target() (chatID int64, username string, err error) {
	id := strings.TrimSpace(c.ID)
	if strings.HasPrefix(id, "@") {
		if len(id) < 2 {
			return 0, "", fmt.Errorf("invalid channel.id %q", c.ID)
		}
		return 0, id, nil
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid channel.id %q: want numeric id or @username", c.ID)
	}
	return n, "", nil
}

func normalizeTimeout(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
