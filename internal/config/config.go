package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// SummarizeMode selects how title generation is triggered after a
// conversation is created.
type SummarizeMode string

const (
	SummarizeDetached SummarizeMode = "detached"
	SummarizeAwait    SummarizeMode = "await"
	SummarizeOff      SummarizeMode = "off"
)

type Config struct {
	AppPort            int           `mapstructure:"APP_PORT"`
	APIURL             string        `mapstructure:"API_URL"`
	AuthURL            string        `mapstructure:"AUTH_URL"`
	DatabasePath       string        `mapstructure:"DATABASE_PATH"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	Environment        string        `mapstructure:"ENVIRONMENT"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	SummarizeMode      SummarizeMode `mapstructure:"SUMMARIZE_MODE"`
	SendEmptyTitle     bool          `mapstructure:"SEND_EMPTY_TITLE"`
	MaxUploadBytes     int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	AcceptedUploadType string        `mapstructure:"ACCEPTED_UPLOAD_TYPE"`
	TTSVoice           string        `mapstructure:"TTS_VOICE"`
	CacheBackend       string        `mapstructure:"CACHE_BACKEND"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	TokenTTL           time.Duration `mapstructure:"TOKEN_TTL"`
	FrontendDir        string        `mapstructure:"FRONTEND_DIR"`
}

// Production reports whether cookies must be marked Secure.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

func setDefaults() {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("API_URL", "http://localhost:8080/v1")
	viper.SetDefault("AUTH_URL", "")
	viper.SetDefault("DATABASE_PATH", "/data/chat.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("SUMMARIZE_MODE", string(SummarizeDetached))
	viper.SetDefault("SEND_EMPTY_TITLE", false)
	viper.SetDefault("MAX_UPLOAD_BYTES", 15*1024*1024)
	viper.SetDefault("ACCEPTED_UPLOAD_TYPE", "application/pdf")
	viper.SetDefault("TTS_VOICE", "alloy")
	viper.SetDefault("CACHE_BACKEND", "sqlite")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("TOKEN_TTL", "8760h")
	viper.SetDefault("FRONTEND_DIR", "./frontend/dist")
}

func LoadConfig() (*Config, error) {
	setDefaults()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./frontend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return current()
}

func current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIURL = strings.TrimSuffix(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return fmt.Errorf("API_URL must not be empty")
	}
	c.AuthURL = strings.TrimSuffix(strings.TrimSpace(c.AuthURL), "/")
	if c.AuthURL == "" {
		c.AuthURL = c.APIURL
	}
	switch c.SummarizeMode {
	case SummarizeDetached, SummarizeAwait, SummarizeOff:
	case "":
		c.SummarizeMode = SummarizeDetached
	default:
		return fmt.Errorf("unknown SUMMARIZE_MODE %q", c.SummarizeMode)
	}
	switch strings.ToLower(c.CacheBackend) {
	case "", "sqlite":
		c.CacheBackend = "sqlite"
	case "redis":
		c.CacheBackend = "redis"
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// Watch re-reads the config file whenever it changes on disk and hands the
// new values to onChange. It is a no-op when no config file was found.
func Watch(onChange func(*Config)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := current()
		if err != nil {
			return
		}
		onChange(cfg)
	})
	viper.WatchConfig()
}
