// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Relay selects which process the configuration is resolved for.
type Relay string

const (
	RelayTelegram Relay = "telegram"
	RelayWhatsApp Relay = "whatsapp"
)

const (
	DefaultTelegramPort  = 3003
	DefaultWhatsAppPort  = 3002
	DefaultGenerationURL = "http://localhost:5001/get_response"
	DefaultGatewayURL    = "https://api-waconnect.bps.web.id/kirim-text"
)

type RuntimeConfig struct {
	Dev   bool
	Relay Relay
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Timeout int    `yaml:"timeout"` // long-poll timeout in seconds
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type GenerationConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // 0 = no timeout
}

type GatewayConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

// RedisConfig enables the per-sender rate limiter when URL is set.
type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Limit    int           `yaml:"limit"`  // messages per window per sender
	Window   time.Duration `yaml:"window"` // fixed window length
}

type Config struct {
	Bot        BotConfig        `yaml:"bot"`
	HTTP       HTTPConfig       `yaml:"http"`
	Generation GenerationConfig `yaml:"generation"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Log        LogConfig        `yaml:"log"`
	Redis      RedisConfig      `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

// Load resolves the configuration for one relay: optional YAML file, then
// environment overrides, then defaults. The result is validated so a missing
// token aborts startup instead of failing at the first request.
func Load(path string, relay Relay, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Runtime = RuntimeConfig{Dev: dev, Relay: relay}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		p, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.HTTP.Port = p
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("TELEGRAM_BOT_TOKEN", &c.Bot.Token)
	str("WACONNECT_TOKEN", &c.Gateway.Token)
	str("WACONNECT_URL", &c.Gateway.URL)
	str("GENERATION_URL", &c.Generation.URL)
	str("REDIS_URL", &c.Redis.URL)
	str("LOG_LEVEL", &c.Log.Level)
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		if c.Runtime.Relay == RelayTelegram {
			c.HTTP.Port = DefaultTelegramPort
		} else {
			c.HTTP.Port = DefaultWhatsAppPort
		}
	}
	if c.Bot.Timeout <= 0 {
		c.Bot.Timeout = 60
	}
	if c.Generation.URL == "" {
		c.Generation.URL = DefaultGenerationURL
	}
	if c.Gateway.URL == "" {
		c.Gateway.URL = DefaultGatewayURL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Redis.Limit <= 0 {
		c.Redis.Limit = 20
	}
	if c.Redis.Window <= 0 {
		c.Redis.Window = time.Minute
	}
}

// Validate checks the values required by the selected relay.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if err := checkURL("generation.url", c.Generation.URL); err != nil {
		return err
	}
	switch c.Runtime.Relay {
	case RelayTelegram:
		if c.Bot.Token == "" {
			return errors.New("bot.token is required")
		}
	case RelayWhatsApp:
		if c.Gateway.Token == "" {
			return errors.New("gateway.token is required")
		}
		if err := checkURL("gateway.url", c.Gateway.URL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown relay %q", c.Runtime.Relay)
	}
	return nil
}

func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute url: %q", name, raw)
	}
	return nil
}
