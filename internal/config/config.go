package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
	Secret   string `mapstructure:"secret"`

	StatusDir          string `mapstructure:"status_dir"`
	StatusTitle        string `mapstructure:"status_title"`
	RepublishOnFailure bool   `mapstructure:"republish_on_failure"`

	ReadLimit      int64         `mapstructure:"read_limit"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`

	EnterRateLimit    int           `mapstructure:"enter_rate_limit"`
	EnterRateInterval time.Duration `mapstructure:"enter_rate_interval"`
	SlowConsumer      string        `mapstructure:"slow_consumer"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 4987)
	v.SetDefault("log_level", "info")
	v.SetDefault("secret", "change-me")
	v.SetDefault("status_dir", "./status")
	v.SetDefault("status_title", "Relay Server Status")
	v.SetDefault("republish_on_failure", true)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("enter_rate_limit", 5)
	v.SetDefault("enter_rate_interval", "10s")
	v.SetDefault("slow_consumer", "drop")
	v.SetDefault("shutdown_timeout", "5s")
}

// Load reads config/config.<CONFIG_ENV>.yaml (or --config), then applies
// RELAY_* environment variables and command-line flags on top.
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	flags := pflag.NewFlagSet("relay", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a yaml config file")
	flags.Int("port", 4987, "listen port")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("status-dir", "./status", "directory the status page is written to")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	for key, name := range map[string]string{
		"port":       "port",
		"log_level":  "log-level",
		"status_dir": "status-dir",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileName := *configFile
	if fileName == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		fileName = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(fileName)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("status_dir", cfg.StatusDir).
		Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be positive, got %d", c.SendBuffer)
	}
	if c.EnterRateLimit <= 0 || c.EnterRateInterval <= 0 {
		return fmt.Errorf("enter rate limit must be positive")
	}
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("ping_period (%s) must be shorter than pong_wait (%s)", c.PingPeriod, c.PongWait)
	}
	return nil
}
