package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "HTTPCLIENT"

// Config holds the CLI settings, taken from HTTPCLIENT_* environment
// variables and an optional .env file in the working directory.
type Config struct {
	LogLevel         string `mapstructure:"log_level"`
	MaxResponseBytes int64  `mapstructure:"max_response_bytes"`
	Socket           string `mapstructure:"socket"`
	DNSServer        string `mapstructure:"dns_server"`
	IPNetwork        string `mapstructure:"ip_network"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	v.SetDefault("log_level", "warn")
	v.SetDefault("max_response_bytes", 0) // unbounded
	v.SetDefault("socket", "net")
	v.SetDefault("dns_server", "")
	v.SetDefault("ip_network", "ip")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxResponseBytes < 0 {
		return errors.New("invalid max_response_bytes (must be zero or positive)")
	}
	switch c.Socket {
	case "net", "raw":
	default:
		return errors.Errorf("invalid socket %q (must be net or raw)", c.Socket)
	}
	switch c.IPNetwork {
	case "ip", "ip4", "ip6":
	default:
		return errors.Errorf("invalid ip_network %q (must be ip, ip4 or ip6)", c.IPNetwork)
	}
	return nil
}
