package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig tunes the HTTP listener. Values come from an optional
// server.yml file with environment overrides under the SITETRACK prefix.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func NewServerConfig() (ServerConfig, error) {
	defaults := DefaultServerConfig()

	v := viper.New()
	v.SetConfigName("server")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/sitetrack/config")
	v.AddConfigPath("/etc/sitetrack")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SITETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", defaults.Addr)
	v.SetDefault("server.readTimeout", defaults.ReadTimeout)
	v.SetDefault("server.writeTimeout", defaults.WriteTimeout)
	v.SetDefault("server.idleTimeout", defaults.IdleTimeout)
	v.SetDefault("server.shutdownTimeout", defaults.ShutdownTimeout)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return ServerConfig{}, err
		}
	}

	cfg := ServerConfig{
		Addr:            strings.TrimSpace(v.GetString("server.addr")),
		ReadTimeout:     v.GetDuration("server.readTimeout"),
		WriteTimeout:    v.GetDuration("server.writeTimeout"),
		IdleTimeout:     v.GetDuration("server.idleTimeout"),
		ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	return cfg, nil
}
