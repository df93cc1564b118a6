package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Polymarket PolymarketConfig `mapstructure:"polymarket"`
	Builder    BuilderConfig    `mapstructure:"builder"`
	Stream     StreamConfig     `mapstructure:"stream"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type PolymarketConfig struct {
	BaseURL string `mapstructure:"base_url"`

	// L2 API credentials; derived on startup when empty and a key is set.
	ApiKey        string `mapstructure:"api_key"`
	ApiSecret     string `mapstructure:"api_secret"`
	ApiPassphrase string `mapstructure:"api_passphrase"`

	// L1 private key used for order signing and credential derivation.
	PrivateKey string `mapstructure:"private_key"`

	// Funder overrides the maker address for proxy and safe setups.
	Funder        string `mapstructure:"funder"`
	SignatureType int    `mapstructure:"signature_type"`
}

type AuthConfig struct {
	RequireAPIKey bool   `mapstructure:"require_api_key"`
	APIKey        string `mapstructure:"api_key"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type ChainConfig struct {
	ID int64 `mapstructure:"id"`
}

type BuilderConfig struct {
	ApiKey        string `mapstructure:"api_key"`
	ApiSecret     string `mapstructure:"api_secret"`
	ApiPassphrase string `mapstructure:"api_passphrase"`
}

type StreamConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	WSURL   string `mapstructure:"ws_url"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	// Environment variables support
	// e.g. CLOBGATE_POLYMARKET_PRIVATE_KEY
	viper.SetEnvPrefix("clobgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("auth.require_api_key", false)
	viper.SetDefault("chain.id", 137)
	viper.SetDefault("redis.ttl_seconds", 3600)
	viper.SetDefault("stream.enabled", false)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults and env vars")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
