package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Binance BinanceConfig `mapstructure:"binance"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Log     LogConfig     `mapstructure:"log"`
}

type BinanceConfig struct {
	WS WSConfig `mapstructure:"ws"`
}

type WSConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WatchConfig is the static watch set fixed at startup. Every pair in
// symbols x intervals gets its own stream session.
type WatchConfig struct {
	Symbols         []string      `mapstructure:"symbols"`
	Intervals       []string      `mapstructure:"intervals"`
	ChannelCapacity int           `mapstructure:"channel_capacity"`
	StatusPeriod    time.Duration `mapstructure:"status_period"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml when present and overrides with environment
// variables; every key has a default so the binary runs without a file.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("binance.ws.url", "wss://stream.binance.com:9443")
	v.SetDefault("binance.ws.timeout", 10*time.Second)
	v.SetDefault("watch.symbols", []string{"btcusdt", "ethusdt", "bnbusdt", "adausdt", "dogeusdt"})
	v.SetDefault("watch.intervals", []string{"1m", "5m", "15m"})
	v.SetDefault("watch.channel_capacity", 100)
	v.SetDefault("watch.status_period", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.environment", "dev")

	// Support environment variables with dot notation (e.g., BINANCE_WS_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read config: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
