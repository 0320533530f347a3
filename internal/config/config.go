// Package config loads the accent tool's settings from defaults, an optional
// accent.yaml and ACCENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the tool
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Cache      CacheConfig      `mapstructure:"cache"`
	G2P        G2PConfig        `mapstructure:"g2p"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig holds the readings cache settings. An empty path disables it.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// G2PConfig holds reading lookup settings.
type G2PConfig struct {
	Workers int `mapstructure:"workers"`
}

// DictionaryConfig holds defaults for new dictionary words.
type DictionaryConfig struct {
	DefaultPriority int `mapstructure:"default_priority"`
}

// EnvPrefix prefixes environment overrides, e.g. ACCENT_LOG_LEVEL.
const EnvPrefix = "ACCENT"

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. With an empty
// file, accent.yaml is looked up in the working directory and in
// $HOME/.config/accent; a missing file is not an error then.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("accent")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "accent"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.G2P.Workers < 1 {
		cfg.G2P.Workers = 1
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cache.path", "")

	v.SetDefault("g2p.workers", 4)

	v.SetDefault("dictionary.default_priority", 5)
}
