// Package config loads winswitch settings from config.yaml and WINSWITCH_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const defaultDir = "~/.config/winswitch"

// Log holds logging settings.
type Log struct {
	Dir    string `mapstructure:"dir"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the resolved configuration.
type Config struct {
	DataDir         string `mapstructure:"data_dir"`
	OwnClass        string `mapstructure:"own_class"`
	HistoryCapacity int    `mapstructure:"history_capacity"`
	CacheTTLMs      int    `mapstructure:"cache_ttl_ms"`
	Debug           bool   `mapstructure:"debug"`
	Log             Log    `mapstructure:"log"`
}

// HarpoonPath is the location of the harpoon slot file.
func (c *Config) HarpoonPath() string {
	return filepath.Join(c.DataDir, "harpoon.json")
}

// NamesPath is the location of the named windows file.
func (c *Config) NamesPath() string {
	return filepath.Join(c.DataDir, "names.json")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", defaultDir)
	v.SetDefault("own_class", "winswitch")
	v.SetDefault("history_capacity", 256)
	v.SetDefault("cache_ttl_ms", 500)
	v.SetDefault("debug", false)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("WINSWITCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. When path is empty, config.yaml is looked up
// in $WINSWITCH_CONFIG_PATH, ~/.config/winswitch and the working directory.
// A missing config file is not an error; built-in defaults apply.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if override := os.Getenv("WINSWITCH_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		if dir, err := homedir.Expand(defaultDir); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	var err error
	if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("expand data_dir: %w", err)
	}
	if cfg.Log.Dir != "" {
		if cfg.Log.Dir, err = homedir.Expand(cfg.Log.Dir); err != nil {
			return nil, fmt.Errorf("expand log.dir: %w", err)
		}
	}
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = 256
	}
	return &cfg, nil
}
