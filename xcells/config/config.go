package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	internal "github.com/cspforge/xcells/xcells"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Resolver ResolverConfig `mapstructure:"resolver"`
	Log      LogConfig      `mapstructure:"log"`
}

// ResolverConfig controls how variable-array declarations are resolved.
type ResolverConfig struct {
	// Workers bounds the pool used when resolving independent declarations
	// concurrently. Zero means one worker per CPU core.
	Workers int `mapstructure:"workers"`
	// CatchAllDomain, when non-empty, is an integer domain literal applied as
	// a final OTHERS pass to any declaration that leaves cells unassigned.
	CatchAllDomain string `mapstructure:"catchAllDomain"`
}

// LogConfig stores logging related configurations.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix(strings.ToUpper(internal.DefaultAppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Resolver.Workers <= 0 {
		cfg.Resolver.Workers = runtime.NumCPU()
	}

	AppConfig = cfg
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("resolver.workers", 0)
	viper.SetDefault("resolver.catchAllDomain", "")
	viper.SetDefault("log.level", "info")
}

// ConfigFilePath returns the path viper resolved the config file to, or the
// default global location when none was used.
func ConfigFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(internal.DefaultConfigPath, "config.toml")
}
