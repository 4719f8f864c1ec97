// Package config loads the application's configuration from file and
// environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable of the inference core.
type Config struct {
	Assets AssetsConfig `mapstructure:"assets"`
	Log    LogConfig    `mapstructure:"log"`
}

// AssetsConfig locates the serialized model and its companions on disk.
type AssetsConfig struct {
	ModelPath        string `mapstructure:"model_path"`
	MetadataPath     string `mapstructure:"metadata_path"`
	FallbackTemplate string `mapstructure:"fallback_template"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml (if present) and CARDIORETINA_-prefixed environment
// variables on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("assets.model_path", "models/cardio_retina.onnx")
	v.SetDefault("assets.metadata_path", "models/model_meta.json")
	v.SetDefault("assets.fallback_template", "models/fallback_arch.onnx")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("CARDIORETINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
