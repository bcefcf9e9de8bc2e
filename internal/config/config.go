package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress   string `mapstructure:"SERVER_ADDRESS"`
	DBSource        string `mapstructure:"DB_SOURCE"`
	ImageBucket     string `mapstructure:"IMAGE_BUCKET"`
	ImagePathPrefix string `mapstructure:"IMAGE_PATH_PREFIX"`
	AlbumTitle      string `mapstructure:"ALBUM_TITLE"`
	Workers         int    `mapstructure:"WORKERS"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":    ":8080",
	"DB_SOURCE":         "",
	"IMAGE_BUCKET":      "file://./imgs",
	"IMAGE_PATH_PREFIX": "img/",
	"ALBUM_TITLE":       "",
	"WORKERS":           4,
	"LOG_LEVEL":         "info",
}

// LoadConfig reads app.env from path, overridden by environment variables.
// A missing app.env is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if config.Workers < 1 {
		config.Workers = 1
	}

	return config, nil
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
