// Package config loads settings for the brick command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	brick "github.com/grindlemire/go-brick"
)

// EnvPrefix prefixes every environment override, e.g. BRICK_VIEWPORT_WIDTH.
const EnvPrefix = "BRICK"

// Config holds command configuration.
type Config struct {
	Log        LogConfig
	Viewport   ViewportConfig
	Collection CollectionConfig
	Watch      WatchConfig
}

// LogConfig controls debug logging. An empty File leaves logging to the
// BRICK_DEBUG environment variable.
type LogConfig struct {
	File  string
	Level string
}

// ViewportConfig is the simulated scroll view.
type ViewportConfig struct {
	Width       int
	Height      int
	InsetTop    int `mapstructure:"inset_top"`
	InsetBottom int `mapstructure:"inset_bottom"`
}

// CollectionConfig selects the collection queries run against.
type CollectionConfig struct {
	Index      int
	Identifier string
}

// WatchConfig holds settings for the interactive viewer.
type WatchConfig struct {
	// Step is the number of rows one arrow key scrolls.
	Step int
}

// Collection returns the configured collection.
func (c Config) Collection() brick.CollectionInfo {
	return brick.CollectionInfo{Index: c.Collection.Index, Identifier: c.Collection.Identifier}
}

// ContentInset returns the configured viewport inset.
func (c Config) ContentInset() brick.Edges {
	return brick.Edges{Top: c.Viewport.InsetTop, Bottom: c.Viewport.InsetBottom}
}

// Load reads configuration from defaults, an optional file, and the
// environment, in increasing priority. An explicit path must exist; without
// one BRICK_CONFIG is consulted, then the user config directory.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "debug")
	v.SetDefault("viewport.width", 40)
	v.SetDefault("viewport.height", 20)
	v.SetDefault("viewport.inset_top", 0)
	v.SetDefault("viewport.inset_bottom", 0)
	v.SetDefault("collection.index", 0)
	v.SetDefault("collection.identifier", "")
	v.SetDefault("watch.step", 1)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "brick"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch {
	case c.Viewport.Width <= 0:
		return fmt.Errorf("viewport.width must be positive, got %d", c.Viewport.Width)
	case c.Viewport.Height <= 0:
		return fmt.Errorf("viewport.height must be positive, got %d", c.Viewport.Height)
	case c.Viewport.InsetTop < 0 || c.Viewport.InsetBottom < 0:
		return fmt.Errorf("viewport insets must not be negative")
	case c.Watch.Step <= 0:
		return fmt.Errorf("watch.step must be positive, got %d", c.Watch.Step)
	}
	return nil
}
