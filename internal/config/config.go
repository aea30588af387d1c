// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package config loads the settings of the annotate
// command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that
// override configuration keys (e.g. ANNOTATE_LOGLEVEL).
const EnvPrefix = "ANNOTATE"

// Config is the complete configuration.
type Config struct {
	LogLevel   string           `mapstructure:"logLevel"`
	Annotation AnnotationConfig `mapstructure:"annotation"`
	Palette    PaletteConfig    `mapstructure:"palette"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Demo       DemoConfig       `mapstructure:"demo"`
}

// AnnotationConfig holds annotation material settings.
type AnnotationConfig struct {
	Template string `mapstructure:"template"`
}

// PaletteConfig holds the HSV settings of the color
// palette.
type PaletteConfig struct {
	Saturation float64 `mapstructure:"saturation"`
	Value      float64 `mapstructure:"value"`
}

// EngineConfig mirrors engine.Config.
type EngineConfig struct {
	MaxPrimitive int `mapstructure:"maxPrimitive"`
	MaxLOD       int `mapstructure:"maxLOD"`
}

// DemoConfig describes the demo scene.
type DemoConfig struct {
	Static   int `mapstructure:"static"`
	Skinned  int `mapstructure:"skinned"`
	LODs     int `mapstructure:"lods"`
	Sections int `mapstructure:"sections"`
	LOD      int `mapstructure:"lod"`
}

// SetDefaults sets the default value of every key in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("annotation.template", "AnnotationMaterial")

	v.SetDefault("palette.saturation", 0.85)
	v.SetDefault("palette.value", 1.0)

	v.SetDefault("engine.maxPrimitive", 4096)
	v.SetDefault("engine.maxLOD", 8)

	v.SetDefault("demo.static", 3)
	v.SetDefault("demo.skinned", 1)
	v.SetDefault("demo.lods", 2)
	v.SetDefault("demo.sections", 3)
	v.SetDefault("demo.lod", 0)
}

// Load sets the defaults in v, reads the configuration
// file at path (if not empty) and decodes the result.
// Environment variables prefixed with EnvPrefix take
// precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the demo scene can be built.
func (c *Config) Validate() error {
	switch {
	case c.Demo.Static < 0 || c.Demo.Skinned < 0:
		return errors.New("config: negative primitive count")
	case c.Demo.LODs < 1:
		return errors.New("config: demo.lods must be at least 1")
	case c.Demo.Sections < 1:
		return errors.New("config: demo.sections must be at least 1")
	case c.Demo.LOD < 0:
		return errors.New("config: demo.lod is negative")
	case c.Annotation.Template == "":
		return errors.New("config: annotation.template is empty")
	}
	return nil
}
