// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "AnnotationMaterial", cfg.Annotation.Template)
	assert.Equal(t, 0.85, cfg.Palette.Saturation)
	assert.Equal(t, 1.0, cfg.Palette.Value)
	assert.Equal(t, 4096, cfg.Engine.MaxPrimitive)
	assert.Equal(t, 8, cfg.Engine.MaxLOD)
	assert.Equal(t, 3, cfg.Demo.Static)
	assert.Equal(t, 1, cfg.Demo.Skinned)
	assert.Equal(t, 2, cfg.Demo.LODs)
	assert.Equal(t, 3, cfg.Demo.Sections)
	assert.Equal(t, 0, cfg.Demo.LOD)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annotate.json")
	data := `{
		"logLevel": "debug",
		"palette": { "saturation": 0.5 },
		"demo": { "static": 10, "sections": 7, "lod": 1 }
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.5, cfg.Palette.Saturation)
	assert.Equal(t, 1.0, cfg.Palette.Value)
	assert.Equal(t, 10, cfg.Demo.Static)
	assert.Equal(t, 7, cfg.Demo.Sections)
	assert.Equal(t, 1, cfg.Demo.LOD)
	assert.Equal(t, 2, cfg.Demo.LODs)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotate.yaml")
	data := "engine:\n  maxLOD: 4\nannotation:\n  template: Mask\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Engine.MaxLOD)
	assert.Equal(t, "Mask", cfg.Annotation.Template)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ANNOTATE_LOGLEVEL", "warn")
	t.Setenv("ANNOTATE_DEMO_LODS", "5")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Demo.LODs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), "/nonexistent/annotate.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("demo.sections", 0)
	_, err := Load(v, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo.sections")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
	}{
		{"negative static", func(c *Config) { c.Demo.Static = -1 }},
		{"negative skinned", func(c *Config) { c.Demo.Skinned = -1 }},
		{"no lods", func(c *Config) { c.Demo.LODs = 0 }},
		{"no template", func(c *Config) { c.Annotation.Template = "" }},
		{"negative lod", func(c *Config) { c.Demo.LOD = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(viper.New(), "")
			require.NoError(t, err)
			tc.mod(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
