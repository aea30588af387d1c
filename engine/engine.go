// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine models the host runtime that drawable
// components plug into.
//
// It owns materials, meshes and the scene, and it
// decides when draw proxies are built and destroyed.
// It does not rasterize: a frame is the set of mesh
// batches that Scene.Gather assembles for a View.
package engine

const (
	// The maximum number of levels of detail in a mesh.
	MaxLOD = 8

	dflMaxPrimitive = 4096
)

// Config is used to configure the engine.
type Config struct {
	// The maximum number of primitives in a scene.
	//
	// Default is 4096.
	MaxPrimitive int

	// The maximum number of levels of detail in a mesh.
	//
	// Default is MaxLOD.
	MaxLOD int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxPrimitive: dflMaxPrimitive,
		MaxLOD:       MaxLOD,
	}
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
// Values less than 1 are replaced by defaults.
func Configure(config *Config) {
	dfl := DefaultConfig()
	cfg = *config
	if cfg.MaxPrimitive < 1 {
		cfg.MaxPrimitive = dfl.MaxPrimitive
	}
	if cfg.MaxLOD < 1 || cfg.MaxLOD > MaxLOD {
		cfg.MaxLOD = dfl.MaxLOD
	}
}

// Configured returns the current configuration.
func Configured() Config { return cfg }

func init() {
	config := DefaultConfig()
	Configure(&config)
}
