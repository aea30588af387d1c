// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Annotate builds a demo scene, attaches an annotation
// component to every mesh and reports the mesh batches
// of a regular pass and of an annotation pass.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gviegas/annotation/engine"
	"gviegas/annotation/internal/config"
	"gviegas/annotation/internal/logging"
)

// flagKeys maps configuration keys to command-line flags.
var flagKeys = map[string]string{
	"logLevel":      "log-level",
	"demo.static":   "static",
	"demo.skinned":  "skinned",
	"demo.lods":     "lods",
	"demo.sections": "sections",
	"demo.lod":      "lod",
}

func newFlagSet(handling pflag.ErrorHandling) *pflag.FlagSet {
	flags := pflag.NewFlagSet("annotate", handling)
	flags.StringP("config", "c", "", "configuration file (JSON or YAML)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.Int("static", 3, "number of static meshes in the demo scene")
	flags.Int("skinned", 1, "number of skinned meshes in the demo scene")
	flags.Int("lods", 2, "levels of detail per mesh")
	flags.Int("sections", 3, "sections per level of detail")
	flags.Int("lod", 0, "level of detail of both views")
	return flags
}

// loadConfig parses args with flags, binds them into a
// new viper instance and loads the configuration.
func loadConfig(flags *pflag.FlagSet, args []string) (config.Config, error) {
	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}
	v := viper.New()
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return config.Config{}, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(v, path)
}

func main() {
	cfg, err := loadConfig(newFlagSet(pflag.ExitOnError), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, os.Stderr)
	log.Debug().Interface("config", cfg).Msg("configuration loaded")

	engine.Configure(&engine.Config{
		MaxPrimitive: cfg.Engine.MaxPrimitive,
		MaxLOD:       cfg.Engine.MaxLOD,
	})

	rep, err := run(&cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}
	rep.write(os.Stdout)
}
