// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to a .yaml or .toml config file")
	flagSeed    = flag.Int64("seed", 0, "Noise and river seed (0 is random)")
	flagRivers  = flag.Int("rivers", 0, "Number of rivers to carve")
	flagBackend = flag.String("backend", "", "Noise backend (perlin or simplex)")
	flagOut     = flag.String("out", "", "Snapshot output path")
	flagImage   = flag.String("image", "", "Image output path (.png or .bmp)")
	flagMode    = flag.String("mode", "", "Image mode (biome, height, heat or moisture)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagPublish = flag.Bool("publish", false, "Publish the level to the cloud")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies flags that were set on the command line.
func applyFlags(cfg *Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if set["seed"] {
		cfg.Noise.Seed = *flagSeed
	}
	if set["rivers"] {
		cfg.River.Count = *flagRivers
	}
	if *flagBackend != "" {
		cfg.Noise.Backend = *flagBackend
	}
	if *flagOut != "" {
		cfg.Output.Snapshot = *flagOut
	}
	if *flagImage != "" {
		cfg.Output.Image = *flagImage
	}
	if *flagMode != "" {
		cfg.Output.Mode = *flagMode
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPublish {
		cfg.Cloud.Enabled = true
	}
}
