// Package harnessconfig loads the TOML configuration for the cmd/nescore
// test harness: region selection, log module gating, and trace output.
// This is ambient tooling around the core, not part of it -- spec.md's
// scope stops at the core itself (§13.4).
package harnessconfig

import (
	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
)

type Config struct {
	Region string `toml:"region"` // "ntsc" or "pal"

	Log struct {
		Modules []string `toml:"modules"`
		Trace   string   `toml:"trace_path"`
	} `toml:"log"`
}

func Default() Config {
	return Config{Region: "ntsc"}
}

func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode harness config %q", path)
	}
	return cfg, nil
}
