// Package config holds the small run-time configuration surface for the
// goslox CLI: an Options struct mirroring the CLI flags (modeled on the
// teacher's package-level cobra flag variables in cmd/dwscript/cmd; the run
// path in cmd/goslox/cmd carries its flags in its own runOptions) plus an
// optional sidecar YAML file for settings that don't fit comfortably as
// one-shot flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options are the flags a single `run` invocation carries.
type Options struct {
	DumpAST bool
	Trace   bool
}

// FileConfig is the optional .goslox.yaml sidecar file: a native-function
// allow-list and a maximum call-stack depth, the kind of setting DWScript's
// own CLI would normally thread through flags but which benefits from
// living beside the script instead (SPEC_FULL.md §6).
type FileConfig struct {
	AllowedNatives []string `yaml:"allowed_natives"`
	MaxCallDepth   int      `yaml:"max_call_depth"`
}

// LoadFileConfig reads a FileConfig from path. A missing file yields the
// zero value (all natives allowed, no depth limit) rather than an error,
// since the sidecar file is optional.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}
