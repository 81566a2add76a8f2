// Package config loads project-wide defaults for the code generator from
// a TOML file, so a project doesn't need to repeat the same CLI flags for
// every schema file it compiles.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/schema-dl/schemadl/codegen"
)

// FileName is the conventional project config file schemadlc looks for
// in the current directory when no --config flag is given.
const FileName = "schemadlc.toml"

// Config is the on-disk shape of schemadlc.toml. Every field mirrors a
// codegen.Options field; zero values fall back to codegen's own
// defaults.
type Config struct {
	Namespace       string `toml:"namespace"`
	OutputBasename  string `toml:"output_basename"`
	StrongEntityID  bool   `toml:"strong_entity_id"`
	EntityIDTypedef string `toml:"entity_id_typedef"`
	IndentationSize int    `toml:"indentation_size"`
}

// Load reads and decodes path. A missing file is not an error: it
// returns a zero Config, letting the caller fall back to
// codegen.DefaultOptions entirely.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decoding %s", path)
	}
	return cfg, nil
}

// Options translates c into codegen.Options, letting opts.normalized
// (invoked implicitly by codegen.Generate) fill in any field c left at
// its zero value.
func (c Config) Options() codegen.Options {
	return codegen.Options{
		NamespaceName:     c.Namespace,
		OutputBasename:    c.OutputBasename,
		UseStrongEntityID: c.StrongEntityID,
		EntityIDTypedef:   c.EntityIDTypedef,
		IndentationSize:   c.IndentationSize,
	}
}
