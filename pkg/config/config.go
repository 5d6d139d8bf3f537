// Package config loads and validates the scanner configuration.
//
// Configuration is layered: embedded defaults, then the config file
// (TOML or YAML, chosen by extension), then HEADERGUARD_* environment
// variables. Loading is all-or-nothing: any malformed glob, missing
// template, or bad language block aborts before a single file is touched.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/language"
	"github.com/headerguard/headerguard/pkg/rules"
)

// DefaultFileNames are probed, in order, in the scan root when no
// explicit --config path is given.
var DefaultFileNames = []string{
	".headerguard.toml",
	"headerguard.toml",
	".headerguard.yaml",
	"headerguard.yaml",
}

// LanguageConfig is a user-supplied comment style block, merged over the
// built-in language table.
type LanguageConfig struct {
	Extensions []string `koanf:"extensions"`
	Basenames  []string `koanf:"basenames"`
	LinePrefix string   `koanf:"linePrefix"`
	BlockStart string   `koanf:"blockStart"`
	BlockEnd   string   `koanf:"blockEnd"`
}

// Config is the fully resolved scanner configuration.
type Config struct {
	HeaderPath string                    `koanf:"headerPath"`
	Excludes   []string                  `koanf:"excludes"`
	Properties map[string]string         `koanf:"properties"`
	Jobs       int                       `koanf:"jobs"`
	Languages  map[string]LanguageConfig `koanf:"languages"`

	// Resolved during Load
	Template     string             // header template text read from TemplatePath
	TemplatePath string             // absolute path of the header template
	Ruleset      *rules.Ruleset     // compiled excludes
	Registry     *language.Registry // built-in table plus Languages blocks
}

// WorkerCount resolves the Jobs setting, defaulting to one worker per CPU.
func (c *Config) WorkerCount() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// validate resolves the template, compiles the rules, and builds the
// language registry. All failures here map to exit code 2.
func (c *Config) validate(baseDir string) error {
	if c.HeaderPath == "" {
		return errors.New(errors.ErrConfigValid, "headerPath is required")
	}

	templatePath := c.HeaderPath
	if !filepath.IsAbs(templatePath) {
		templatePath = filepath.Join(baseDir, templatePath)
	}
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateMissing,
			"cannot read header template %s", templatePath)
	}
	c.Template = string(raw)
	if abs, err := filepath.Abs(templatePath); err == nil {
		c.TemplatePath = abs
	} else {
		c.TemplatePath = templatePath
	}

	ruleset, err := rules.ParseExcludes(c.Excludes)
	if err != nil {
		return err
	}
	c.Ruleset = ruleset

	registry := language.NewRegistry()
	for name, lc := range c.Languages {
		style := language.Style{
			BlockStart: lc.BlockStart,
			LinePrefix: lc.LinePrefix,
			BlockEnd:   lc.BlockEnd,
		}
		if style.IsZero() {
			return errors.Newf(errors.ErrConfigValid,
				"language %q must specify a linePrefix or block delimiters", name)
		}
		if (lc.BlockStart == "") != (lc.BlockEnd == "") {
			return errors.Newf(errors.ErrConfigValid,
				"language %q must specify both blockStart and blockEnd", name)
		}
		if len(lc.Extensions) == 0 && len(lc.Basenames) == 0 {
			return errors.Newf(errors.ErrConfigValid,
				"language %q must list extensions or basenames", name)
		}
		registry.Add(lc.Extensions, lc.Basenames, style)
	}
	c.Registry = registry

	return nil
}
