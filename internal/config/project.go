package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Project represents the tinyml.yaml configuration.
type Project struct {
	// Builtins are the type names seeded into every lowering context.
	// Defaults to BuiltinTypes.
	Builtins []string `yaml:"builtins,omitempty"`

	// RecursionBudget bounds how deeply lowering may nest.
	// Defaults to DefaultRecursionBudget.
	RecursionBudget int `yaml:"recursion_budget,omitempty"`

	// Syntax is a semver constraint on the interchange version field of
	// source documents (e.g. ">= 1.0, < 1.3"). Defaults to SupportedSyntax.
	Syntax string `yaml:"syntax,omitempty"`

	// Color is one of auto, always or never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	constraint *semver.Constraints
}

// Default returns the configuration used when no tinyml.yaml exists.
func Default() *Project {
	p := &Project{}
	p.setDefaults()
	return p
}

// LoadConfig reads and parses a tinyml.yaml file.
func LoadConfig(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses tinyml.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	p.setDefaults()
	if err := p.validate(path); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindConfig searches for tinyml.yaml starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (p *Project) setDefaults() {
	if len(p.Builtins) == 0 {
		p.Builtins = append([]string(nil), BuiltinTypes...)
	}
	if p.RecursionBudget == 0 {
		p.RecursionBudget = DefaultRecursionBudget
	}
	if p.Syntax == "" {
		p.Syntax = SupportedSyntax
	}
	if p.Color == "" {
		p.Color = ColorAuto
	}
	if p.constraint == nil {
		// The default constant is known to parse
		p.constraint, _ = semver.NewConstraint(p.Syntax)
	}
}

// validate checks the configuration for semantic errors.
func (p *Project) validate(path string) error {
	if p.RecursionBudget < 0 {
		return fmt.Errorf("%s: recursion_budget must be positive, got %d", path, p.RecursionBudget)
	}

	seen := make(map[string]bool, len(p.Builtins))
	for i, name := range p.Builtins {
		if name == "" {
			return fmt.Errorf("%s: builtins[%d]: empty type name", path, i)
		}
		if seen[name] {
			return fmt.Errorf("%s: builtins[%d]: duplicate type %q", path, i, name)
		}
		seen[name] = true
	}

	switch p.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never; got %q", path, p.Color)
	}

	constraint, err := semver.NewConstraint(p.Syntax)
	if err != nil {
		return fmt.Errorf("%s: syntax: invalid version constraint %q: %w", path, p.Syntax, err)
	}
	p.constraint = constraint
	return nil
}

// CheckSyntaxVersion reports whether a document written in interchange
// version v can be read under this configuration.
func (p *Project) CheckSyntaxVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid syntax version %q: %w", v, err)
	}
	if p.constraint == nil {
		p.setDefaults()
	}
	if !p.constraint.Check(version) {
		return fmt.Errorf("syntax version %s does not satisfy %s", version, p.Syntax)
	}
	return nil
}
