package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(cfg.Builtins, ",") != "int,string,unit,local" {
		t.Errorf("builtins = %v, want [int string unit local]", cfg.Builtins)
	}
	if cfg.RecursionBudget != DefaultRecursionBudget {
		t.Errorf("recursion_budget = %d, want %d", cfg.RecursionBudget, DefaultRecursionBudget)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("color = %q, want auto", cfg.Color)
	}
}

func TestParseConfig_Valid(t *testing.T) {
	yaml := `
builtins: [int, string, unit, local, list]
recursion_budget: 500
syntax: "~1.2"
color: never
`
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Builtins) != 5 || cfg.Builtins[4] != "list" {
		t.Errorf("builtins = %v", cfg.Builtins)
	}
	if cfg.RecursionBudget != 500 {
		t.Errorf("recursion_budget = %d, want 500", cfg.RecursionBudget)
	}
	if err := cfg.CheckSyntaxVersion("1.2.7"); err != nil {
		t.Errorf("1.2.7 should satisfy ~1.2: %v", err)
	}
	if err := cfg.CheckSyntaxVersion("1.3.0"); err == nil {
		t.Errorf("1.3.0 should not satisfy ~1.2")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative budget", "recursion_budget: -1", "recursion_budget"},
		{"duplicate builtin", "builtins: [int, int]", "duplicate type"},
		{"empty builtin", `builtins: [int, ""]`, "empty type name"},
		{"bad color", "color: sometimes", "color must be one of"},
		{"bad constraint", `syntax: "not a version"`, "invalid version constraint"},
		{"bad yaml", "builtins: [", "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "test.yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSyntaxVersion(t *testing.T) {
	cfg := Default()
	if err := cfg.CheckSyntaxVersion("1.0.0"); err != nil {
		t.Errorf("1.0.0 should be supported: %v", err)
	}
	if err := cfg.CheckSyntaxVersion("2.0.0"); err == nil {
		t.Errorf("2.0.0 should not be supported")
	}
	if err := cfg.CheckSyntaxVersion("banana"); err == nil {
		t.Errorf("expected invalid version error")
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, ProjectFileName)
	if err := os.WriteFile(want, []byte("color: always\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("FindConfig = %q, want %q", got, want)
	}

	cfg, err := LoadConfig(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != ColorAlways {
		t.Errorf("color = %q, want always", cfg.Color)
	}
}
