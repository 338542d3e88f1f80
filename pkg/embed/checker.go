// Package tinyml lowers and type checks tinyml programs from Go code.
package tinyml

import (
	"fmt"
	"os"

	"github.com/aripiprazole/tinyml/internal/analyzer"
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/lowering"
	"github.com/aripiprazole/tinyml/internal/pipeline"
	"github.com/aripiprazole/tinyml/internal/prettyprinter"
	"github.com/google/uuid"
)

// Checker runs the lowering and inference pipeline under one configuration.
// A Checker holds no per-program state and may be shared.
type Checker struct {
	config *config.Project
}

// New creates a checker with the default configuration.
func New() *Checker {
	return &Checker{config: config.Default()}
}

// NewWithConfig creates a checker from tinyml.yaml content.
func NewWithConfig(data []byte) (*Checker, error) {
	cfg, err := config.ParseConfig(data, config.ProjectFileName)
	if err != nil {
		return nil, err
	}
	return &Checker{config: cfg}, nil
}

// Result is the outcome of checking one program.
type Result struct {
	Unit        uuid.UUID
	Program     *hir.Program // nil when the document could not be decoded
	Diagnostics []*diagnostics.DiagnosticError
}

// Check lowers and type checks source. name is used in diagnostics.
func (c *Checker) Check(name string, source []byte) *Result {
	p := pipeline.New(
		&pipeline.DecodeProcessor{},
		&lowering.LoweringProcessor{},
		&analyzer.InferenceProcessor{},
	)
	ctx := p.Run(pipeline.NewPipelineContext(name, source, c.config))
	return &Result{Unit: ctx.Unit, Program: ctx.Program, Diagnostics: ctx.Errors()}
}

// CheckFile reads and checks the file at path.
func (c *Checker) CheckFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.Check(path, source), nil
}

// OK reports whether the program checked without diagnostics.
func (r *Result) OK() bool {
	return r.Program != nil && len(r.Diagnostics) == 0
}

// Scheme returns the inferred type of a top-level value, as it would be
// written in source.
func (r *Result) Scheme(name string) (string, bool) {
	if r.Program == nil {
		return "", false
	}
	for _, value := range r.Program.Values {
		if value.Definition.Name.Text == name && value.Scheme.Mono != nil {
			return value.Scheme.String(), true
		}
	}
	return "", false
}

// String renders the checked program with its types.
func (r *Result) String() string {
	if r.Program == nil {
		return ""
	}
	return prettyprinter.PrintProgram(r.Program)
}
