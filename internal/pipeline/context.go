package pipeline

import (
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/symbols"
	"github.com/google/uuid"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one compilation unit through the stages. A stage
// whose input is missing leaves the context as it is.
type PipelineContext struct {
	FilePath string
	Source   []byte
	Config   *config.Project

	Unit uuid.UUID
	Sink *diagnostics.Sink

	Document    *concrete.Program    // Set by DecodeProcessor
	Program     *hir.Program         // Set by lowering
	SymbolTable *symbols.SymbolTable // Scope the program was lowered in
}

// NewPipelineContext creates a context for source read from path. A nil
// config means the defaults.
func NewPipelineContext(path string, source []byte, cfg *config.Project) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	unit := uuid.New()
	return &PipelineContext{
		FilePath: path,
		Source:   source,
		Config:   cfg,
		Unit:     unit,
		Sink:     diagnostics.NewSink(unit),
	}
}

// Errors returns every diagnostic reported so far.
func (ctx *PipelineContext) Errors() []*diagnostics.DiagnosticError {
	return ctx.Sink.Errors()
}
