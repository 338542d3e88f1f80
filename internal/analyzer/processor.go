package analyzer

import "github.com/aripiprazole/tinyml/internal/pipeline"

// InferenceProcessor type checks the lowered program and records the scheme
// of every top-level value on its declaration.
type InferenceProcessor struct{}

func (ip *InferenceProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.SymbolTable == nil {
		return ctx
	}

	New(ctx.SymbolTable, ctx.Sink).Analyze(ctx.Program)
	return ctx
}
