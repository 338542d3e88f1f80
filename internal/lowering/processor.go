package lowering

import (
	"github.com/aripiprazole/tinyml/internal/pipeline"
	"github.com/aripiprazole/tinyml/internal/symbols"
)

// LoweringProcessor lowers the decoded document into HIR.
type LoweringProcessor struct{}

func (lp *LoweringProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Document == nil {
		return ctx
	}

	lowering := New(
		WithBuiltins(ctx.Config.Builtins),
		WithBudget(ctx.Config.RecursionBudget),
		WithSink(ctx.Sink),
	)
	ctx.Program = lowering.LowerProgram(ctx.Document)
	ctx.SymbolTable = lowering.Scope()
	return ctx
}

// Scope returns the symbol table definitions of c are made in.
func (c *Context) Scope() *symbols.SymbolTable {
	return c.scope
}
