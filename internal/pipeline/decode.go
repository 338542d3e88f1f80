package pipeline

import (
	"errors"

	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/loc"
)

// DecodeProcessor reads the concrete syntax document from the source.
type DecodeProcessor struct{}

func (dp *DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Source == nil {
		ctx.Sink.Report(diagnostics.NewError(diagnostics.ErrL008, loc.Loc{File: ctx.FilePath}, "decode: source is nil"))
		return ctx
	}

	program, err := concrete.Decode(ctx.Source, ctx.FilePath)
	if err != nil {
		l := loc.Loc{File: ctx.FilePath}
		var syntax *concrete.SyntaxError
		if errors.As(err, &syntax) {
			l = syntax.Loc
		}
		ctx.Sink.Report(diagnostics.Wrap(diagnostics.ErrL008, l, err))
		return ctx
	}

	if err := ctx.Config.CheckSyntaxVersion(program.Version); err != nil {
		ctx.Sink.Report(diagnostics.Wrap(diagnostics.ErrL008, loc.Loc{File: program.File, Line: 1, Column: 1}, err))
		return ctx
	}

	ctx.Document = program
	return ctx
}
