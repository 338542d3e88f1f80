package pipeline

// Pipeline runs the stages of a check over one compilation unit.
type Pipeline struct {
	stages []Processor
}

func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run passes ctx through every stage in order. A failing stage does not stop
// the run: the CLI and pkg/embed report decode, lowering and type
// diagnostics of a unit together, and each stage skips itself when the one
// before left its input unset. A stage returning nil keeps the context of
// the previous one.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, stage := range p.stages {
		if next := stage.Process(ctx); next != nil {
			ctx = next
		}
	}
	return ctx
}
