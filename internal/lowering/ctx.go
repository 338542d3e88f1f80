// Package lowering translates concrete syntax into HIR. A Context owns the
// scopes of one pass; forks of it share the fresh name counter, the
// diagnostic sink and the recursion budget.
package lowering

import (
	"fmt"
	"sync"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/symbols"
	"github.com/google/uuid"
)

type options struct {
	builtins []string
	budget   int
	sink     *diagnostics.Sink
	unit     uuid.UUID
}

// Option configures a Context.
type Option func(*options)

// WithBuiltins replaces the built-in type names seeded into the type scope.
func WithBuiltins(names []string) Option {
	return func(o *options) { o.builtins = names }
}

// WithBudget sets how deep lowering may nest. Values below 1 keep the default.
func WithBudget(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.budget = n
		}
	}
}

// WithSink reports into an existing sink instead of a new one.
func WithSink(s *diagnostics.Sink) Option {
	return func(o *options) { o.sink = s }
}

// WithUnit sets the compilation unit id of a new sink.
func WithUnit(id uuid.UUID) Option {
	return func(o *options) { o.unit = id }
}

// shared is the state every fork of a context sees.
type shared struct {
	mu      sync.Mutex
	counter int
	depth   int
	budget  int
	sink    *diagnostics.Sink
}

type Context struct {
	pos   loc.Loc
	scope *symbols.SymbolTable
	state *shared
}

// New creates a root context whose type scope holds the built-in types.
func New(opts ...Option) *Context {
	o := options{
		builtins: config.BuiltinTypes,
		budget:   config.DefaultRecursionBudget,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		if o.unit == uuid.Nil {
			o.unit = uuid.New()
		}
		o.sink = diagnostics.NewSink(o.unit)
	}

	builtins := symbols.NewBuiltinTable(o.builtins)
	return &Context{
		scope: symbols.NewEnclosedSymbolTable(builtins, symbols.ScopeGlobal),
		state: &shared{budget: o.budget, sink: o.sink},
	}
}

// Fork returns a child context for a nested scope. Definitions made in the
// child are invisible to c.
func (c *Context) Fork() *Context {
	return &Context{
		pos:   c.pos,
		scope: symbols.NewEnclosedSymbolTable(c.scope, symbols.ScopeBlock),
		state: c.state,
	}
}

// SetPos sets the location stamped on new definitions.
func (c *Context) SetPos(l loc.Loc) {
	c.pos = l
}

func (c *Context) Pos() loc.Loc {
	return c.pos
}

// Unit returns the compilation unit id of the diagnostic sink.
func (c *Context) Unit() uuid.UUID {
	return c.state.sink.Unit()
}

func (c *Context) introduce(kind symbols.SymbolKind, name abstr.Identifier) *abstr.Definition {
	def := abstr.NewDefinition(name, c.pos)
	c.scope.Define(kind, name, def)
	return def
}

// NewFreshVariable introduces a variable with a synthesized name, _1, _2, ...
func (c *Context) NewFreshVariable() *abstr.Definition {
	c.state.mu.Lock()
	c.state.counter++
	n := c.state.counter
	c.state.mu.Unlock()

	name := abstr.NewIdentifier(fmt.Sprintf("%s%d", config.FreshPrefix, n), c.pos)
	return c.introduce(symbols.VariableSymbol, name)
}

// NewVariable introduces a variable, shadowing any binding of the same name.
func (c *Context) NewVariable(name abstr.Identifier) *abstr.Definition {
	return c.introduce(symbols.VariableSymbol, name)
}

func (c *Context) NewConstructor(name abstr.Identifier) *abstr.Definition {
	return c.introduce(symbols.ConstructorSymbol, name)
}

func (c *Context) NewType(name abstr.Identifier) *abstr.Definition {
	return c.introduce(symbols.TypeSymbol, name)
}

func (c *Context) LookupVariable(name abstr.Identifier) (*abstr.Definition, error) {
	if def, ok := c.scope.Find(symbols.VariableSymbol, name); ok {
		return def, nil
	}
	return nil, &UnresolvedVariableError{Name: name}
}

func (c *Context) LookupConstructor(name abstr.Identifier) (*abstr.Definition, error) {
	if def, ok := c.scope.Find(symbols.ConstructorSymbol, name); ok {
		return def, nil
	}
	return nil, &UnresolvedConstructorError{Name: name}
}

func (c *Context) LookupType(name abstr.Identifier) (*abstr.Definition, error) {
	if def, ok := c.scope.Find(symbols.TypeSymbol, name); ok {
		return def, nil
	}
	return nil, &UnresolvedTypeError{Name: name}
}

// Lookup resolves name as a constructor, then as a variable.
func (c *Context) Lookup(name abstr.Identifier) (*abstr.Definition, error) {
	def, err := c.LookupConstructor(name)
	if err == nil {
		return def, nil
	}
	symbolErr := &UnresolvedSymbolError{Constructor: err.(*UnresolvedConstructorError)}

	def, err = c.LookupVariable(name)
	if err == nil {
		return def, nil
	}
	symbolErr.Variable = err.(*UnresolvedVariableError)
	return nil, symbolErr
}

// Report records err as a diagnostic located where err says, or at the
// current position.
func (c *Context) Report(err error) {
	if d, ok := err.(*diagnostics.DiagnosticError); ok {
		c.ReportDiagnostic(d)
		return
	}
	l := errorLoc(err)
	if l.IsZero() {
		l = c.pos
	}
	c.ReportDiagnostic(diagnostics.Wrap(errorCode(err), l, err))
}

func (c *Context) ReportDiagnostic(d *diagnostics.DiagnosticError) {
	c.state.sink.Report(d)
}

// Sink returns the diagnostic sink shared by c and its forks.
func (c *Context) Sink() *diagnostics.Sink {
	return c.state.sink
}

// Diagnostics returns everything reported so far, in order.
func (c *Context) Diagnostics() []*diagnostics.DiagnosticError {
	return c.state.sink.Errors()
}

// OrNone reports err, if any, and tells the caller whether value is usable.
func OrNone[T any](c *Context, value T, err error) (T, bool) {
	if err != nil {
		c.Report(err)
		var zero T
		return zero, false
	}
	return value, true
}

// enter burns one level of the recursion budget. The returned func gives it
// back and must be called when the caller returns.
func (c *Context) enter() (func(), error) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	if c.state.depth >= c.state.budget {
		return nil, &BudgetExhaustedError{Budget: c.state.budget}
	}
	c.state.depth++
	return c.leave, nil
}

func (c *Context) leave() {
	c.state.mu.Lock()
	c.state.depth--
	c.state.mu.Unlock()
}
