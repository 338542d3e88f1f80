// Package analyzer infers the types of lowered HIR terms.
package analyzer

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/symbols"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// Analyzer checks terms against an environment of schemes. Type errors are
// reported to the sink; checking always runs to the end.
type Analyzer struct {
	symbolTable *symbols.SymbolTable
	sink        *diagnostics.Sink
	env         map[*abstr.Definition]typesystem.Scheme
	kinds       map[*abstr.Definition]typesystem.Kind
	monomorphic []typesystem.Type // Types of lambda and pattern bound definitions in scope
	reported    map[string]bool   // Missing type names already reported
}

// New creates an analyzer that resolves built-in types through symbolTable.
func New(symbolTable *symbols.SymbolTable, sink *diagnostics.Sink) *Analyzer {
	a := &Analyzer{
		symbolTable: symbolTable,
		sink:        sink,
		env:         make(map[*abstr.Definition]typesystem.Scheme),
		kinds:       make(map[*abstr.Definition]typesystem.Kind),
		reported:    make(map[string]bool),
	}
	a.registerBuiltinKinds()
	return a
}

// registerBuiltinKinds gives every seeded type kind *, except local which
// wraps one type.
func (a *Analyzer) registerBuiltinKinds() {
	for table := a.symbolTable; table != nil; table = table.Outer() {
		if table.ScopeType() != symbols.ScopeBuiltin {
			continue
		}
		for _, name := range table.Names(symbols.TypeSymbol) {
			def, _ := table.FindLocal(symbols.TypeSymbol, abstr.NewIdentifier(name, loc.Loc{}))
			a.kinds[def] = typesystem.Star
			if name == config.LocalTypeName {
				a.kinds[def] = typesystem.KindOfArity(1)
			}
		}
	}
}

// Analyze checks a whole program and returns every diagnostic reported to
// the sink so far.
func (a *Analyzer) Analyze(program *hir.Program) []*diagnostics.DiagnosticError {
	a.inferProgram(program)
	return a.sink.Errors()
}

// Infer checks a standalone term and generalizes its type.
func (a *Analyzer) Infer(term *hir.Term) typesystem.Scheme {
	a.infer(term)
	return a.generalize(term.Type)
}

// Bind adds a definition to the environment.
func (a *Analyzer) Bind(def *abstr.Definition, scheme typesystem.Scheme) {
	a.env[def] = scheme
}

// SchemeOf returns the scheme a definition was checked with.
func (a *Analyzer) SchemeOf(def *abstr.Definition) (typesystem.Scheme, bool) {
	s, ok := a.env[def]
	return s, ok
}

// bindMonomorphic binds def to t without quantifying anything. The returned
// func takes def out of the monomorphic set again.
func (a *Analyzer) bindMonomorphic(def *abstr.Definition, t typesystem.Type) func() {
	a.env[def] = typesystem.NewScheme(t)
	a.monomorphic = append(a.monomorphic, t)
	n := len(a.monomorphic) - 1
	return func() { a.monomorphic = a.monomorphic[:n] }
}

// generalize quantifies every hole of t that is not free in a monomorphic
// binding.
func (a *Analyzer) generalize(t typesystem.Type) typesystem.Scheme {
	free := make(map[uint64]bool)
	for _, m := range a.monomorphic {
		for _, v := range m.FreeHoles() {
			free[v.ID()] = true
		}
	}
	return typesystem.GeneralizeExcept(t, func(v typesystem.Variable) bool {
		return free[v.ID()]
	})
}

func (a *Analyzer) kindOf(ref abstr.Reference) typesystem.Kind {
	if k, ok := a.kinds[ref.Definition]; ok {
		return k
	}
	return typesystem.AnyKind
}

// checkKind reports a written type that applies a type constructor to the
// wrong number of arguments.
func (a *Analyzer) checkKind(at loc.Loc, t typesystem.Type) bool {
	if _, err := typesystem.KindCheck(t, a.kindOf); err != nil {
		a.sink.Report(diagnostics.Wrap(diagnostics.ErrT005, at, err))
		return false
	}
	return true
}

// typeDefinition resolves a type name, reporting it once if missing.
func (a *Analyzer) typeDefinition(name string, at loc.Loc) (*abstr.Definition, bool) {
	def, ok := a.symbolTable.Find(symbols.TypeSymbol, abstr.NewIdentifier(name, at))
	if !ok && !a.reported[name] {
		a.reported[name] = true
		a.sink.Report(diagnostics.NewError(diagnostics.ErrL003, at, "unresolved type "+name))
	}
	return def, ok
}

// builtin is the nominal type called name, or any if it is not declared.
func (a *Analyzer) builtin(name string, at loc.Loc) typesystem.Type {
	def, ok := a.typeDefinition(name, at)
	if !ok {
		return typesystem.Any{}
	}
	return typesystem.Constructor{Name: def.Refer(at)}
}
