package analyzer

import (
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// inferLet generalizes the bound value before checking the body, so each use
// of the binder gets a fresh instance.
func (a *Analyzer) inferLet(term *hir.Term, n hir.Let) {
	a.infer(n.Value)
	a.env[n.Binder] = a.generalize(n.Value.Type)
	a.infer(n.Body)
	a.unify(term.SrcPos, term.Type, n.Body.Type)
}

// inferProgram checks top-level values in declaration order. A value that is
// not checked yet is seen at a monomorphic placeholder type, which makes
// recursion and forward references resolve by unification.
func (a *Analyzer) inferProgram(program *hir.Program) {
	for _, typ := range program.Types {
		a.kinds[typ.Definition] = typesystem.KindOfArity(len(typ.Params))
	}
	for _, typ := range program.Types {
		for _, cons := range typ.Constructors {
			a.checkKind(cons.Definition.Loc, cons.Scheme.Mono)
			a.env[cons.Definition] = cons.Scheme
		}
	}

	base := len(a.monomorphic)
	pending := make([]typesystem.Type, len(program.Values))
	for i, value := range program.Values {
		pending[i] = typesystem.NewHole()
		a.env[value.Definition] = typesystem.NewScheme(pending[i])
		a.monomorphic = append(a.monomorphic, pending[i])
	}
	defer func() { a.monomorphic = a.monomorphic[:base] }()

	for i, value := range program.Values {
		if value.Value == nil {
			continue
		}
		a.infer(value.Value)
		if value.Annotation != nil && a.checkKind(value.Definition.Loc, value.Annotation.Mono) {
			a.unify(value.Value.SrcPos, value.Annotation.Instantiate(), value.Value.Type)
		}
		a.unify(value.Value.SrcPos, pending[i], value.Value.Type)

		a.monomorphic[base+i] = typesystem.Any{}
		value.Scheme = a.generalize(value.Value.Type)
		a.env[value.Definition] = value.Scheme
	}
}
