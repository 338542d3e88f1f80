package analyzer

import (
	"errors"

	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// infer constrains term.Type, and the types of every subterm, in place.
func (a *Analyzer) infer(term *hir.Term) {
	switch n := term.Value.(type) {
	case hir.Int:
		a.unify(term.SrcPos, term.Type, a.builtin(config.IntTypeName, term.SrcPos))
	case hir.Text:
		a.unify(term.SrcPos, term.Type, a.builtin(config.StringTypeName, term.SrcPos))
	case hir.Var:
		a.inferVar(term, n)
	case hir.List:
		a.inferList(term, n)
	case hir.Pair:
		a.inferPair(term, n)
	case hir.Fun:
		param := typesystem.NewHole()
		release := a.bindMonomorphic(n.Param, param)
		a.infer(n.Body)
		release()
		a.unify(term.SrcPos, term.Type, typesystem.Fun{Domain: param, Codomain: n.Body.Type})
	case hir.App:
		a.infer(n.Fun)
		a.infer(n.Arg)
		a.unify(term.SrcPos, n.Fun.Type, typesystem.Fun{Domain: n.Arg.Type, Codomain: term.Type})
	case hir.If:
		a.inferIf(term, n)
	case hir.Let:
		a.inferLet(term, n)
	case hir.Ascription:
		a.infer(n.Term)
		if !a.checkKind(term.SrcPos, n.Scheme.Mono) {
			a.unify(term.SrcPos, term.Type, n.Term.Type)
			return
		}
		a.unify(term.SrcPos, n.Scheme.Instantiate(), n.Term.Type)
		a.unify(term.SrcPos, term.Type, n.Term.Type)
	case hir.Match:
		a.inferMatch(term, n)
	}
}

// inferVar instantiates the scheme of the referenced definition. Unknown
// definitions come from terms that failed to lower and were reported there.
func (a *Analyzer) inferVar(term *hir.Term, n hir.Var) {
	scheme, ok := a.env[n.Ref.Definition]
	if !ok {
		a.unify(term.SrcPos, term.Type, typesystem.Any{})
		return
	}
	a.unify(term.SrcPos, term.Type, scheme.Instantiate())
}

// unify reports a failed unification at the given location.
func (a *Analyzer) unify(at loc.Loc, expected, actual typesystem.Type) bool {
	err := typesystem.Unify(expected, actual)
	if err == nil {
		return true
	}
	a.sink.Report(diagnostics.Wrap(unificationCode(err), at, err))
	return false
}

func unificationCode(err error) diagnostics.ErrorCode {
	var (
		types        *typesystem.IncompatibleTypesError
		constructors *typesystem.IncompatibleConstructorsError
		occurs       *typesystem.OccursCheckError
	)
	switch {
	case errors.As(err, &types):
		return diagnostics.ErrT001
	case errors.As(err, &constructors):
		return diagnostics.ErrT002
	case errors.As(err, &occurs):
		return diagnostics.ErrT003
	default:
		return diagnostics.ErrT004
	}
}
