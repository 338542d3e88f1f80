package analyzer

import (
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// inferIf unifies both branches. There is no boolean type, so the condition
// is checked but not constrained.
func (a *Analyzer) inferIf(term *hir.Term, n hir.If) {
	a.infer(n.Cond)
	a.infer(n.Then)
	a.infer(n.Otherwise)
	a.unify(n.Otherwise.SrcPos, n.Then.Type, n.Otherwise.Type)
	a.unify(term.SrcPos, term.Type, n.Then.Type)
}

func (a *Analyzer) inferMatch(term *hir.Term, n hir.Match) {
	a.inferTree(term, n.Tree, nil)
}

// inferTree unifies every leaf with the type of the match. fields are the
// field types of the condition the tree sits under; index and tuple
// occurrences are typed from them.
func (a *Analyzer) inferTree(match *hir.Term, tree hir.CaseTree, fields []typesystem.Type) {
	switch t := tree.(type) {
	case hir.Leaf:
		a.infer(t.Body)
		a.unify(t.Body.SrcPos, match.Type, t.Body.Type)
	case hir.Branch:
		scrutinee := a.occurrenceType(match.SrcPos, t.Occurrence, fields)
		for _, c := range t.Cases {
			inner, release := a.inferCondition(match.SrcPos, scrutinee, c.Condition)
			a.inferTree(match, c.Tree, inner)
			release()
		}
		if t.Default != nil {
			a.inferTree(match, t.Default, fields)
		}
	}
}

func (a *Analyzer) occurrenceType(at loc.Loc, o hir.Occurrence, fields []typesystem.Type) typesystem.Type {
	switch o := o.(type) {
	case hir.OccurrenceVariable:
		if scheme, ok := a.env[o.Definition]; ok {
			return scheme.Instantiate()
		}
		return typesystem.Any{}
	case hir.OccurrenceTerm:
		a.infer(o.Term)
		return o.Term.Type
	case hir.OccurrenceIndex:
		return a.field(at, fields, o.Index)
	case hir.OccurrenceTuple:
		outer := a.field(at, fields, o.Outer)
		switch t := typesystem.Zonk(outer).(type) {
		case typesystem.Any:
			return t
		case typesystem.Pair:
			if o.Inner >= 0 && o.Inner < len(t.Elements) {
				return t.Elements[o.Inner]
			}
			a.sink.Report(diagnostics.NewError(diagnostics.ErrT004, at,
				fmt.Sprintf("occurrence %d.%d: field %d is %s, which has no component %d", o.Outer, o.Inner, o.Outer, t, o.Inner)))
		default:
			a.sink.Report(diagnostics.NewError(diagnostics.ErrT004, at,
				fmt.Sprintf("occurrence %d.%d: field %d is %s, not a tuple", o.Outer, o.Inner, o.Outer, t)))
		}
		return typesystem.Any{}
	}
	return typesystem.Any{}
}

// field is the type of field i of the enclosing condition.
func (a *Analyzer) field(at loc.Loc, fields []typesystem.Type, i int) typesystem.Type {
	if i >= 0 && i < len(fields) {
		return fields[i]
	}
	a.sink.Report(diagnostics.NewError(diagnostics.ErrT004, at,
		fmt.Sprintf("occurrence .%d: the enclosing condition has %d fields", i, len(fields))))
	return typesystem.Any{}
}

// inferCondition unifies the scrutinee with the shape the condition tests and
// binds the condition's binders to the matching field types. It returns the
// field types and a func that unbinds the binders.
func (a *Analyzer) inferCondition(at loc.Loc, scrutinee typesystem.Type, condition hir.Condition) ([]typesystem.Type, func()) {
	var fields []typesystem.Type
	var binders []*abstr.Definition

	switch c := condition.(type) {
	case hir.ConstructorCondition:
		binders = c.Binders
		if !c.Constructor.Loc.IsZero() {
			at = c.Constructor.Loc
		}
		scheme, ok := a.env[c.Constructor.Definition]
		if !ok {
			fields = holes(max(len(binders), c.Projection+1))
			break
		}
		var result typesystem.Type
		fields, result = splitFun(scheme.Instantiate())
		if (len(binders) > 0 || c.Projection == hir.NoProjection) && len(fields) != len(binders) {
			a.sink.Report(diagnostics.NewError(diagnostics.ErrT004, at,
				fmt.Sprintf("constructor %s has %d fields, but the pattern binds %d", c.Constructor.Name(), len(fields), len(binders))))
		}
		if c.Projection != hir.NoProjection && (c.Projection < 0 || c.Projection >= len(fields)) {
			a.sink.Report(diagnostics.NewError(diagnostics.ErrT004, at,
				fmt.Sprintf("constructor %s has %d fields, but the case projects field %d", c.Constructor.Name(), len(fields), c.Projection)))
		}
		a.unify(at, scrutinee, result)
	case hir.TupleCondition:
		binders = c.Binders
		fields = holes(c.Arity)
		a.unify(at, scrutinee, typesystem.Pair{Elements: fields})
	}

	n := len(a.monomorphic)
	for i, binder := range binders {
		if binder == nil || i >= len(fields) {
			continue
		}
		a.bindMonomorphic(binder, fields[i])
	}
	return fields, func() { a.monomorphic = a.monomorphic[:n] }
}

// splitFun splits `a -> b -> r` into [a, b] and r.
func splitFun(t typesystem.Type) ([]typesystem.Type, typesystem.Type) {
	var domains []typesystem.Type
	for {
		fun, ok := typesystem.Zonk(t).(typesystem.Fun)
		if !ok {
			return domains, t
		}
		domains = append(domains, fun.Domain)
		t = fun.Codomain
	}
}

func holes(n int) []typesystem.Type {
	out := make([]typesystem.Type, n)
	for i := range out {
		out[i] = typesystem.NewHole()
	}
	return out
}
