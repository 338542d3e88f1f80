package analyzer

import (
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// inferList types `[a, b]` as `'a list` when a list type is declared, and as
// any otherwise.
func (a *Analyzer) inferList(term *hir.Term, n hir.List) {
	element := typesystem.NewHole()
	for _, e := range n.Elements {
		a.infer(e)
		a.unify(e.SrcPos, element, e.Type)
	}

	def, ok := a.typeDefinition(config.ListTypeName, term.SrcPos)
	if !ok {
		a.unify(term.SrcPos, term.Type, typesystem.Any{})
		return
	}
	a.unify(term.SrcPos, term.Type, typesystem.App{Name: def.Refer(term.SrcPos), Argument: element})
}

// inferPair types `(a, b)` as a pair; the empty pair is unit.
func (a *Analyzer) inferPair(term *hir.Term, n hir.Pair) {
	if len(n.Elements) == 0 {
		a.unify(term.SrcPos, term.Type, a.builtin(config.UnitTypeName, term.SrcPos))
		return
	}
	elements := make([]typesystem.Type, len(n.Elements))
	for i, e := range n.Elements {
		a.infer(e)
		elements[i] = e.Type
	}
	a.unify(term.SrcPos, term.Type, typesystem.Pair{Elements: elements})
}
