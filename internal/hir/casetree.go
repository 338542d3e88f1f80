package hir

import "github.com/aripiprazole/tinyml/internal/abstr"

// Occurrence is where, relative to the scrutinee, a branch tests.
type Occurrence interface {
	occurrence()
}

// OccurrenceTerm tests a whole term.
type OccurrenceTerm struct {
	Term *Term
}

// OccurrenceVariable tests the value bound to a variable.
type OccurrenceVariable struct {
	Definition *abstr.Definition
}

// OccurrenceIndex tests a field of the constructor matched by the parent branch: `.0`.
type OccurrenceIndex struct {
	Index int
}

// OccurrenceTuple tests a component nested in a field: `0.1`.
type OccurrenceTuple struct {
	Outer int
	Inner int
}

func (OccurrenceTerm) occurrence()     {}
func (OccurrenceVariable) occurrence() {}
func (OccurrenceIndex) occurrence()    {}
func (OccurrenceTuple) occurrence()    {}

// NoProjection marks a constructor condition that projects no field.
const NoProjection = -1

// Condition is what a case of a branch requires of the occurrence.
type Condition interface {
	condition()
}

// ConstructorCondition holds when the value is built by Constructor.
// Projection is the field the case continues with, or NoProjection. Binders
// name the fields for the case tree below; a nil entry is a wildcard.
type ConstructorCondition struct {
	Constructor abstr.Reference
	Projection  int
	Binders     []*abstr.Definition
}

// TupleCondition holds when the value is a tuple of Arity components.
type TupleCondition struct {
	Arity   int
	Binders []*abstr.Definition
}

func (ConstructorCondition) condition() {}
func (TupleCondition) condition()       {}

// CaseTree is a compiled pattern match.
//
//	match x with
//	| Cons (y, ys) -> 1
//	| Nil -> 0
//
// is lowered to a single branch whose conditions bind the fields:
//
//	Branch x
//	  Cons [y, ys] -> Leaf 1
//	  Nil          -> Leaf 0
//
// Nested patterns would continue with a Branch on OccurrenceIndex or
// OccurrenceTuple, typed by the fields of the enclosing condition.
type CaseTree interface {
	caseTree()
}

// Failure is the tree of a match that could not be compiled. Lowering keeps
// going with it so later siblings still get checked.
type Failure struct{}

// Leaf evaluates Body.
type Leaf struct {
	Body *Term
}

// Branch tries Cases in order and falls back to Default, which may be nil.
type Branch struct {
	Occurrence Occurrence
	Cases      []Case
	Default    CaseTree
}

// Case is one arm of a branch.
type Case struct {
	Condition Condition
	Tree      CaseTree
}

func (Failure) caseTree() {}
func (Leaf) caseTree()    {}
func (Branch) caseTree()  {}

// Leaves returns the bodies of every leaf of t, in order.
func Leaves(t CaseTree) []*Term {
	var out []*Term
	var walk func(CaseTree)
	walk = func(t CaseTree) {
		switch tree := t.(type) {
		case Leaf:
			out = append(out, tree.Body)
		case Branch:
			for _, c := range tree.Cases {
				walk(c.Tree)
			}
			if tree.Default != nil {
				walk(tree.Default)
			}
		}
	}
	walk(t)
	return out
}
