// Package hir is the typed intermediate representation produced by lowering.
package hir

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// Term is a node of the HIR. Type starts as a fresh hole and is unified in
// place while the term is checked.
type Term struct {
	Value  TermKind
	SrcPos loc.Loc
	Type   typesystem.Type
}

// NewTerm creates a term whose type is a fresh hole.
func NewTerm(value TermKind, pos loc.Loc) *Term {
	return &Term{Value: value, SrcPos: pos, Type: typesystem.NewHole()}
}

// TermKind is the closed set of term forms.
type TermKind interface {
	termKind()
}

// List is `[1, 2, 3]`.
type List struct {
	Elements []*Term
}

// Pair is `(1, 2, 3)`.
type Pair struct {
	Elements []*Term
}

// Fun is `fun x -> body`.
type Fun struct {
	Param *abstr.Definition
	Body  *Term
}

// Match is `match x with ...`, already compiled to a case tree.
type Match struct {
	Tree CaseTree
}

// Ascription is `(x : int)`.
type Ascription struct {
	Term   *Term
	Scheme typesystem.Scheme
}

// App is `f x`.
type App struct {
	Fun *Term
	Arg *Term
}

// Var is a use of a definition.
type Var struct {
	Ref abstr.Reference
}

type Int struct {
	Value int64
}

type Text struct {
	Value loc.Text
}

// If is `if cond then then else otherwise`.
type If struct {
	Cond      *Term
	Then      *Term
	Otherwise *Term
}

// Let is `let x = value in body`.
type Let struct {
	Binder *abstr.Definition
	Value  *Term
	Body   *Term
}

func (List) termKind()       {}
func (Pair) termKind()       {}
func (Fun) termKind()        {}
func (Match) termKind()      {}
func (Ascription) termKind() {}
func (App) termKind()        {}
func (Var) termKind()        {}
func (Int) termKind()        {}
func (Text) termKind()       {}
func (If) termKind()         {}
func (Let) termKind()        {}
