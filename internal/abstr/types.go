package abstr

import "github.com/aripiprazole/tinyml/internal/loc"

// Type is the resolved surface type syntax: names have already been looked up,
// but type variables are still written by name.
type Type interface {
	typeNode()
}

// SrcPos wraps a type with the location it was written at.
type SrcPos struct {
	Type Type
	Loc  loc.Loc
}

// Pair is `'a * 'b`.
type Pair struct {
	Elements []Type
}

// Tuple is `('a, 'b)`.
type Tuple struct {
	Elements []Type
}

// Fun is `'a -> 'b`.
type Fun struct {
	Domain   Type
	Codomain Type
}

// App is a one argument type application: `'a list`.
type App struct {
	Name     Reference
	Argument Type
}

// Local is `'a local`.
type Local struct {
	Type Type
}

// Meta is a named type variable such as `'a`.
type Meta struct {
	Name Identifier
}

// Constructor is a nominal type.
type Constructor struct {
	Name Reference
}

// Hole is `_`, a type left to inference.
type Hole struct{}

func (SrcPos) typeNode()      {}
func (Pair) typeNode()        {}
func (Tuple) typeNode()       {}
func (Fun) typeNode()         {}
func (App) typeNode()         {}
func (Local) typeNode()       {}
func (Meta) typeNode()        {}
func (Constructor) typeNode() {}
func (Hole) typeNode()        {}
