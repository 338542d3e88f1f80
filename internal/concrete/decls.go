package concrete

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/loc"
)

// Program is one compilation unit.
type Program struct {
	File    string
	Version string // Interchange format version
	Decls   []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	declNode()
	Pos() loc.Loc
}

// TypeDecl is `type 'a option = None | Some of 'a`.
type TypeDecl struct {
	Name         abstr.Identifier
	Params       []abstr.Identifier
	Constructors []ConstructorDecl
	Loc          loc.Loc
}

// ConstructorDecl is one alternative of a type declaration.
type ConstructorDecl struct {
	Name   abstr.Identifier
	Fields []Type
	Loc    loc.Loc
}

// LetDecl is a top-level `let name : type = value`. Type may be nil.
type LetDecl struct {
	Name  abstr.Identifier
	Type  Type
	Value Term
	Loc   loc.Loc
}

func (TypeDecl) declNode() {}
func (LetDecl) declNode()  {}

func (d TypeDecl) Pos() loc.Loc { return d.Loc }
func (d LetDecl) Pos() loc.Loc  { return d.Loc }
