package hir

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// Program is a lowered compilation unit.
type Program struct {
	File   string
	Types  []*TypeDecl
	Values []*ValueDecl
}

// TypeDecl is a declared algebraic data type.
type TypeDecl struct {
	Definition   *abstr.Definition
	Params       []*abstr.Definition
	Constructors []*ConstructorDecl
}

// ConstructorDecl is one constructor; Scheme is its type as a function of
// its fields, e.g. forall 'a. 'a -> 'a list -> 'a list.
type ConstructorDecl struct {
	Definition *abstr.Definition
	Type       *TypeDecl
	Arity      int
	Scheme     typesystem.Scheme
}

// ValueDecl is a top-level binding. Scheme is filled in by the checker;
// Annotation is the declared scheme, if one was written.
type ValueDecl struct {
	Definition *abstr.Definition
	Value      *Term
	Annotation *typesystem.Scheme
	Scheme     typesystem.Scheme
}
