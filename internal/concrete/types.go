package concrete

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/loc"
)

// Type is concrete type syntax.
type Type interface {
	typeNode()
}

// TypeSrcPos wraps a type with the location it was written at.
type TypeSrcPos struct {
	Type Type
	Loc  loc.Loc
}

// TypeName is a named type such as `int`.
type TypeName struct {
	Name abstr.Identifier
}

// TypeVar is `'a`. The name is stored without the quote.
type TypeVar struct {
	Name abstr.Identifier
}

// TypeApp is postfix application: `'a list`, `('k, 'v) hashmap`.
type TypeApp struct {
	Args []Type
	Name abstr.Identifier
}

// TypeFun is `a -> b`.
type TypeFun struct {
	Domain   Type
	Codomain Type
}

// TypeTuple is `(a, b)`.
type TypeTuple struct {
	Elements []Type
}

// TypePair is `a * b`.
type TypePair struct {
	Elements []Type
}

// TypeHole is `_`.
type TypeHole struct{}

func (TypeSrcPos) typeNode() {}
func (TypeName) typeNode()   {}
func (TypeVar) typeNode()    {}
func (TypeApp) typeNode()    {}
func (TypeFun) typeNode()    {}
func (TypeTuple) typeNode()  {}
func (TypePair) typeNode()   {}
func (TypeHole) typeNode()   {}
