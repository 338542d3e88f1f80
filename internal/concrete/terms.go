// Package concrete is the concrete syntax tree handed to lowering. Nothing in
// it is resolved: names are identifiers, and sugar such as comma separated
// tuples is still a chain of binary operators.
package concrete

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/loc"
)

// Op is a binary operator.
type Op string

const (
	Comma Op = ","
	Semi  Op = ";"
	Plus  Op = "+"
	Minus Op = "-"
	Star  Op = "*"
	Slash Op = "/"
	Equal Op = "=="
	Cons  Op = "::"
)

// Term is a concrete expression. Patterns are written with the same nodes.
type Term interface {
	termNode()
}

// BinOp is `lhs op rhs`. Chains lean right: `a, b, c` is BinOp(a, BinOp(b, c)).
type BinOp struct {
	LHS Term
	Op  Op
	RHS Term
}

// SrcPos wraps a term with the location it was written at.
type SrcPos struct {
	Term Term
	Loc  loc.Loc
}

// Ident is a variable or constructor name.
type Ident struct {
	Name abstr.Identifier
}

// Wildcard is `_` in pattern position.
type Wildcard struct{}

type Int struct {
	Value int64
}

type Text struct {
	Value loc.Text
}

// Parens is `( ... )`; a nil Inner is the unit value `()`.
type Parens struct {
	Inner Term
}

// Brackets is `[ ... ]`; a nil Inner is the empty list.
type Brackets struct {
	Inner Term
}

// Fun is `fun param -> body`.
type Fun struct {
	Param abstr.Identifier
	Body  Term
}

// App is `fun arg`.
type App struct {
	Fun Term
	Arg Term
}

// Let is `let name = value in body`.
type Let struct {
	Name  abstr.Identifier
	Value Term
	Body  Term
}

// If is `if cond then then else otherwise`.
type If struct {
	Cond      Term
	Then      Term
	Otherwise Term
}

// Ascription is `(term : type)`.
type Ascription struct {
	Term Term
	Type Type
}

// Match is `match scrutinee with | pattern -> body ...`.
type Match struct {
	Scrutinee Term
	Arms      []Arm
}

// Arm is one `| pattern -> body` case.
type Arm struct {
	Pattern Term
	Body    Term
	Loc     loc.Loc
}

func (BinOp) termNode()      {}
func (SrcPos) termNode()     {}
func (Ident) termNode()      {}
func (Wildcard) termNode()   {}
func (Int) termNode()        {}
func (Text) termNode()       {}
func (Parens) termNode()     {}
func (Brackets) termNode()   {}
func (Fun) termNode()        {}
func (App) termNode()        {}
func (Let) termNode()        {}
func (If) termNode()         {}
func (Ascription) termNode() {}
func (Match) termNode()      {}

// Chain builds the right leaning operator chain that a parser produces for
// `t1 op t2 op ... tn`. It returns nil for no terms.
func Chain(op Op, terms ...Term) Term {
	if len(terms) == 0 {
		return nil
	}
	acc := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		acc = BinOp{LHS: terms[i], Op: op, RHS: acc}
	}
	return acc
}

// Unwrap strips every position wrapper around t.
func Unwrap(t Term) Term {
	for {
		pos, ok := t.(SrcPos)
		if !ok {
			return t
		}
		t = pos.Term
	}
}
