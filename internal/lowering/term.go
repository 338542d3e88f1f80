package lowering

import (
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// LowerTerm translates a concrete term. It never fails: problems are reported
// and the offending node becomes an any-typed placeholder.
func (c *Context) LowerTerm(term concrete.Term) *hir.Term {
	leave, err := c.enter()
	if err != nil {
		c.Report(err)
		return c.errorTerm()
	}
	defer leave()

	switch t := term.(type) {
	case nil:
		return hir.NewTerm(hir.Pair{}, c.pos)
	case concrete.SrcPos:
		saved := c.pos
		c.pos = t.Loc
		out := c.LowerTerm(t.Term)
		c.pos = saved
		return out
	case concrete.Int:
		return hir.NewTerm(hir.Int{Value: t.Value}, c.pos)
	case concrete.Text:
		return hir.NewTerm(hir.Text{Value: t.Value}, c.pos)
	case concrete.Ident:
		def, err := c.Lookup(t.Name)
		if err != nil {
			c.Report(err)
			return c.errorTerm()
		}
		return c.variable(def)
	case concrete.Wildcard:
		c.Report(&UnresolvedVariableError{Name: abstr.NewIdentifier("_", c.pos)})
		return c.errorTerm()
	case concrete.Parens:
		return c.lowerParens(t)
	case concrete.Brackets:
		elements, err := c.SepBy(concrete.Comma, t.Inner)
		if err != nil {
			c.Report(err)
			return c.errorTerm()
		}
		return hir.NewTerm(hir.List{Elements: c.lowerAll(elements)}, c.pos)
	case concrete.BinOp:
		return c.lowerBinOp(t)
	case concrete.Fun:
		inner := c.Fork()
		param := inner.NewVariable(t.Param)
		return hir.NewTerm(hir.Fun{Param: param, Body: inner.LowerTerm(t.Body)}, c.pos)
	case concrete.App:
		return hir.NewTerm(hir.App{Fun: c.LowerTerm(t.Fun), Arg: c.LowerTerm(t.Arg)}, c.pos)
	case concrete.Let:
		value := c.LowerTerm(t.Value)
		inner := c.Fork()
		binder := inner.NewVariable(t.Name)
		return hir.NewTerm(hir.Let{Binder: binder, Value: value, Body: inner.LowerTerm(t.Body)}, c.pos)
	case concrete.If:
		return hir.NewTerm(hir.If{
			Cond:      c.LowerTerm(t.Cond),
			Then:      c.LowerTerm(t.Then),
			Otherwise: c.LowerTerm(t.Otherwise),
		}, c.pos)
	case concrete.Ascription:
		typ := c.LowerType(t.Type)
		scheme := typesystem.Generalize(typesystem.FromAbstract(typ))
		return hir.NewTerm(hir.Ascription{Term: c.LowerTerm(t.Term), Scheme: scheme}, c.pos)
	case concrete.Match:
		return c.lowerMatch(t)
	default:
		c.Report(fmt.Errorf("unsupported term %T", term))
		return c.errorTerm()
	}
}

func (c *Context) lowerAll(terms []concrete.Term) []*hir.Term {
	out := make([]*hir.Term, len(terms))
	for i, term := range terms {
		out[i] = c.LowerTerm(term)
	}
	return out
}

// lowerParens handles grouping, tuples and unit.
func (c *Context) lowerParens(t concrete.Parens) *hir.Term {
	if t.Inner == nil {
		return hir.NewTerm(hir.Pair{}, c.pos)
	}
	elements, err := c.SepBy(concrete.Comma, t.Inner)
	if err != nil {
		c.Report(err)
		return c.errorTerm()
	}
	if len(elements) == 1 {
		return c.LowerTerm(t.Inner)
	}
	return hir.NewTerm(hir.Pair{Elements: c.lowerAll(elements)}, c.pos)
}

func (c *Context) lowerBinOp(t concrete.BinOp) *hir.Term {
	switch t.Op {
	case concrete.Comma:
		elements, err := c.SepBy(concrete.Comma, t)
		if err != nil {
			c.Report(err)
			return c.errorTerm()
		}
		return hir.NewTerm(hir.Pair{Elements: c.lowerAll(elements)}, c.pos)
	case concrete.Semi:
		return c.lowerSequence(t)
	}

	// a + b is (+) a b
	head := c.errorTerm()
	if def, err := c.LookupVariable(abstr.NewIdentifier(string(t.Op), c.pos)); err != nil {
		c.Report(err)
	} else {
		head = c.variable(def)
	}
	partial := hir.NewTerm(hir.App{Fun: head, Arg: c.LowerTerm(t.LHS)}, c.pos)
	return hir.NewTerm(hir.App{Fun: partial, Arg: c.LowerTerm(t.RHS)}, c.pos)
}

// lowerSequence turns `a; b; c` into `let _1 = a in let _2 = b in c`.
// The discard binders are introduced in scopes no step is lowered in, so a
// user name spelled like one of them still resolves to the user binding.
func (c *Context) lowerSequence(t concrete.BinOp) *hir.Term {
	steps, err := c.SepBy(concrete.Semi, t)
	if err != nil {
		c.Report(err)
		return c.errorTerm()
	}

	binders := make([]*abstr.Definition, len(steps)-1)
	values := make([]*hir.Term, len(steps)-1)
	for i, step := range steps[:len(steps)-1] {
		values[i] = c.LowerTerm(step)
		binders[i] = c.Fork().NewFreshVariable()
	}

	acc := c.LowerTerm(steps[len(steps)-1])
	for i := len(values) - 1; i >= 0; i-- {
		acc = hir.NewTerm(hir.Let{Binder: binders[i], Value: values[i], Body: acc}, values[i].SrcPos)
	}
	return acc
}

// lowerMatch binds the scrutinee to a fresh variable and compiles the arms
// against it. Arms refer to the scrutinee by definition, so they are lowered
// outside the scope that holds the fresh name.
func (c *Context) lowerMatch(t concrete.Match) *hir.Term {
	scrutinee := c.LowerTerm(t.Scrutinee)
	binder := c.Fork().NewFreshVariable()

	tree, err := c.BuildCaseTree(binder, t.Arms)
	tree, ok := OrNone(c, tree, err)
	if !ok {
		tree = hir.Failure{}
	}
	match := hir.NewTerm(hir.Match{Tree: tree}, c.pos)
	return hir.NewTerm(hir.Let{Binder: binder, Value: scrutinee, Body: match}, c.pos)
}

func (c *Context) variable(def *abstr.Definition) *hir.Term {
	return hir.NewTerm(hir.Var{Ref: def.Refer(c.pos)}, c.pos)
}

// errorTerm is the placeholder for a term that failed to lower. It refers to
// a definition no scope holds and is typed any.
func (c *Context) errorTerm() *hir.Term {
	def := abstr.NewDefinition(abstr.NewIdentifier("<error>", c.pos), c.pos)
	term := hir.NewTerm(hir.Var{Ref: def.Refer(c.pos)}, c.pos)
	term.Type = typesystem.Any{}
	return term
}
