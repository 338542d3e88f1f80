package lowering

import (
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/hir"
)

// BuildCaseTree compiles match arms into a branch on scrutinee. Each arm is
// one of
//
//	_                  default
//	x                  default, with x bound to the scrutinee
//	C                  nullary constructor
//	C x _ / C (x, _)   constructor whose fields are binders or wildcards
//	(x, _, z)          tuple of binders or wildcards
//
// Arms after the first catch-all are unreachable and are not lowered.
func (c *Context) BuildCaseTree(scrutinee *abstr.Definition, arms []concrete.Arm) (hir.CaseTree, error) {
	leave, err := c.enter()
	if err != nil {
		return nil, err
	}
	defer leave()

	branch := hir.Branch{Occurrence: hir.OccurrenceVariable{Definition: scrutinee}}
	for _, arm := range arms {
		scope := c.Fork()
		if !arm.Loc.IsZero() {
			scope.SetPos(arm.Loc)
		}
		pattern := scope.unwrapPattern(arm.Pattern)

		switch p := pattern.(type) {
		case concrete.Wildcard:
			branch.Default = hir.Leaf{Body: scope.LowerTerm(arm.Body)}
			return branch, nil
		case concrete.Ident:
			if constructor, err := scope.LookupConstructor(p.Name); err == nil {
				condition := hir.ConstructorCondition{Constructor: constructor.Refer(scope.pos), Projection: hir.NoProjection}
				branch.Cases = append(branch.Cases, hir.Case{Condition: condition, Tree: hir.Leaf{Body: scope.LowerTerm(arm.Body)}})
				continue
			}
			binder := scope.NewVariable(p.Name)
			value := scope.variable(scrutinee)
			body := hir.NewTerm(hir.Let{Binder: binder, Value: value, Body: scope.LowerTerm(arm.Body)}, scope.pos)
			branch.Default = hir.Leaf{Body: body}
			return branch, nil
		case concrete.App:
			condition, err := scope.constructorPattern(p)
			if err != nil {
				return nil, err
			}
			branch.Cases = append(branch.Cases, hir.Case{Condition: condition, Tree: hir.Leaf{Body: scope.LowerTerm(arm.Body)}})
		case concrete.Parens:
			condition, err := scope.tuplePattern(p)
			if err != nil {
				return nil, err
			}
			branch.Cases = append(branch.Cases, hir.Case{Condition: condition, Tree: hir.Leaf{Body: scope.LowerTerm(arm.Body)}})
		default:
			return nil, scope.incompatiblePattern(pattern)
		}
	}
	return branch, nil
}

// unwrapPattern strips position wrappers, moving the context position along.
func (c *Context) unwrapPattern(p concrete.Term) concrete.Term {
	for {
		pos, ok := p.(concrete.SrcPos)
		if !ok {
			return p
		}
		c.pos = pos.Loc
		p = pos.Term
	}
}

// constructorPattern handles `C a b` and `C (a, b)`.
func (c *Context) constructorPattern(p concrete.App) (hir.ConstructorCondition, error) {
	var args []concrete.Term
	var head concrete.Term = p
	for {
		app, ok := c.unwrapPattern(head).(concrete.App)
		if !ok {
			break
		}
		args = append([]concrete.Term{app.Arg}, args...)
		head = app.Fun
	}

	name, ok := c.unwrapPattern(head).(concrete.Ident)
	if !ok {
		return hir.ConstructorCondition{}, c.incompatiblePattern(head)
	}
	constructor, err := c.LookupConstructor(name.Name)
	if err != nil {
		return hir.ConstructorCondition{}, err
	}

	if len(args) == 1 {
		if parens, ok := c.unwrapPattern(args[0]).(concrete.Parens); ok && parens.Inner != nil {
			if args, err = c.SepBy(concrete.Comma, parens.Inner); err != nil {
				return hir.ConstructorCondition{}, err
			}
		}
	}

	binders := make([]*abstr.Definition, len(args))
	for i, arg := range args {
		switch field := c.unwrapPattern(arg).(type) {
		case concrete.Wildcard:
		case concrete.Ident:
			binders[i] = c.NewVariable(field.Name)
		case concrete.App:
			return hir.ConstructorCondition{}, &ApplicationPatternInConstructorError{Loc: c.pos, Constructor: name.Name}
		default:
			return hir.ConstructorCondition{}, c.incompatiblePattern(field)
		}
	}
	return hir.ConstructorCondition{
		Constructor: constructor.Refer(c.pos),
		Projection:  hir.NoProjection,
		Binders:     binders,
	}, nil
}

// tuplePattern handles `(a, _, c)`. Unit and grouping parens are not tuples.
func (c *Context) tuplePattern(p concrete.Parens) (hir.TupleCondition, error) {
	if p.Inner == nil {
		return hir.TupleCondition{}, c.incompatiblePattern(p)
	}
	elements, err := c.SepBy(concrete.Comma, p.Inner)
	if err != nil {
		return hir.TupleCondition{}, err
	}
	if len(elements) < 2 {
		return hir.TupleCondition{}, c.incompatiblePattern(p)
	}

	binders := make([]*abstr.Definition, len(elements))
	for i, element := range elements {
		switch e := c.unwrapPattern(element).(type) {
		case concrete.Wildcard:
		case concrete.Ident:
			binders[i] = c.NewVariable(e.Name)
		default:
			return hir.TupleCondition{}, c.incompatiblePattern(e)
		}
	}
	return hir.TupleCondition{Arity: len(elements), Binders: binders}, nil
}

func (c *Context) incompatiblePattern(p concrete.Term) error {
	return &IncompatiblePatternTypeError{Loc: c.pos, Pattern: patternName(p)}
}

func patternName(p concrete.Term) string {
	switch p := concrete.Unwrap(p).(type) {
	case concrete.Int:
		return "integer literal"
	case concrete.Text:
		return "string literal"
	case concrete.Fun:
		return "lambda"
	case concrete.Parens:
		if p.Inner == nil {
			return "unit"
		}
		return "parenthesized pattern"
	case concrete.Brackets:
		return "list literal"
	case concrete.BinOp:
		return fmt.Sprintf("%s expression", p.Op)
	default:
		return fmt.Sprintf("%T", p)
	}
}
