package lowering

import (
	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

// LowerProgram lowers a compilation unit. Every type, constructor and
// top-level value is introduced before any body is lowered, so declarations
// may refer to each other in any order.
func (c *Context) LowerProgram(program *concrete.Program) *hir.Program {
	out := &hir.Program{File: program.File}

	var types []*hir.TypeDecl
	var values []*hir.ValueDecl
	for _, decl := range program.Decls {
		c.SetPos(decl.Pos())
		switch d := decl.(type) {
		case concrete.TypeDecl:
			typ := &hir.TypeDecl{Definition: c.NewType(d.Name)}
			for _, cons := range d.Constructors {
				c.SetPos(cons.Loc)
				typ.Constructors = append(typ.Constructors, &hir.ConstructorDecl{
					Definition: c.NewConstructor(cons.Name),
					Type:       typ,
					Arity:      len(cons.Fields),
				})
			}
			types = append(types, typ)
		case concrete.LetDecl:
			values = append(values, &hir.ValueDecl{Definition: c.NewVariable(d.Name)})
		}
	}

	ti, vi := 0, 0
	for _, decl := range program.Decls {
		c.SetPos(decl.Pos())
		switch d := decl.(type) {
		case concrete.TypeDecl:
			c.lowerTypeDecl(d, types[ti])
			ti++
		case concrete.LetDecl:
			value := values[vi]
			if d.Type != nil {
				scheme := typesystem.Generalize(typesystem.FromAbstract(c.LowerType(d.Type)))
				value.Annotation = &scheme
			}
			value.Value = c.LowerTerm(d.Value)
			vi++
		}
	}

	out.Types = types
	out.Values = values
	return out
}

// lowerTypeDecl computes each constructor's scheme: `Cons of 'a * 'a list` in
// `'a list` is forall 'a. 'a -> 'a list -> 'a list.
func (c *Context) lowerTypeDecl(d concrete.TypeDecl, typ *hir.TypeDecl) {
	params := make([]abstr.Type, len(d.Params))
	for i, param := range d.Params {
		typ.Params = append(typ.Params, abstr.NewDefinition(param, param.Loc))
		params[i] = abstr.Meta{Name: param}
	}

	var result abstr.Type
	ref := typ.Definition.Refer(d.Loc)
	switch len(params) {
	case 0:
		result = abstr.Constructor{Name: ref}
	case 1:
		result = abstr.App{Name: ref, Argument: params[0]}
	default:
		result = abstr.App{Name: ref, Argument: abstr.Tuple{Elements: params}}
	}

	for i, cons := range d.Constructors {
		c.SetPos(cons.Loc)
		fields := c.lowerTypes(cons.Fields)
		mono := result
		for j := len(fields) - 1; j >= 0; j-- {
			mono = abstr.Fun{Domain: fields[j], Codomain: mono}
		}
		typ.Constructors[i].Scheme = typesystem.Generalize(typesystem.FromAbstract(mono))
	}
}
