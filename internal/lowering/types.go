package lowering

import (
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/config"
)

// LowerType resolves the names of a concrete type. An unresolved name is
// reported and becomes a hole.
func (c *Context) LowerType(typ concrete.Type) abstr.Type {
	leave, err := c.enter()
	if err != nil {
		c.Report(err)
		return abstr.Hole{}
	}
	defer leave()

	switch t := typ.(type) {
	case nil, concrete.TypeHole:
		return abstr.Hole{}
	case concrete.TypeSrcPos:
		saved := c.pos
		c.pos = t.Loc
		out := abstr.SrcPos{Type: c.LowerType(t.Type), Loc: t.Loc}
		c.pos = saved
		return out
	case concrete.TypeVar:
		return abstr.Meta{Name: t.Name}
	case concrete.TypeName:
		def, err := c.LookupType(t.Name)
		if err != nil {
			c.Report(err)
			return abstr.Hole{}
		}
		return abstr.Constructor{Name: def.Refer(c.pos)}
	case concrete.TypeApp:
		return c.lowerTypeApp(t)
	case concrete.TypeFun:
		return abstr.Fun{Domain: c.LowerType(t.Domain), Codomain: c.LowerType(t.Codomain)}
	case concrete.TypeTuple:
		return abstr.Tuple{Elements: c.lowerTypes(t.Elements)}
	case concrete.TypePair:
		return abstr.Pair{Elements: c.lowerTypes(t.Elements)}
	default:
		c.Report(fmt.Errorf("unsupported type %T", typ))
		return abstr.Hole{}
	}
}

func (c *Context) lowerTypes(types []concrete.Type) []abstr.Type {
	out := make([]abstr.Type, len(types))
	for i, t := range types {
		out[i] = c.LowerType(t)
	}
	return out
}

// lowerTypeApp handles `'a local` as a local type and packs several arguments
// into a tuple: `('k, 'v) map` applies map to ('k, 'v).
func (c *Context) lowerTypeApp(t concrete.TypeApp) abstr.Type {
	args := c.lowerTypes(t.Args)
	var arg abstr.Type = abstr.Hole{}
	switch len(args) {
	case 0:
	case 1:
		arg = args[0]
	default:
		arg = abstr.Tuple{Elements: args}
	}

	def, err := c.LookupType(t.Name)
	if err != nil {
		c.Report(err)
		return abstr.Hole{}
	}
	if t.Name.Text == config.LocalTypeName && len(args) == 1 {
		return abstr.Local{Type: arg}
	}
	return abstr.App{Name: def.Refer(c.pos), Argument: arg}
}
