package typesystem

import "github.com/aripiprazole/tinyml/internal/abstr"

// FromAbstract lowers resolved surface type syntax. Named type variables map
// to one shared hole per name within a single call; separate calls never share
// holes.
func FromAbstract(t abstr.Type) Type {
	return fromAbstract(make(map[string]Hole), t)
}

func fromAbstract(vars map[string]Hole, t abstr.Type) Type {
	switch typ := t.(type) {
	case abstr.SrcPos:
		return fromAbstract(vars, typ.Type)
	case abstr.Pair:
		return Pair{Elements: fromAbstractAll(vars, typ.Elements)}
	case abstr.Tuple:
		return Tuple{Elements: fromAbstractAll(vars, typ.Elements)}
	case abstr.Fun:
		return Fun{Domain: fromAbstract(vars, typ.Domain), Codomain: fromAbstract(vars, typ.Codomain)}
	case abstr.App:
		return App{Name: typ.Name, Argument: fromAbstract(vars, typ.Argument)}
	case abstr.Local:
		return Local{Type: fromAbstract(vars, typ.Type)}
	case abstr.Meta:
		h, ok := vars[typ.Name.Key()]
		if !ok {
			h = NewHole()
			vars[typ.Name.Key()] = h
		}
		return h
	case abstr.Constructor:
		return Constructor{Name: typ.Name}
	case abstr.Hole:
		return NewHole()
	default:
		return NewHole()
	}
}

func fromAbstractAll(vars map[string]Hole, types []abstr.Type) []Type {
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = fromAbstract(vars, t)
	}
	return out
}
