package typesystem

// resolveHead follows bound holes until it reaches a type that is not a bound hole.
func resolveHead(t Type) Type {
	for {
		h, ok := t.(Hole)
		if !ok {
			return t
		}
		value, bound := h.Var.Value()
		if !bound {
			return t
		}
		t = value
	}
}

// Zonk replaces every bound hole in t by its value, recursively. Unbound holes
// are kept, so the result still shares cells with t.
func Zonk(t Type) Type {
	return Map(resolveHead(t), func(t Type) (Type, bool) {
		if h, ok := t.(Hole); ok {
			if _, bound := h.Var.Value(); bound {
				return Zonk(h), true
			}
		}
		return nil, false
	})
}

// Map rebuilds t bottom-up. For every node f is offered first; when it returns
// true its result replaces the node, otherwise the node is copied structurally
// and its children visited.
func Map(t Type, f func(Type) (Type, bool)) Type {
	if t == nil {
		return nil
	}
	if replacement, ok := f(t); ok {
		return replacement
	}
	switch typ := t.(type) {
	case Pair:
		return Pair{Elements: mapAll(typ.Elements, f)}
	case Tuple:
		return Tuple{Elements: mapAll(typ.Elements, f)}
	case Fun:
		return Fun{Domain: Map(typ.Domain, f), Codomain: Map(typ.Codomain, f)}
	case App:
		return App{Name: typ.Name, Argument: Map(typ.Argument, f)}
	case Local:
		return Local{Type: Map(typ.Type, f)}
	default:
		// Any, Constructor, Meta and Hole have no children
		return t
	}
}

func mapAll(types []Type, f func(Type) (Type, bool)) []Type {
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = Map(t, f)
	}
	return out
}

// Equal is semantic type equality: bound holes are looked through, and two
// unbound holes are equal only when they are the same cell.
func Equal(a, b Type) bool {
	a, b = resolveHead(a), resolveHead(b)
	switch x := a.(type) {
	case Any:
		_, ok := b.(Any)
		return ok
	case Pair:
		y, ok := b.(Pair)
		return ok && equalAll(x.Elements, y.Elements)
	case Tuple:
		y, ok := b.(Tuple)
		return ok && equalAll(x.Elements, y.Elements)
	case Fun:
		y, ok := b.(Fun)
		return ok && Equal(x.Domain, y.Domain) && Equal(x.Codomain, y.Codomain)
	case App:
		y, ok := b.(App)
		return ok && x.Name.Same(y.Name) && Equal(x.Argument, y.Argument)
	case Local:
		y, ok := b.(Local)
		return ok && Equal(x.Type, y.Type)
	case Constructor:
		y, ok := b.(Constructor)
		return ok && x.Name.Same(y.Name)
	case Meta:
		y, ok := b.(Meta)
		return ok && x.Index == y.Index
	case Hole:
		y, ok := b.(Hole)
		return ok && x.Var.Same(y.Var)
	}
	return false
}

func equalAll(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// occurs reports whether v is reachable from t through bound holes.
func occurs(v Variable, t Type) bool {
	for _, free := range t.FreeHoles() {
		if free.Same(v) {
			return true
		}
	}
	return false
}
