package typesystem

// Unify makes lhs and rhs equal by binding unbound holes reachable from either
// side. It is effectful: bindings performed before a mismatch is found in a
// sibling component are kept.
//
// Rules are tried in order; the first that matches wins.
func Unify(lhs, rhs Type) error {
	if isAny(lhs) || isAny(rhs) {
		return nil
	}

	switch l := lhs.(type) {
	case Local:
		if r, ok := rhs.(Local); ok {
			return Unify(l.Type, r.Type)
		}
	case Constructor:
		if r, ok := rhs.(Constructor); ok && l.Name.Same(r.Name) {
			return nil
		}
	case App:
		if r, ok := rhs.(App); ok {
			if !l.Name.Same(r.Name) {
				return &IncompatibleConstructorsError{Left: l.Name, Right: r.Name}
			}
			return Unify(l.Argument, r.Argument)
		}
	case Fun:
		if r, ok := rhs.(Fun); ok {
			if err := Unify(l.Domain, r.Domain); err != nil {
				return err
			}
			return Unify(l.Codomain, r.Codomain)
		}
	case Pair:
		if r, ok := rhs.(Pair); ok {
			return unifyElements(l.Elements, r.Elements)
		}
	case Tuple:
		if r, ok := rhs.(Tuple); ok {
			return unifyElements(l.Elements, r.Elements)
		}
	}

	if h, ok := lhs.(Hole); ok {
		return bind(h.Var, rhs)
	}
	if h, ok := rhs.(Hole); ok {
		return bind(h.Var, lhs)
	}

	if l, ok := lhs.(Constructor); ok {
		if r, ok := rhs.(Constructor); ok {
			return &IncompatibleConstructorsError{Left: l.Name, Right: r.Name}
		}
	}

	return &IncompatibleTypesError{Left: lhs, Right: rhs}
}

// unifyElements pairs elements by position. The shorter side decides how many
// pairs are compared; extra elements are ignored.
func unifyElements(lhs, rhs []Type) error {
	n := min(len(lhs), len(rhs))
	for i := 0; i < n; i++ {
		if err := Unify(lhs[i], rhs[i]); err != nil {
			return err
		}
	}
	return nil
}

// bind binds v to t, or unifies its current value with t when v is already bound.
func bind(v Variable, t Type) error {
	if contents, bound := v.Value(); bound {
		return Unify(contents, t)
	}

	// Binding a hole to itself would make it cyclic
	if h, ok := resolveHead(t).(Hole); ok && h.Var.Same(v) {
		return nil
	}
	if occurs(v, t) {
		return &OccursCheckError{Hole: v, Type: t}
	}

	v.Update(t)
	return nil
}

func isAny(t Type) bool {
	_, ok := t.(Any)
	return ok
}
