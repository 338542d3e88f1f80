package typesystem

import (
	"fmt"
	"strings"
)

// Scheme is a polymorphic type: Mono with Args quantified slots, written as
// Meta(0) .. Meta(Args-1) inside Mono.
type Scheme struct {
	Args int
	Mono Type
}

// NewScheme wraps a type without quantifying anything.
func NewScheme(t Type) Scheme {
	return Scheme{Args: 0, Mono: t}
}

func (s Scheme) String() string {
	if s.Args == 0 {
		return s.Mono.String()
	}
	vars := make([]string, s.Args)
	for i := range vars {
		vars[i] = Meta{Index: i}.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(vars, " "), s.Mono)
}

// Instantiate opens the scheme with one fresh hole per slot. Holes produced by
// different calls are never shared.
func (s Scheme) Instantiate() Type {
	holes := make([]Type, s.Args)
	for i := range holes {
		holes[i] = NewHole()
	}
	return Map(s.Mono, func(t Type) (Type, bool) {
		if m, ok := t.(Meta); ok {
			if m.Index < 0 || m.Index >= len(holes) {
				panic(fmt.Sprintf("can't index holes: meta %d outside scheme of %d arguments", m.Index, s.Args))
			}
			return holes[m.Index], true
		}
		return nil, false
	})
}

// Generalize closes every unbound hole of t. Holes are numbered in first
// encounter order; copies of the same cell share one slot.
func Generalize(t Type) Scheme {
	return GeneralizeExcept(t, func(Variable) bool { return false })
}

// GeneralizeExcept is Generalize for a type checked under an environment:
// holes for which monomorphic reports true are still free in that environment
// and are left as holes. Only a Scheme from Generalize is guaranteed to hold
// no hole; one from GeneralizeExcept shares the environment's holes, so later
// unification against them is seen by every instance.
func GeneralizeExcept(t Type, monomorphic func(Variable) bool) Scheme {
	slots := make(map[*cell]int)
	mono := Map(Zonk(t), func(t Type) (Type, bool) {
		h, ok := t.(Hole)
		if !ok {
			return nil, false
		}
		if monomorphic(h.Var) {
			return h, true
		}
		idx, seen := slots[h.Var.cell]
		if !seen {
			idx = len(slots)
			slots[h.Var.cell] = idx
		}
		return Meta{Index: idx}, true
	})
	return Scheme{Args: len(slots), Mono: mono}
}
