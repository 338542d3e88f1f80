package typesystem

import (
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
)

// KindError reports a type constructor applied to the wrong number of
// arguments.
type KindError struct {
	Name     abstr.Reference
	Expected Kind
	Got      int
}

func (e *KindError) Error() string {
	arity := Arity(e.Expected)
	switch {
	case arity == 0:
		return fmt.Sprintf("kind mismatch: type %s takes no arguments, got %d", e.Name.Name(), e.Got)
	case arity == 1:
		return fmt.Sprintf("kind mismatch: type %s expects 1 argument, got %d", e.Name.Name(), e.Got)
	default:
		return fmt.Sprintf("kind mismatch: type %s expects %d arguments, got %d", e.Name.Name(), arity, e.Got)
	}
}

// UnifyKinds attempts to unify two kinds.
// There are no kind variables, so this is an equality check.
func UnifyKinds(k1, k2 Kind) error {
	if k1.Equal(k2) {
		return nil
	}
	return fmt.Errorf("kind mismatch: expected %s, got %s", k1, k2)
}

// KindCheck validates that t is a proper type. kindOf gives the kind of a
// named type; applications pack several arguments into one Tuple, so
// `('k, 'v) map` passes two arguments to map.
func KindCheck(t Type, kindOf func(abstr.Reference) Kind) (Kind, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot check kind of nil type")
	}

	switch typ := resolveHead(t).(type) {
	case Constructor:
		k := kindOf(typ.Name)
		if err := UnifyKinds(Star, k); err != nil {
			return nil, &KindError{Name: typ.Name, Expected: k, Got: 0}
		}
		return Star, nil
	case App:
		return checkAppKind(typ, kindOf)
	case Pair:
		return Star, checkElementKinds(typ.Elements, kindOf)
	case Tuple:
		return Star, checkElementKinds(typ.Elements, kindOf)
	case Fun:
		if _, err := KindCheck(typ.Domain, kindOf); err != nil {
			return nil, err
		}
		if _, err := KindCheck(typ.Codomain, kindOf); err != nil {
			return nil, err
		}
		return Star, nil
	case Local:
		return KindCheck(typ.Type, kindOf)
	default:
		// Any, Meta and Hole stand for proper types
		return Star, nil
	}
}

func checkElementKinds(elements []Type, kindOf func(abstr.Reference) Kind) error {
	for _, elem := range elements {
		if _, err := KindCheck(elem, kindOf); err != nil {
			return err
		}
	}
	return nil
}

func checkAppKind(t App, kindOf func(abstr.Reference) Kind) (Kind, error) {
	kCtor := kindOf(t.Name)
	if _, ok := kCtor.(KWildcard); ok {
		return Star, checkElementKinds([]Type{t.Argument}, kindOf)
	}

	args := []Type{t.Argument}
	if tuple, ok := resolveHead(t.Argument).(Tuple); ok && Arity(kCtor) != 1 {
		args = tuple.Elements
	}

	currKind := kCtor
	for _, arg := range args {
		kArg, err := KindCheck(arg, kindOf)
		if err != nil {
			return nil, err
		}
		arrow, ok := currKind.(KArrow)
		if !ok {
			return nil, &KindError{Name: t.Name, Expected: kCtor, Got: len(args)}
		}
		if !arrow.Left.Equal(kArg) {
			return nil, fmt.Errorf("kind mismatch in application: expected argument of kind %s, got %s", arrow.Left, kArg)
		}
		currKind = arrow.Right
	}
	if err := UnifyKinds(Star, currKind); err != nil {
		return nil, &KindError{Name: t.Name, Expected: kCtor, Got: len(args)}
	}
	return currKind, nil
}
