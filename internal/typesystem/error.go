package typesystem

import (
	"errors"
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
)

// ErrUnification is matched by every error Unify returns.
var ErrUnification = errors.New("unification error")

// IncompatibleTypesError is returned when two types have different shapes.
type IncompatibleTypesError struct {
	Left  Type
	Right Type
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("incompatible types: %s and %s", e.Left, e.Right)
}

func (e *IncompatibleTypesError) Is(target error) bool {
	return target == ErrUnification
}

// IncompatibleConstructorsError is returned when two nominal types differ.
type IncompatibleConstructorsError struct {
	Left  abstr.Reference
	Right abstr.Reference
}

func (e *IncompatibleConstructorsError) Error() string {
	return fmt.Sprintf("incompatible constructors: %s and %s", e.Left.Name(), e.Right.Name())
}

func (e *IncompatibleConstructorsError) Is(target error) bool {
	return target == ErrUnification
}

// OccursCheckError is returned instead of binding a hole to a type that
// contains it, which would build an infinite type.
type OccursCheckError struct {
	Hole Variable
	Type Type
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("occurs check: infinite type %s ~ %s", Hole{Var: e.Hole}, e.Type)
}

func (e *OccursCheckError) Is(target error) bool {
	return target == ErrUnification
}
