package lowering

import (
	"errors"
	"fmt"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/loc"
)

type UnresolvedVariableError struct {
	Name abstr.Identifier
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("unresolved variable %s", e.Name)
}

type UnresolvedConstructorError struct {
	Name abstr.Identifier
}

func (e *UnresolvedConstructorError) Error() string {
	return fmt.Sprintf("unresolved constructor %s", e.Name)
}

type UnresolvedTypeError struct {
	Name abstr.Identifier
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("unresolved type %s", e.Name)
}

// UnresolvedSymbolError is a failed general lookup. Each field is set when the
// lookup in that scope failed, so callers can tell the two apart.
type UnresolvedSymbolError struct {
	Constructor *UnresolvedConstructorError
	Variable    *UnresolvedVariableError
}

func (e *UnresolvedSymbolError) Error() string {
	switch {
	case e.Constructor != nil && e.Variable != nil:
		return fmt.Sprintf("unresolved symbol %s: not a constructor or a variable", e.Variable.Name)
	case e.Variable != nil:
		return e.Variable.Error()
	case e.Constructor != nil:
		return e.Constructor.Error()
	default:
		return "unresolved symbol"
	}
}

// Unwrap exposes both scope failures to errors.As.
func (e *UnresolvedSymbolError) Unwrap() []error {
	var errs []error
	if e.Constructor != nil {
		errs = append(errs, e.Constructor)
	}
	if e.Variable != nil {
		errs = append(errs, e.Variable)
	}
	return errs
}

// IncompatiblePatternTypeError is a pattern the case tree builder does not
// accept, such as a literal or a lambda.
type IncompatiblePatternTypeError struct {
	Loc     loc.Loc
	Pattern string
}

func (e *IncompatiblePatternTypeError) Error() string {
	return fmt.Sprintf("incompatible pattern type: %s can't be used as a pattern", e.Pattern)
}

// ApplicationPatternInConstructorError is a constructor pattern whose field is
// itself an application, as in `Some (Some x)`.
type ApplicationPatternInConstructorError struct {
	Loc         loc.Loc
	Constructor abstr.Identifier
}

func (e *ApplicationPatternInConstructorError) Error() string {
	return fmt.Sprintf("application pattern in constructor %s: nested constructor patterns are not supported", e.Constructor)
}

// BudgetExhaustedError is returned once lowering nests deeper than the
// recursion budget allows.
type BudgetExhaustedError struct {
	Budget int
}

func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("recursion budget of %d exhausted", e.Budget)
}

// errorCode maps a lowering error to its diagnostic code.
func errorCode(err error) diagnostics.ErrorCode {
	var (
		symbol      *UnresolvedSymbolError
		variable    *UnresolvedVariableError
		constructor *UnresolvedConstructorError
		typ         *UnresolvedTypeError
		pattern     *IncompatiblePatternTypeError
		application *ApplicationPatternInConstructorError
		budget      *BudgetExhaustedError
	)
	switch {
	case errors.As(err, &symbol):
		return diagnostics.ErrL004
	case errors.As(err, &variable):
		return diagnostics.ErrL001
	case errors.As(err, &constructor):
		return diagnostics.ErrL002
	case errors.As(err, &typ):
		return diagnostics.ErrL003
	case errors.As(err, &pattern):
		return diagnostics.ErrL005
	case errors.As(err, &application):
		return diagnostics.ErrL006
	case errors.As(err, &budget):
		return diagnostics.ErrL007
	default:
		return diagnostics.ErrL009
	}
}

// errorLoc is the location stored in err, if it has one.
func errorLoc(err error) loc.Loc {
	var (
		variable    *UnresolvedVariableError
		constructor *UnresolvedConstructorError
		typ         *UnresolvedTypeError
		pattern     *IncompatiblePatternTypeError
		application *ApplicationPatternInConstructorError
	)
	switch {
	case errors.As(err, &variable):
		return variable.Name.Loc
	case errors.As(err, &constructor):
		return constructor.Name.Loc
	case errors.As(err, &typ):
		return typ.Name.Loc
	case errors.As(err, &pattern):
		return pattern.Loc
	case errors.As(err, &application):
		return application.Loc
	}
	return loc.Loc{}
}
