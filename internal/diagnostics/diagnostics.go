package diagnostics

import (
	"fmt"
	"sync"

	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/google/uuid"
)

type ErrorCode string

// Lowering errors
const (
	ErrL001 ErrorCode = "L001" // Unresolved variable
	ErrL002 ErrorCode = "L002" // Unresolved constructor
	ErrL003 ErrorCode = "L003" // Unresolved type
	ErrL004 ErrorCode = "L004" // Unresolved symbol (neither constructor nor variable)
	ErrL005 ErrorCode = "L005" // Incompatible pattern type
	ErrL006 ErrorCode = "L006" // Application pattern in constructor
	ErrL007 ErrorCode = "L007" // Recursion budget exhausted
	ErrL008 ErrorCode = "L008" // Malformed concrete syntax
	ErrL009 ErrorCode = "L009" // Other lowering failure
)

// Type errors
const (
	ErrT001 ErrorCode = "T001" // Incompatible types
	ErrT002 ErrorCode = "T002" // Incompatible constructors
	ErrT003 ErrorCode = "T003" // Occurs check
	ErrT004 ErrorCode = "T004" // Other unification failure
	ErrT005 ErrorCode = "T005" // Type constructor applied to the wrong number of arguments
)

// DiagnosticError is one source-located report.
type DiagnosticError struct {
	Code    ErrorCode
	Loc     loc.Loc
	Message string
	Err     error     // Underlying typed error, if any
	Unit    uuid.UUID // Compilation unit that produced the report
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: error[%s]: %s", e.Loc, e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error {
	return e.Err
}

// NewError creates a diagnostic without an underlying error.
func NewError(code ErrorCode, l loc.Loc, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Loc: l, Message: message}
}

// Wrap creates a diagnostic around a typed error, using its message.
func Wrap(code ErrorCode, l loc.Loc, err error) *DiagnosticError {
	return &DiagnosticError{Code: code, Loc: l, Message: err.Error(), Err: err}
}

// Sink is the shared, append-only diagnostic list of one compilation unit.
type Sink struct {
	mu   sync.Mutex
	unit uuid.UUID
	errs []*DiagnosticError
}

// NewSink creates a sink that stamps every report with unit.
func NewSink(unit uuid.UUID) *Sink {
	return &Sink{unit: unit}
}

// Unit returns the compilation unit id of the sink.
func (s *Sink) Unit() uuid.UUID {
	return s.unit
}

// Report appends a diagnostic.
func (s *Sink) Report(d *DiagnosticError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Unit == uuid.Nil {
		d.Unit = s.unit
	}
	s.errs = append(s.errs, d)
}

// Errors returns the diagnostics in report order.
func (s *Sink) Errors() []*DiagnosticError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*DiagnosticError, len(s.errs))
	copy(out, s.errs)
	return out
}

// Len returns the number of diagnostics reported so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}
