package typesystem

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/config"
)

// Type is the interface for all HIR types. A monomorphic type seen during
// inference may contain holes but never a Meta; a Scheme body is the opposite.
type Type interface {
	String() string
	FreeHoles() []Variable
	typeNode()
}

// Any is the dynamic type. It unifies with everything and binds nothing.
type Any struct{}

func (Any) String() string         { return "any" }
func (Any) FreeHoles() []Variable { return nil }

// Pair represents `'a * 'b`.
type Pair struct {
	Elements []Type
}

func (t Pair) String() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = wrapArrow(el)
	}
	return strings.Join(parts, " * ")
}

func (t Pair) FreeHoles() []Variable {
	return freeHolesOf(t.Elements...)
}

// Tuple represents `('a, 'b)`.
type Tuple struct {
	Elements []Type
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t Tuple) FreeHoles() []Variable {
	return freeHolesOf(t.Elements...)
}

// Fun represents `'a -> 'b`.
type Fun struct {
	Domain   Type
	Codomain Type
}

func (t Fun) String() string {
	return fmt.Sprintf("%s -> %s", wrapArrow(t.Domain), t.Codomain.String())
}

func (t Fun) FreeHoles() []Variable {
	return freeHolesOf(t.Domain, t.Codomain)
}

// App is a one argument application of a named type. Several arguments are
// packed into a tuple: `('a, 'b) hashmap` is App{hashmap, ('a, 'b)}.
type App struct {
	Name     abstr.Reference
	Argument Type
}

func (t App) String() string {
	return fmt.Sprintf("%s %s", wrapArrow(t.Argument), t.Name.Name())
}

func (t App) FreeHoles() []Variable {
	return t.Argument.FreeHoles()
}

// Local marks a value that a later phase checks for linear use.
type Local struct {
	Type Type
}

func (t Local) String() string {
	return fmt.Sprintf("%s local", wrapArrow(t.Type))
}

func (t Local) FreeHoles() []Variable {
	return t.Type.FreeHoles()
}

// Constructor is a nominal type such as `int`.
type Constructor struct {
	Name abstr.Reference
}

func (t Constructor) String() string         { return t.Name.Name() }
func (t Constructor) FreeHoles() []Variable { return nil }

// Meta is the index of a quantified slot of the enclosing Scheme.
type Meta struct {
	Index int
}

func (t Meta) String() string {
	if t.Index < 26 {
		return "'" + string(rune('a'+t.Index))
	}
	return fmt.Sprintf("'t%d", t.Index)
}

func (t Meta) FreeHoles() []Variable { return nil }

// Hole is a unification variable. Every copy of a Hole shares its Variable.
type Hole struct {
	Var Variable
}

// NewHole returns a hole over a fresh, unbound variable.
func NewHole() Hole {
	return Hole{Var: NewVariable()}
}

func (t Hole) String() string {
	if value, ok := t.Var.Value(); ok {
		return value.String()
	}
	// Normalize hole ids so test output is deterministic
	if config.IsTestMode {
		return "?"
	}
	return fmt.Sprintf("?%d", t.Var.ID())
}

func (t Hole) FreeHoles() []Variable {
	if value, ok := t.Var.Value(); ok {
		return value.FreeHoles()
	}
	return []Variable{t.Var}
}

func (Any) typeNode()         {}
func (Pair) typeNode()        {}
func (Tuple) typeNode()       {}
func (Fun) typeNode()         {}
func (App) typeNode()         {}
func (Local) typeNode()       {}
func (Constructor) typeNode() {}
func (Meta) typeNode()        {}
func (Hole) typeNode()        {}

var nextVariableID atomic.Uint64

type cell struct {
	mu    sync.RWMutex
	id    uint64
	value Type
}

// Variable is a shared mutable unification cell. Copies of a Variable observe
// the same binding. Identity is the cell, never the bound value.
type Variable struct {
	cell *cell
}

// NewVariable allocates an unbound cell.
func NewVariable() Variable {
	return Variable{cell: &cell{id: nextVariableID.Add(1)}}
}

// ID is a process-unique identifier of the cell, stable for its lifetime.
func (v Variable) ID() uint64 {
	return v.cell.id
}

// Value returns the bound type, if any.
func (v Variable) Value() (Type, bool) {
	v.cell.mu.RLock()
	defer v.cell.mu.RUnlock()
	return v.cell.value, v.cell.value != nil
}

// Update binds the cell.
func (v Variable) Update(value Type) {
	v.cell.mu.Lock()
	v.cell.value = value
	v.cell.mu.Unlock()
}

// Same reports whether both variables are the same cell.
func (v Variable) Same(other Variable) bool {
	return v.cell == other.cell
}

func wrapArrow(t Type) string {
	switch resolveHead(t).(type) {
	case Fun, Pair:
		return "(" + t.String() + ")"
	}
	return t.String()
}

func freeHolesOf(types ...Type) []Variable {
	var vars []Variable
	for _, t := range types {
		vars = append(vars, t.FreeHoles()...)
	}
	return uniqueVariables(vars)
}

func uniqueVariables(vars []Variable) []Variable {
	if len(vars) < 2 {
		return vars
	}
	seen := make(map[*cell]bool, len(vars))
	out := vars[:0:0]
	for _, v := range vars {
		if !seen[v.cell] {
			seen[v.cell] = true
			out = append(out, v)
		}
	}
	return out
}
