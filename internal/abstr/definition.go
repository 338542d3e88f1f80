package abstr

import (
	"sync"

	"github.com/aripiprazole/tinyml/internal/loc"
)

// Identifier is a name as written in the source.
type Identifier struct {
	Text string
	Loc  loc.Loc
}

// NewIdentifier creates an identifier at the given location.
func NewIdentifier(text string, l loc.Loc) Identifier {
	return Identifier{Text: text, Loc: l}
}

// Key is the scope lookup key. An occurrence of `x` must find the binding of
// `x` wherever it was written, so only the text takes part.
func (id Identifier) Key() string {
	return id.Text
}

func (id Identifier) String() string {
	return id.Text
}

// Definition is a binding site. Definitions are compared by pointer identity:
// two bindings of the same name are different definitions.
type Definition struct {
	Name Identifier
	Loc  loc.Loc

	mu         sync.Mutex
	references []loc.Loc
}

// NewDefinition allocates a binding site.
func NewDefinition(name Identifier, l loc.Loc) *Definition {
	return &Definition{Name: name, Loc: l}
}

// Refer creates a reference to d written at l and records the site.
func (d *Definition) Refer(l loc.Loc) Reference {
	d.mu.Lock()
	d.references = append(d.references, l)
	d.mu.Unlock()
	return Reference{Definition: d, Loc: l}
}

// References returns a snapshot of every site that referred to d so far.
func (d *Definition) References() []loc.Loc {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]loc.Loc, len(d.references))
	copy(out, d.references)
	return out
}

func (d *Definition) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.Name.Text
}

// Reference is a use of a definition.
type Reference struct {
	Definition *Definition
	Loc        loc.Loc
}

// Same reports whether both references resolve to the same definition.
func (r Reference) Same(other Reference) bool {
	return r.Definition == other.Definition
}

// Name returns the name of the referenced definition.
func (r Reference) Name() string {
	return r.Definition.String()
}

func (r Reference) String() string {
	return r.Name()
}
