// symbols/symbol_table.go - name resolution tables used while lowering
//
// A SymbolTable holds three independent scopes (variables, constructors and
// types). Tables nest: lookups fall through to the outer table, definitions
// always land in the innermost one.

package symbols

import (
	"sort"
	"sync"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/loc"
)

type SymbolKind int

type ScopeType int

const (
	ScopeBuiltin  ScopeType = iota // Built-in types
	ScopeGlobal                    // Top-level declarations
	ScopeFunction                  // fun parameters
	ScopeBlock                     // let bodies, match arms
)

const (
	VariableSymbol SymbolKind = iota
	ConstructorSymbol
	TypeSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case ConstructorSymbol:
		return "constructor"
	case TypeSymbol:
		return "type"
	default:
		return "symbol"
	}
}

type SymbolTable struct {
	mu        sync.RWMutex
	store     map[SymbolKind]map[string]*abstr.Definition
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store: map[SymbolKind]map[string]*abstr.Definition{
			VariableSymbol:    make(map[string]*abstr.Definition),
			ConstructorSymbol: make(map[string]*abstr.Definition),
			TypeSymbol:        make(map[string]*abstr.Definition),
		},
		scopeType: ScopeGlobal,
	}
}

// NewBuiltinTable creates a root table with one type definition per name.
func NewBuiltinTable(builtins []string) *SymbolTable {
	st := NewEmptySymbolTable()
	st.scopeType = ScopeBuiltin
	for _, name := range builtins {
		id := abstr.NewIdentifier(name, loc.Loc{})
		st.Define(TypeSymbol, id, abstr.NewDefinition(id, loc.Loc{}))
	}
	return st
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) ScopeType() ScopeType {
	return s.scopeType
}

// Define binds name in this table. An existing entry of the same kind is
// overwritten, which shadows it for later lookups.
func (s *SymbolTable) Define(kind SymbolKind, name abstr.Identifier, def *abstr.Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[kind][name.Key()] = def
}

// Find resolves name through this table and its outer tables.
func (s *SymbolTable) Find(kind SymbolKind, name abstr.Identifier) (*abstr.Definition, bool) {
	for st := s; st != nil; st = st.outer {
		st.mu.RLock()
		def, ok := st.store[kind][name.Key()]
		st.mu.RUnlock()
		if ok {
			return def, true
		}
	}
	return nil, false
}

// FindLocal resolves name in this table only.
func (s *SymbolTable) FindLocal(kind SymbolKind, name abstr.Identifier) (*abstr.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.store[kind][name.Key()]
	return def, ok
}

// Names lists every name of kind visible from this table, sorted.
func (s *SymbolTable) Names(kind SymbolKind) []string {
	seen := make(map[string]bool)
	for st := s; st != nil; st = st.outer {
		st.mu.RLock()
		for name := range st.store[kind] {
			seen[name] = true
		}
		st.mu.RUnlock()
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
