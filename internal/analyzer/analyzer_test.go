package analyzer

import (
	"testing"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/config"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/lowering"
)

// inferTerm lowers and checks a single YAML term.
func inferTerm(t *testing.T, src string, opts ...func(*lowering.Context)) (string, []*diagnostics.DiagnosticError) {
	t.Helper()
	term, err := concrete.DecodeTerm([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ctx := lowering.New()
	for _, opt := range opts {
		opt(ctx)
	}
	lowered := ctx.LowerTerm(term)
	scheme := New(ctx.Scope(), ctx.Sink()).Infer(lowered)
	return scheme.String(), ctx.Diagnostics()
}

// analyzeProgram lowers and checks a YAML program.
func analyzeProgram(t *testing.T, src string) (*hir.Program, []*diagnostics.DiagnosticError) {
	t.Helper()
	doc, err := concrete.Decode([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ctx := lowering.New()
	program := ctx.LowerProgram(doc)
	return program, New(ctx.Scope(), ctx.Sink()).Analyze(program)
}

func codes(diags []*diagnostics.DiagnosticError) []diagnostics.ErrorCode {
	out := make([]diagnostics.ErrorCode, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func declareList(ctx *lowering.Context) {
	ctx.NewType(abstr.NewIdentifier(config.ListTypeName, loc.Loc{}))
}

func TestInferTerms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int", "1", "int"},
		{"text", "{text: hello}", "string"},
		{"identity", "{fun: x, body: x}", "forall 'a. 'a -> 'a"},
		{"const", "{fun: x, body: {fun: y, body: x}}", "forall 'a 'b. 'a -> 'b -> 'a"},
		{"application", "{app: [{fun: x, body: x}, 1]}", "int"},
		{"let polymorphism", `
let: id
value: {fun: x, body: x}
body: {tuple: [{app: [id, 1]}, {app: [id, {text: a}]}]}
`, "int * string"},
		{"unit", "{tuple: []}", "unit"},
		{"if", "{if: [1, {text: a}, {text: b}]}", "string"},
		{"sequence", "{seq: [1, {text: a}]}", "string"},
		{"user name spelled like a discard", "{let: _1, value: 5, body: {seq: [{text: a}, _1]}}", "int"},
		{"ascription", "{ascribe: {fun: x, body: x}, type: {fun: [int, int]}}", "int -> int"},
		{"match binder", "{match: 1, arms: [{pattern: n, body: {tuple: [n, n]}}]}", "int * int"},
		{"tuple pattern", "{match: {tuple: [1, {text: a}]}, arms: [{pattern: {tuple: [a, b]}, body: {tuple: [b, a]}}]}", "string * int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := inferTerm(t, tt.src)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInferErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diagnostics.ErrorCode
	}{
		{"lambda bound is monomorphic", `
fun: f
body: {tuple: [{app: [f, 1]}, {app: [f, {text: a}]}]}
`, diagnostics.ErrT002},
		{"self application", "{fun: x, body: {app: [x, x]}}", diagnostics.ErrT003},
		{"branches differ", "{if: [1, 1, {text: a}]}", diagnostics.ErrT002},
		{"bad ascription", "{ascribe: 1, type: string}", diagnostics.ErrT002},
		{"apply a non function", "{app: [1, 2]}", diagnostics.ErrT001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := inferTerm(t, tt.src)
			if len(diags) != 1 || diags[0].Code != tt.want {
				t.Errorf("got %v, want one %s", codes(diags), tt.want)
			}
		})
	}
}

func TestInferList(t *testing.T) {
	got, diags := inferTerm(t, "{list: [1, 2]}", declareList)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got != "int list" {
		t.Errorf("got %s, want int list", got)
	}

	got, diags = inferTerm(t, "{tuple: [{list: [1]}, {list: []}]}")
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrL003 {
		t.Errorf("missing list type should be reported once, got %v", codes(diags))
	}
	if got != "any * any" {
		t.Errorf("got %s, want any * any", got)
	}
}

func TestUnresolvedNamesDoNotCascade(t *testing.T) {
	_, diags := inferTerm(t, "{app: [missing, 1]}")
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrL004 {
		t.Errorf("got %v, want only the lowering diagnostic", codes(diags))
	}
}

const optionSource = `
version: 1.0.0
decls:
  - type: option
    params: ["'a"]
    constructors:
      - None
      - name: Some
        fields: ["'a"]
`

func TestAnalyzeMatch(t *testing.T) {
	program, diags := analyzeProgram(t, optionSource+`
  - let: get
    value:
      fun: o
      body:
        match: o
        arms:
          - {pattern: None, body: 0}
          - {pattern: {app: [Some, n]}, body: n}
  - let: wrap
    value: {fun: x, body: {app: [Some, x]}}
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := map[string]string{
		"get":  "int option -> int",
		"wrap": "forall 'a. 'a -> 'a option",
	}
	for _, value := range program.Values {
		if got := value.Scheme.String(); got != want[value.Definition.Name.Text] {
			t.Errorf("%s: got %s, want %s", value.Definition, got, want[value.Definition.Name.Text])
		}
	}
}

func TestAnalyzeConstructorArity(t *testing.T) {
	_, diags := analyzeProgram(t, optionSource+`
  - let: bad
    value:
      fun: o
      body:
        match: o
        arms:
          - {pattern: Some, body: 0}
`)
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrT004 {
		t.Errorf("got %v, want one %s", codes(diags), diagnostics.ErrT004)
	}
}

func TestAnalyzeForwardReferenceAndRecursion(t *testing.T) {
	program, diags := analyzeProgram(t, `
version: 1.0.0
decls:
  - let: main
    value: {app: [helper, 1]}
  - let: helper
    value: {fun: x, body: x}
  - let: loop
    value: {fun: x, body: {app: [loop, x]}}
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []string{"int", "int -> int", "forall 'a 'b. 'a -> 'b"}
	for i, value := range program.Values {
		if got := value.Scheme.String(); got != want[i] {
			t.Errorf("%s: got %s, want %s", value.Definition, got, want[i])
		}
	}
}

func TestAnalyzeAnnotation(t *testing.T) {
	program, diags := analyzeProgram(t, `
version: 1.0.0
decls:
  - let: f
    type: {fun: [int, int]}
    value: {fun: x, body: x}
  - let: g
    type: string
    value: 1
`)
	if got := program.Values[0].Scheme.String(); got != "int -> int" {
		t.Errorf("f: got %s, want int -> int", got)
	}
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrT002 {
		t.Errorf("got %v, want one %s for g", codes(diags), diagnostics.ErrT002)
	}
}

func TestKindMismatch(t *testing.T) {
	_, diags := inferTerm(t, "{ascribe: 1, type: {app: int, args: [int]}}")
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrT005 {
		t.Errorf("got %v, want one %s", codes(diags), diagnostics.ErrT005)
	}

	program, diags := analyzeProgram(t, optionSource+`
      - name: Both
        fields: [{app: int, args: ["'a"]}]
  - let: none
    type: option
    value: None
`)
	if got := codes(diags); len(got) != 2 || got[0] != diagnostics.ErrT005 || got[1] != diagnostics.ErrT005 {
		t.Fatalf("got %v, want the constructor and the annotation reported", got)
	}
	if got := program.Values[0].Scheme.String(); got != "forall 'a. 'a option" {
		t.Errorf("rejected annotation should not constrain the value, got %s", got)
	}
}

// nestedMatch checks `let s = value in match` over a hand-built tree, since the
// case tree builder only produces flat branches.
func nestedMatch(t *testing.T, value func(*lowering.Context) *hir.Term, tree func(s *abstr.Definition) hir.CaseTree) (string, []diagnostics.ErrorCode) {
	t.Helper()
	ctx := lowering.New()
	s := ctx.NewFreshVariable()
	match := hir.NewTerm(hir.Match{Tree: tree(s)}, loc.Loc{})
	term := hir.NewTerm(hir.Let{Binder: s, Value: value(ctx), Body: match}, loc.Loc{})
	scheme := New(ctx.Scope(), ctx.Sink()).Infer(term)
	return scheme.String(), codes(ctx.Diagnostics())
}

func TestNestedOccurrences(t *testing.T) {
	integer := func(n int64) *hir.Term { return hir.NewTerm(hir.Int{Value: n}, loc.Loc{}) }
	text := func(s string) *hir.Term { return hir.NewTerm(hir.Text{Value: loc.Text{Value: s}}, loc.Loc{}) }
	pair := func(elements ...*hir.Term) *hir.Term { return hir.NewTerm(hir.Pair{Elements: elements}, loc.Loc{}) }
	under := func(s *abstr.Definition, arity int, inner hir.CaseTree) hir.CaseTree {
		return hir.Branch{
			Occurrence: hir.OccurrenceVariable{Definition: s},
			Cases:      []hir.Case{{Condition: hir.TupleCondition{Arity: arity}, Tree: inner}},
		}
	}

	tests := []struct {
		name  string
		value func(*lowering.Context) *hir.Term
		tree  func(s *abstr.Definition) hir.CaseTree
		want  string
		codes []diagnostics.ErrorCode
	}{
		{
			name:  "index is typed by the parent tuple",
			value: func(*lowering.Context) *hir.Term { return pair(integer(1), integer(2)) },
			tree: func(s *abstr.Definition) hir.CaseTree {
				return under(s, 2, hir.Branch{
					Occurrence: hir.OccurrenceIndex{Index: 0},
					Cases:      []hir.Case{{Condition: hir.TupleCondition{Arity: 3}, Tree: hir.Leaf{Body: integer(0)}}},
				})
			},
			want:  "int",
			codes: []diagnostics.ErrorCode{diagnostics.ErrT001},
		},
		{
			name:  "index binders get the field types",
			value: func(*lowering.Context) *hir.Term { return pair(pair(integer(1), text("a")), integer(2)) },
			tree: func(s *abstr.Definition) hir.CaseTree {
				x := abstr.NewDefinition(abstr.NewIdentifier("x", loc.Loc{}), loc.Loc{})
				y := abstr.NewDefinition(abstr.NewIdentifier("y", loc.Loc{}), loc.Loc{})
				body := hir.NewTerm(hir.Var{Ref: y.Refer(loc.Loc{})}, loc.Loc{})
				return under(s, 2, hir.Branch{
					Occurrence: hir.OccurrenceIndex{Index: 0},
					Cases: []hir.Case{{
						Condition: hir.TupleCondition{Arity: 2, Binders: []*abstr.Definition{x, y}},
						Tree:      hir.Leaf{Body: body},
					}},
				})
			},
			want: "string",
		},
		{
			name:  "index outside any condition",
			value: func(*lowering.Context) *hir.Term { return integer(1) },
			tree: func(*abstr.Definition) hir.CaseTree {
				return hir.Branch{Occurrence: hir.OccurrenceIndex{Index: 0}, Default: hir.Leaf{Body: integer(0)}}
			},
			want:  "int",
			codes: []diagnostics.ErrorCode{diagnostics.ErrT004},
		},
		{
			name:  "tuple component of a non-tuple field",
			value: func(*lowering.Context) *hir.Term { return pair(integer(1), integer(2)) },
			tree: func(s *abstr.Definition) hir.CaseTree {
				return under(s, 2, hir.Branch{
					Occurrence: hir.OccurrenceTuple{Outer: 1, Inner: 0},
					Default:    hir.Leaf{Body: integer(0)},
				})
			},
			want:  "int",
			codes: []diagnostics.ErrorCode{diagnostics.ErrT004},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := nestedMatch(t, tt.value, tt.tree)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if len(diags) != len(tt.codes) {
				t.Fatalf("got diagnostics %v, want %v", diags, tt.codes)
			}
			for i := range diags {
				if diags[i] != tt.codes[i] {
					t.Errorf("diagnostic %d: got %s, want %s", i, diags[i], tt.codes[i])
				}
			}
		})
	}
}

func TestConstructorProjectionOutOfRange(t *testing.T) {
	program, _ := analyzeProgram(t, optionSource)
	var some *hir.ConstructorDecl
	for _, c := range program.Types[0].Constructors {
		if c.Definition.Name.Text == "Some" {
			some = c
		}
	}
	if some == nil {
		t.Fatalf("option should declare Some")
	}

	ctx := lowering.New()
	s := ctx.NewFreshVariable()
	a := New(ctx.Scope(), ctx.Sink())
	a.Bind(some.Definition, some.Scheme)

	tree := hir.Branch{
		Occurrence: hir.OccurrenceVariable{Definition: s},
		Cases: []hir.Case{{
			Condition: hir.ConstructorCondition{Constructor: some.Definition.Refer(loc.Loc{}), Projection: 1},
			Tree:      hir.Leaf{Body: hir.NewTerm(hir.Int{Value: 0}, loc.Loc{})},
		}},
	}
	a.Infer(hir.NewTerm(hir.Match{Tree: tree}, loc.Loc{}))

	got := codes(ctx.Diagnostics())
	if len(got) == 0 || got[0] != diagnostics.ErrT004 {
		t.Errorf("got %v, want a T004 for the projection", got)
	}
}
