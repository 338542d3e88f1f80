package lowering

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/google/uuid"
)

func id(name string) abstr.Identifier {
	return abstr.NewIdentifier(name, loc.Loc{})
}

func TestShadowing(t *testing.T) {
	ctx := New()
	first := ctx.NewVariable(id("x"))
	ref := first.Refer(loc.Loc{Line: 1, Column: 1})
	second := ctx.NewVariable(id("x"))

	got, err := ctx.LookupVariable(id("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != second {
		t.Errorf("lookup should resolve to the shadowing definition")
	}
	if ref.Definition != first || len(first.References()) != 1 {
		t.Errorf("references of the shadowed definition changed")
	}
}

func TestFreshVariablesAreUnique(t *testing.T) {
	ctx := New()
	seen := make(map[string]bool)
	scope := ctx
	for i := 0; i < 10000; i++ {
		if i%1000 == 0 {
			scope = scope.Fork()
		}
		def := scope.NewFreshVariable()
		if seen[def.Name.Text] {
			t.Fatalf("fresh name %s repeated after %d allocations", def.Name.Text, i)
		}
		seen[def.Name.Text] = true
	}
	if !seen["_1"] || !seen["_10000"] {
		t.Errorf("fresh names should run from _1 to _10000")
	}
}

func TestFreshVariableIsInScope(t *testing.T) {
	ctx := New()
	ctx.SetPos(loc.Loc{File: "a.yaml", Line: 3, Column: 4})
	def := ctx.NewFreshVariable()
	got, err := ctx.LookupVariable(def.Name)
	if err != nil || got != def {
		t.Errorf("got %v, %v; want the fresh definition", got, err)
	}
	if def.Loc != ctx.Pos() {
		t.Errorf("got loc %s, want %s", def.Loc, ctx.Pos())
	}
}

func TestBuiltinTypes(t *testing.T) {
	ctx := New()
	for _, name := range []string{"int", "string", "unit", "local"} {
		if _, err := ctx.LookupType(id(name)); err != nil {
			t.Errorf("built-in type %s: %v", name, err)
		}
	}

	only := New(WithBuiltins([]string{"int"}))
	_, err := only.LookupType(id("string"))
	var unresolved *UnresolvedTypeError
	if !errors.As(err, &unresolved) {
		t.Errorf("got %v, want UnresolvedTypeError", err)
	}
}

func TestForkScoping(t *testing.T) {
	ctx := New()
	child := ctx.Fork()
	x := child.NewVariable(id("x"))
	if _, err := ctx.LookupVariable(id("x")); err == nil {
		t.Errorf("child definitions must not leak into the parent")
	}
	if got, _ := child.Fork().LookupVariable(id("x")); got != x {
		t.Errorf("grandchild should see the child's definitions")
	}

	child.Report(errors.New("boom"))
	if len(ctx.Diagnostics()) != 1 {
		t.Errorf("forks should share the diagnostic sink")
	}
}

func TestLookup(t *testing.T) {
	ctx := New()
	cons := ctx.NewConstructor(id("Nil"))
	ctx.NewVariable(id("Nil"))
	x := ctx.NewVariable(id("x"))

	if got, err := ctx.Lookup(id("Nil")); err != nil || got != cons {
		t.Errorf("constructors should win over variables, got %v", got)
	}
	if got, err := ctx.Lookup(id("x")); err != nil || got != x {
		t.Errorf("got %v, %v; want variable x", got, err)
	}

	_, err := ctx.Lookup(id("y"))
	var symbol *UnresolvedSymbolError
	if !errors.As(err, &symbol) {
		t.Fatalf("got %v, want UnresolvedSymbolError", err)
	}
	if symbol.Constructor == nil || symbol.Variable == nil {
		t.Errorf("both failed lookups should be recorded, got %+v", symbol)
	}
	var variable *UnresolvedVariableError
	var constructor *UnresolvedConstructorError
	if !errors.As(err, &variable) || !errors.As(err, &constructor) {
		t.Errorf("symbol error should unwrap to both scope errors")
	}
}

func TestReportCodes(t *testing.T) {
	tests := []struct {
		err  error
		want diagnostics.ErrorCode
	}{
		{&UnresolvedVariableError{Name: id("x")}, diagnostics.ErrL001},
		{&UnresolvedConstructorError{Name: id("C")}, diagnostics.ErrL002},
		{&UnresolvedTypeError{Name: id("t")}, diagnostics.ErrL003},
		{&UnresolvedSymbolError{Variable: &UnresolvedVariableError{Name: id("x")}}, diagnostics.ErrL004},
		{&IncompatiblePatternTypeError{Pattern: "lambda"}, diagnostics.ErrL005},
		{&ApplicationPatternInConstructorError{Constructor: id("Some")}, diagnostics.ErrL006},
		{&BudgetExhaustedError{Budget: 1}, diagnostics.ErrL007},
		{errors.New("other"), diagnostics.ErrL009},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			unit := uuid.New()
			ctx := New(WithUnit(unit))
			ctx.SetPos(loc.Loc{Line: 7, Column: 2})
			ctx.Report(tt.err)

			diags := ctx.Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(diags))
			}
			d := diags[0]
			if d.Code != tt.want {
				t.Errorf("got code %s, want %s", d.Code, tt.want)
			}
			if d.Unit != unit {
				t.Errorf("diagnostic not stamped with the unit id")
			}
			if d.Loc.Line != 7 {
				t.Errorf("got loc %s, want the current position", d.Loc)
			}
			if !errors.Is(d, tt.err) {
				t.Errorf("diagnostic should wrap the reported error")
			}
		})
	}
}

func TestOrNone(t *testing.T) {
	ctx := New()
	if v, ok := OrNone(ctx, 42, nil); !ok || v != 42 {
		t.Errorf("got %d, %v; want 42, true", v, ok)
	}
	if v, ok := OrNone(ctx, 42, errors.New("nope")); ok || v != 0 {
		t.Errorf("got %d, %v; want 0, false", v, ok)
	}
	if len(ctx.Diagnostics()) != 1 {
		t.Errorf("failure should be recorded")
	}
}

func TestSepBy(t *testing.T) {
	a, b, c := concrete.Int{Value: 1}, concrete.Int{Value: 2}, concrete.Int{Value: 3}
	tests := []struct {
		name    string
		desired concrete.Op
		term    concrete.Term
		want    int
	}{
		{"chain", concrete.Comma, concrete.Chain(concrete.Comma, a, b, c), 3},
		{"wrapped chain", concrete.Comma, concrete.SrcPos{Term: concrete.Chain(concrete.Comma, a, b, c)}, 3},
		{"single", concrete.Comma, a, 1},
		{"other operator", concrete.Semi, concrete.Chain(concrete.Comma, a, b), 1},
		{"stops at mismatch", concrete.Comma, concrete.BinOp{LHS: a, Op: concrete.Comma, RHS: concrete.BinOp{LHS: b, Op: concrete.Semi, RHS: c}}, 2},
		{"nil", concrete.Comma, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().SepBy(tt.desired, tt.term)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d operands, want %d: %#v", len(got), tt.want, got)
			}
		})
	}
}

func TestSepByKeepsOrder(t *testing.T) {
	got, _ := New().SepBy(concrete.Comma, concrete.Chain(concrete.Comma, concrete.Int{Value: 1}, concrete.Int{Value: 2}, concrete.Int{Value: 3}))
	for i, term := range got {
		if n := term.(concrete.Int); n.Value != int64(i+1) {
			t.Errorf("operand %d = %d, want %d", i, n.Value, i+1)
		}
	}
}

func TestSepByBudget(t *testing.T) {
	ctx := New(WithBudget(1))
	ctx.state.depth = 1

	_, err := ctx.SepBy(concrete.Comma, concrete.Int{Value: 1})
	var budget *BudgetExhaustedError
	if !errors.As(err, &budget) {
		t.Fatalf("got %v, want BudgetExhaustedError", err)
	}
	if budget.Budget != 1 {
		t.Errorf("got budget %d, want 1", budget.Budget)
	}

	ctx.state.depth = 0
	if _, err := ctx.SepBy(concrete.Comma, concrete.Int{Value: 1}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if ctx.state.depth != 0 {
		t.Errorf("SepBy should give its budget back, depth = %d", ctx.state.depth)
	}
}

func TestBudgetExhaustedIsReported(t *testing.T) {
	var term concrete.Term = concrete.Int{Value: 0}
	for i := 0; i < 50; i++ {
		term = concrete.Let{Name: id(fmt.Sprintf("x%d", i)), Value: concrete.Int{Value: 1}, Body: term}
	}

	ctx := New(WithBudget(10))
	if out := ctx.LowerTerm(term); out == nil {
		t.Fatalf("lowering should still produce a term")
	}
	var found bool
	for _, d := range ctx.Diagnostics() {
		var budget *BudgetExhaustedError
		if d.Code == diagnostics.ErrL007 && errors.As(d, &budget) {
			found = true
		}
	}
	if !found {
		t.Errorf("budget exhaustion was not reported: %v", ctx.Diagnostics())
	}
	if ctx.state.depth != 0 {
		t.Errorf("depth = %d after lowering, want 0", ctx.state.depth)
	}
}
