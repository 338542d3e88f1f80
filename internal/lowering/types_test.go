package lowering

import (
	"testing"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/concrete"
	"github.com/aripiprazole/tinyml/internal/diagnostics"
)

func TestLowerType(t *testing.T) {
	tests := []struct {
		name  string
		typ   concrete.Type
		check func(t *testing.T, typ abstr.Type)
	}{
		{"name", concrete.TypeName{Name: id("int")}, func(t *testing.T, typ abstr.Type) {
			if c, ok := typ.(abstr.Constructor); !ok || c.Name.Name() != "int" {
				t.Errorf("got %#v, want Constructor(int)", typ)
			}
		}},
		{"variable", concrete.TypeVar{Name: id("a")}, func(t *testing.T, typ abstr.Type) {
			if m, ok := typ.(abstr.Meta); !ok || m.Name.Text != "a" {
				t.Errorf("got %#v, want Meta(a)", typ)
			}
		}},
		{"local", concrete.TypeApp{Name: id("local"), Args: []concrete.Type{concrete.TypeName{Name: id("int")}}}, func(t *testing.T, typ abstr.Type) {
			if _, ok := typ.(abstr.Local); !ok {
				t.Errorf("got %#v, want Local", typ)
			}
		}},
		{"application", concrete.TypeApp{Name: id("list"), Args: []concrete.Type{concrete.TypeVar{Name: id("a")}}}, func(t *testing.T, typ abstr.Type) {
			app, ok := typ.(abstr.App)
			if !ok || app.Name.Name() != "list" {
				t.Fatalf("got %#v, want App(list)", typ)
			}
			if _, ok := app.Argument.(abstr.Meta); !ok {
				t.Errorf("argument = %#v, want Meta", app.Argument)
			}
		}},
		{"several arguments", concrete.TypeApp{Name: id("map"), Args: []concrete.Type{concrete.TypeVar{Name: id("k")}, concrete.TypeVar{Name: id("v")}}}, func(t *testing.T, typ abstr.Type) {
			app := typ.(abstr.App)
			if tuple, ok := app.Argument.(abstr.Tuple); !ok || len(tuple.Elements) != 2 {
				t.Errorf("argument = %#v, want a 2-tuple", app.Argument)
			}
		}},
		{"function", concrete.TypeFun{Domain: concrete.TypeName{Name: id("int")}, Codomain: concrete.TypeHole{}}, func(t *testing.T, typ abstr.Type) {
			fun, ok := typ.(abstr.Fun)
			if !ok {
				t.Fatalf("got %#v, want Fun", typ)
			}
			if _, ok := fun.Codomain.(abstr.Hole); !ok {
				t.Errorf("codomain = %#v, want Hole", fun.Codomain)
			}
		}},
		{"pair", concrete.TypePair{Elements: []concrete.Type{concrete.TypeName{Name: id("int")}, concrete.TypeName{Name: id("string")}}}, func(t *testing.T, typ abstr.Type) {
			if pair, ok := typ.(abstr.Pair); !ok || len(pair.Elements) != 2 {
				t.Errorf("got %#v, want a pair", typ)
			}
		}},
		{"position", concrete.TypeSrcPos{Type: concrete.TypeName{Name: id("unit")}}, func(t *testing.T, typ abstr.Type) {
			pos, ok := typ.(abstr.SrcPos)
			if !ok {
				t.Fatalf("got %#v, want SrcPos", typ)
			}
			if _, ok := pos.Type.(abstr.Constructor); !ok {
				t.Errorf("inner = %#v, want Constructor", pos.Type)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := New()
			ctx.NewType(id("list"))
			ctx.NewType(id("map"))
			typ := ctx.LowerType(tt.typ)
			if len(ctx.Diagnostics()) != 0 {
				t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics())
			}
			tt.check(t, typ)
		})
	}
}

func TestLowerTypeUnresolved(t *testing.T) {
	ctx := New()
	typ := ctx.LowerType(concrete.TypeFun{Domain: concrete.TypeName{Name: id("bool")}, Codomain: concrete.TypeName{Name: id("int")}})

	if fun := typ.(abstr.Fun); fun.Domain != (abstr.Hole{}) {
		t.Errorf("unresolved type should become a hole, got %#v", fun.Domain)
	}
	diags := ctx.Diagnostics()
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrL003 {
		t.Errorf("got %v, want one %s diagnostic", diags, diagnostics.ErrL003)
	}
}
