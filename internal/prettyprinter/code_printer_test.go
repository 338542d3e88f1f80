package prettyprinter

import (
	"testing"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/hir"
	"github.com/aripiprazole/tinyml/internal/loc"
	"github.com/aripiprazole/tinyml/internal/typesystem"
)

func def(name string) *abstr.Definition {
	return abstr.NewDefinition(abstr.NewIdentifier(name, loc.Loc{}), loc.Loc{})
}

func term(kind hir.TermKind) *hir.Term {
	return hir.NewTerm(kind, loc.Loc{})
}

func ref(d *abstr.Definition) *hir.Term {
	return term(hir.Var{Ref: d.Refer(loc.Loc{})})
}

func app(fun *hir.Term, args ...*hir.Term) *hir.Term {
	for _, arg := range args {
		fun = term(hir.App{Fun: fun, Arg: arg})
	}
	return fun
}

func TestPrintTerm(t *testing.T) {
	f, g, x, s, a := def("f"), def("g"), def("x"), def("s"), def("a")
	one := term(hir.Int{Value: 1})

	tests := []struct {
		name string
		term *hir.Term
		want string
	}{
		{"literal", one, "1"},
		{"text", term(hir.Text{Value: loc.Text{Value: "a\"b"}}), `"a\"b"`},
		{"nested application", app(ref(f), app(ref(g), ref(x)), ref(x)), "f (g x) x"},
		{"lambda argument", app(ref(f), term(hir.Fun{Param: x, Body: ref(x)})), "f (fun x -> x)"},
		{"pair and list", term(hir.Pair{Elements: []*hir.Term{ref(x), term(hir.List{Elements: []*hir.Term{one}})}}), "(x, [1])"},
		{"unit", term(hir.Pair{}), "()"},
		{"if", term(hir.If{Cond: one, Then: ref(x), Otherwise: app(ref(f), ref(x))}), "if 1 then x else f x"},
		{"let", term(hir.Let{Binder: x, Value: one, Body: ref(x)}), "let x = 1 in\nx"},
		{"ascription", term(hir.Ascription{Term: ref(x), Scheme: typesystem.Generalize(func() typesystem.Type {
			h := typesystem.NewHole()
			return typesystem.Fun{Domain: h, Codomain: h}
		}())}), "(x : forall 'a. 'a -> 'a)"},
		{"failed match", term(hir.Match{Tree: hir.Failure{}}), "<failure>"},
		{"tuple match", term(hir.Match{Tree: hir.Branch{
			Occurrence: hir.OccurrenceVariable{Definition: s},
			Cases: []hir.Case{{
				Condition: hir.TupleCondition{Arity: 2, Binders: []*abstr.Definition{a, nil}},
				Tree:      hir.Leaf{Body: ref(a)},
			}},
			Default: hir.Leaf{Body: one},
		}}), "match s with\n    | (a, _) -> a\n    | _ -> 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrintTerm(tt.term); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConditionString(t *testing.T) {
	cons, n := def("Cons"), def("n")
	tests := []struct {
		condition hir.Condition
		want      string
	}{
		{hir.ConstructorCondition{Constructor: cons.Refer(loc.Loc{}), Projection: hir.NoProjection}, "Cons"},
		{hir.ConstructorCondition{Constructor: cons.Refer(loc.Loc{}), Projection: hir.NoProjection, Binders: []*abstr.Definition{n, nil}}, "Cons n _"},
		{hir.ConstructorCondition{Constructor: cons.Refer(loc.Loc{}), Projection: 0}, "Cons .0"},
		{hir.TupleCondition{Arity: 3}, "(_, _, _)"},
	}

	for _, tt := range tests {
		if got := conditionString(tt.condition); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestPrintProgram(t *testing.T) {
	list, elem := def("list"), def("a")
	typ := &hir.TypeDecl{Definition: list, Params: []*abstr.Definition{elem}}
	typ.Constructors = []*hir.ConstructorDecl{{Definition: def("Nil"), Type: typ}}

	main := &hir.ValueDecl{Definition: def("main"), Value: term(hir.Int{Value: 1})}
	annotated := typesystem.NewScheme(typesystem.Any{})
	pending := &hir.ValueDecl{Definition: def("later"), Annotation: &annotated}

	got := PrintProgram(&hir.Program{Types: []*hir.TypeDecl{typ}, Values: []*hir.ValueDecl{main, pending}})
	want := "type 'a list =\n    | Nil\nlet main =\n    1\nlet later : any = <???>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
