package concrete

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/loc"
	"gopkg.in/yaml.v3"
)

// SyntaxError reports a malformed interchange document.
type SyntaxError struct {
	Loc     loc.Loc
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

type document struct {
	Version string      `yaml:"version"`
	File    string      `yaml:"file"`
	Decls   []yaml.Node `yaml:"decls"`
}

// Decode reads a program from its YAML interchange form. Every mapping node
// becomes a position-wrapped node located at the mapping.
//
//	version: 1.0.0
//	decls:
//	  - let: main
//	    value: {let: x, value: 1, body: x}
func Decode(data []byte, file string) (*Program, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SyntaxError{Loc: loc.Loc{File: file}, Message: err.Error()}
	}
	if doc.File != "" {
		file = doc.File
	}
	if doc.Version == "" {
		return nil, &SyntaxError{Loc: loc.Loc{File: file, Line: 1, Column: 1}, Message: "missing version"}
	}

	d := &decoder{file: file}
	program := &Program{File: file, Version: doc.Version}
	for i := range doc.Decls {
		decl, err := d.decl(&doc.Decls[i])
		if err != nil {
			return nil, err
		}
		program.Decls = append(program.Decls, decl)
	}
	return program, nil
}

// DecodeTerm reads a single term, for tools and tests.
func DecodeTerm(data []byte, file string) (Term, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, &SyntaxError{Loc: loc.Loc{File: file}, Message: err.Error()}
	}
	d := &decoder{file: file}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		return d.term(n.Content[0])
	}
	return d.term(&n)
}

type decoder struct {
	file string
}

func (d *decoder) loc(n *yaml.Node) loc.Loc {
	return loc.Loc{File: d.file, Line: n.Line, Column: n.Column}
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &SyntaxError{Loc: d.loc(n), Message: fmt.Sprintf(format, args...)}
}

func (d *decoder) fields(n *yaml.Node) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "expected a mapping")
	}
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}
	return m, nil
}

func (d *decoder) required(n *yaml.Node, m map[string]*yaml.Node, key string) (*yaml.Node, error) {
	v, ok := m[key]
	if !ok {
		return nil, d.errorf(n, "missing key %q", key)
	}
	return v, nil
}

func (d *decoder) sequence(n *yaml.Node) ([]*yaml.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "expected a sequence")
	}
	return n.Content, nil
}

func (d *decoder) ident(n *yaml.Node) (abstr.Identifier, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return abstr.Identifier{}, d.errorf(n, "expected a name")
	}
	return abstr.NewIdentifier(n.Value, d.loc(n)), nil
}

func (d *decoder) decl(n *yaml.Node) (Decl, error) {
	m, err := d.fields(n)
	if err != nil {
		return nil, err
	}

	// A let may carry a "type" key of its own, so it is recognized first
	if nameNode, ok := m["let"]; ok {
		name, err := d.ident(nameNode)
		if err != nil {
			return nil, err
		}
		valueNode, err := d.required(n, m, "value")
		if err != nil {
			return nil, err
		}
		value, err := d.term(valueNode)
		if err != nil {
			return nil, err
		}
		decl := LetDecl{Name: name, Value: value, Loc: d.loc(n)}
		if typeNode, ok := m["type"]; ok {
			if decl.Type, err = d.typ(typeNode); err != nil {
				return nil, err
			}
		}
		return decl, nil
	}

	if nameNode, ok := m["type"]; ok {
		name, err := d.ident(nameNode)
		if err != nil {
			return nil, err
		}
		decl := TypeDecl{Name: name, Loc: d.loc(n)}
		if paramsNode, ok := m["params"]; ok {
			params, err := d.sequence(paramsNode)
			if err != nil {
				return nil, err
			}
			for _, p := range params {
				param, err := d.ident(p)
				if err != nil {
					return nil, err
				}
				param.Text = strings.TrimPrefix(param.Text, "'")
				decl.Params = append(decl.Params, param)
			}
		}
		if ctorsNode, ok := m["constructors"]; ok {
			ctors, err := d.sequence(ctorsNode)
			if err != nil {
				return nil, err
			}
			for _, c := range ctors {
				ctor, err := d.constructor(c)
				if err != nil {
					return nil, err
				}
				decl.Constructors = append(decl.Constructors, ctor)
			}
		}
		return decl, nil
	}

	return nil, d.errorf(n, "expected a type or let declaration")
}

func (d *decoder) constructor(n *yaml.Node) (ConstructorDecl, error) {
	if n.Kind == yaml.ScalarNode {
		name, err := d.ident(n)
		return ConstructorDecl{Name: name, Loc: d.loc(n)}, err
	}
	m, err := d.fields(n)
	if err != nil {
		return ConstructorDecl{}, err
	}
	nameNode, err := d.required(n, m, "name")
	if err != nil {
		return ConstructorDecl{}, err
	}
	name, err := d.ident(nameNode)
	if err != nil {
		return ConstructorDecl{}, err
	}
	ctor := ConstructorDecl{Name: name, Loc: d.loc(n)}
	if fieldsNode, ok := m["fields"]; ok {
		fields, err := d.sequence(fieldsNode)
		if err != nil {
			return ConstructorDecl{}, err
		}
		for _, f := range fields {
			field, err := d.typ(f)
			if err != nil {
				return ConstructorDecl{}, err
			}
			ctor.Fields = append(ctor.Fields, field)
		}
	}
	return ctor, nil
}

func (d *decoder) term(n *yaml.Node) (Term, error) {
	t, err := d.bareTerm(n)
	if err != nil {
		return nil, err
	}
	return SrcPos{Term: t, Loc: d.loc(n)}, nil
}

func (d *decoder) terms(n *yaml.Node) ([]Term, error) {
	items, err := d.sequence(n)
	if err != nil {
		return nil, err
	}
	out := make([]Term, 0, len(items))
	for _, item := range items {
		t, err := d.term(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (d *decoder) bareTerm(n *yaml.Node) (Term, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalarTerm(n)
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, "expected a term")
	}

	m, err := d.fields(n)
	if err != nil {
		return nil, err
	}

	switch {
	case m["int"] != nil:
		return d.integer(m["int"])
	case m["text"] != nil:
		return Text{Value: loc.Text{Value: m["text"].Value, Loc: d.loc(m["text"])}}, nil
	case m["var"] != nil:
		name, err := d.ident(m["var"])
		return Ident{Name: name}, err
	case m["let"] != nil:
		name, err := d.ident(m["let"])
		if err != nil {
			return nil, err
		}
		value, body, err := d.pair(n, m, "value", "body")
		return Let{Name: name, Value: value, Body: body}, err
	case m["fun"] != nil:
		param, err := d.ident(m["fun"])
		if err != nil {
			return nil, err
		}
		bodyNode, err := d.required(n, m, "body")
		if err != nil {
			return nil, err
		}
		body, err := d.term(bodyNode)
		return Fun{Param: param, Body: body}, err
	case m["app"] != nil:
		items, err := d.terms(m["app"])
		if err != nil {
			return nil, err
		}
		if len(items) < 2 {
			return nil, d.errorf(n, "app needs a function and at least one argument")
		}
		acc := items[0]
		for _, arg := range items[1:] {
			acc = App{Fun: acc, Arg: arg}
		}
		return acc, nil
	case m["if"] != nil:
		items, err := d.terms(m["if"])
		if err != nil {
			return nil, err
		}
		if len(items) != 3 {
			return nil, d.errorf(n, "if needs a condition and two branches, got %d terms", len(items))
		}
		return If{Cond: items[0], Then: items[1], Otherwise: items[2]}, nil
	case m["binop"] != nil:
		lhs, rhs, err := d.pair(n, m, "lhs", "rhs")
		return BinOp{LHS: lhs, Op: Op(m["binop"].Value), RHS: rhs}, err
	case m["tuple"] != nil:
		items, err := d.terms(m["tuple"])
		return Parens{Inner: Chain(Comma, items...)}, err
	case m["list"] != nil:
		items, err := d.terms(m["list"])
		return Brackets{Inner: Chain(Comma, items...)}, err
	case m["seq"] != nil:
		items, err := d.terms(m["seq"])
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, d.errorf(n, "empty sequence")
		}
		return Chain(Semi, items...), nil
	case m["ascribe"] != nil:
		inner, err := d.term(m["ascribe"])
		if err != nil {
			return nil, err
		}
		typeNode, err := d.required(n, m, "type")
		if err != nil {
			return nil, err
		}
		typ, err := d.typ(typeNode)
		return Ascription{Term: inner, Type: typ}, err
	case m["match"] != nil:
		return d.match(n, m)
	}

	return nil, d.errorf(n, "unknown term form")
}

func (d *decoder) scalarTerm(n *yaml.Node) (Term, error) {
	switch {
	case n.ShortTag() == "!!int":
		return d.integer(n)
	case n.Value == "_":
		return Wildcard{}, nil
	case n.ShortTag() == "!!str" && n.Value != "":
		return Ident{Name: abstr.NewIdentifier(n.Value, d.loc(n))}, nil
	}
	return nil, d.errorf(n, "unexpected scalar %q", n.Value)
}

func (d *decoder) integer(n *yaml.Node) (Term, error) {
	value, err := strconv.ParseInt(n.Value, 0, 64)
	if err != nil {
		return nil, d.errorf(n, "invalid integer %q", n.Value)
	}
	return Int{Value: value}, nil
}

func (d *decoder) pair(n *yaml.Node, m map[string]*yaml.Node, first, second string) (Term, Term, error) {
	a, err := d.required(n, m, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := d.required(n, m, second)
	if err != nil {
		return nil, nil, err
	}
	lhs, err := d.term(a)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := d.term(b)
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

func (d *decoder) match(n *yaml.Node, m map[string]*yaml.Node) (Term, error) {
	scrutinee, err := d.term(m["match"])
	if err != nil {
		return nil, err
	}
	armsNode, err := d.required(n, m, "arms")
	if err != nil {
		return nil, err
	}
	items, err := d.sequence(armsNode)
	if err != nil {
		return nil, err
	}
	match := Match{Scrutinee: scrutinee}
	for _, item := range items {
		am, err := d.fields(item)
		if err != nil {
			return nil, err
		}
		pattern, body, err := d.pair(item, am, "pattern", "body")
		if err != nil {
			return nil, err
		}
		match.Arms = append(match.Arms, Arm{Pattern: pattern, Body: body, Loc: d.loc(item)})
	}
	return match, nil
}

func (d *decoder) typ(n *yaml.Node) (Type, error) {
	t, err := d.bareType(n)
	if err != nil {
		return nil, err
	}
	return TypeSrcPos{Type: t, Loc: d.loc(n)}, nil
}

func (d *decoder) types(n *yaml.Node) ([]Type, error) {
	items, err := d.sequence(n)
	if err != nil {
		return nil, err
	}
	out := make([]Type, 0, len(items))
	for _, item := range items {
		t, err := d.typ(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (d *decoder) bareType(n *yaml.Node) (Type, error) {
	if n.Kind == yaml.ScalarNode {
		switch {
		case n.Value == "_":
			return TypeHole{}, nil
		case strings.HasPrefix(n.Value, "'") && len(n.Value) > 1:
			return TypeVar{Name: abstr.NewIdentifier(n.Value[1:], d.loc(n))}, nil
		case n.Value != "":
			return TypeName{Name: abstr.NewIdentifier(n.Value, d.loc(n))}, nil
		}
		return nil, d.errorf(n, "expected a type")
	}

	m, err := d.fields(n)
	if err != nil {
		return nil, err
	}
	switch {
	case m["fun"] != nil:
		items, err := d.types(m["fun"])
		if err != nil {
			return nil, err
		}
		if len(items) < 2 {
			return nil, d.errorf(n, "function type needs a domain and a codomain")
		}
		// [a, b, c] is a -> b -> c
		acc := items[len(items)-1]
		for i := len(items) - 2; i >= 0; i-- {
			acc = TypeFun{Domain: items[i], Codomain: acc}
		}
		return acc, nil
	case m["tuple"] != nil:
		items, err := d.types(m["tuple"])
		return TypeTuple{Elements: items}, err
	case m["pair"] != nil:
		items, err := d.types(m["pair"])
		return TypePair{Elements: items}, err
	case m["app"] != nil:
		name, err := d.ident(m["app"])
		if err != nil {
			return nil, err
		}
		argsNode, err := d.required(n, m, "args")
		if err != nil {
			return nil, err
		}
		args, err := d.types(argsNode)
		return TypeApp{Args: args, Name: name}, err
	}
	return nil, d.errorf(n, "unknown type form")
}
