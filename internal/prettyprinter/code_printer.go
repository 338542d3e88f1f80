package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/aripiprazole/tinyml/internal/abstr"
	"github.com/aripiprazole/tinyml/internal/hir"
)

// --- Code Printer (Output looks like source code) ---

// Precedence of term positions (higher = binds tighter)
const (
	precTop  = iota // let, fun, if, match
	precApp         // f x
	precAtom        // literals, variables, brackets
)

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	column int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// PrintTerm renders a single term.
func PrintTerm(term *hir.Term) string {
	p := NewCodePrinter()
	p.printTerm(term, precTop)
	return p.String()
}

// PrintProgram renders every declaration of a program, values with their
// schemes when they have been checked.
func PrintProgram(program *hir.Program) string {
	p := NewCodePrinter()
	for _, typ := range program.Types {
		p.printTypeDecl(typ)
		p.writeln()
	}
	for _, value := range program.Values {
		p.printValueDecl(value)
		p.writeln()
	}
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *CodePrinter) newline() {
	p.writeln()
	p.writeIndent()
}

func (p *CodePrinter) printTypeDecl(typ *hir.TypeDecl) {
	p.write("type ")
	switch len(typ.Params) {
	case 0:
	case 1:
		p.write("'" + typ.Params[0].Name.Text + " ")
	default:
		names := make([]string, len(typ.Params))
		for i, param := range typ.Params {
			names[i] = "'" + param.Name.Text
		}
		p.write("(" + strings.Join(names, ", ") + ") ")
	}
	p.write(typ.Definition.Name.Text)
	p.write(" =")
	p.indent++
	for _, cons := range typ.Constructors {
		p.newline()
		p.write("| " + cons.Definition.Name.Text)
		if cons.Scheme.Mono != nil {
			p.write(" : " + cons.Scheme.String())
		}
	}
	p.indent--
}

func (p *CodePrinter) printValueDecl(value *hir.ValueDecl) {
	p.write("let " + value.Definition.Name.Text)
	if value.Scheme.Mono != nil {
		p.write(" : " + value.Scheme.String())
	} else if value.Annotation != nil {
		p.write(" : " + value.Annotation.String())
	}
	p.write(" =")
	if value.Value == nil {
		p.write(" <???>")
		return
	}
	p.indent++
	p.newline()
	p.printTerm(value.Value, precTop)
	p.indent--
}

// printTerm prints a term, adding parentheses only if needed
func (p *CodePrinter) printTerm(term *hir.Term, prec int) {
	if term == nil {
		p.write("<???>")
		return
	}
	needParens := termPrecedence(term) < prec
	if needParens {
		p.write("(")
	}

	switch n := term.Value.(type) {
	case hir.Int:
		p.write(strconv.FormatInt(n.Value, 10))
	case hir.Text:
		p.write(strconv.Quote(n.Value.Value))
	case hir.Var:
		p.write(n.Ref.Name())
	case hir.List:
		p.write("[")
		p.printTerms(n.Elements)
		p.write("]")
	case hir.Pair:
		p.write("(")
		p.printTerms(n.Elements)
		p.write(")")
	case hir.Fun:
		p.write("fun " + n.Param.Name.Text + " -> ")
		p.printTerm(n.Body, precTop)
	case hir.App:
		p.printTerm(n.Fun, precApp)
		p.write(" ")
		p.printTerm(n.Arg, precAtom)
	case hir.If:
		p.write("if ")
		p.printTerm(n.Cond, precTop)
		p.write(" then ")
		p.printTerm(n.Then, precTop)
		p.write(" else ")
		p.printTerm(n.Otherwise, precTop)
	case hir.Let:
		p.write("let " + n.Binder.Name.Text + " = ")
		p.printTerm(n.Value, precTop)
		p.write(" in")
		p.newline()
		p.printTerm(n.Body, precTop)
	case hir.Ascription:
		p.write("(")
		p.printTerm(n.Term, precTop)
		p.write(" : " + n.Scheme.String() + ")")
	case hir.Match:
		p.printTree(n.Tree)
	default:
		p.write("<???>")
	}

	if needParens {
		p.write(")")
	}
}

func termPrecedence(term *hir.Term) int {
	switch term.Value.(type) {
	case hir.App:
		return precApp
	case hir.Fun, hir.If, hir.Let, hir.Match:
		return precTop
	default:
		return precAtom
	}
}

func (p *CodePrinter) printTerms(terms []*hir.Term) {
	for i, term := range terms {
		if i > 0 {
			p.write(", ")
		}
		p.printTerm(term, precTop)
	}
}

// printTree prints a case tree as nested match expressions
func (p *CodePrinter) printTree(tree hir.CaseTree) {
	switch t := tree.(type) {
	case hir.Leaf:
		p.printTerm(t.Body, precTop)
	case hir.Branch:
		p.write("match " + occurrenceString(t.Occurrence) + " with")
		p.indent++
		for _, c := range t.Cases {
			p.newline()
			p.write("| " + conditionString(c.Condition) + " -> ")
			p.printTree(c.Tree)
		}
		if t.Default != nil {
			p.newline()
			p.write("| _ -> ")
			p.printTree(t.Default)
		}
		p.indent--
	default:
		p.write("<failure>")
	}
}

func occurrenceString(o hir.Occurrence) string {
	switch o := o.(type) {
	case hir.OccurrenceVariable:
		return o.Definition.Name.Text
	case hir.OccurrenceTerm:
		return PrintTerm(o.Term)
	case hir.OccurrenceIndex:
		return fmt.Sprintf(".%d", o.Index)
	case hir.OccurrenceTuple:
		return fmt.Sprintf("%d.%d", o.Outer, o.Inner)
	default:
		return "<???>"
	}
}

func conditionString(c hir.Condition) string {
	switch c := c.(type) {
	case hir.ConstructorCondition:
		var sb strings.Builder
		sb.WriteString(c.Constructor.Name())
		for _, binder := range c.Binders {
			sb.WriteString(" " + binderName(binder))
		}
		if c.Projection != hir.NoProjection {
			fmt.Fprintf(&sb, " .%d", c.Projection)
		}
		return sb.String()
	case hir.TupleCondition:
		names := make([]string, c.Arity)
		for i := range names {
			if i < len(c.Binders) {
				names[i] = binderName(c.Binders[i])
			} else {
				names[i] = "_"
			}
		}
		return "(" + strings.Join(names, ", ") + ")"
	default:
		return "<???>"
	}
}

func binderName(def *abstr.Definition) string {
	if def == nil {
		return "_"
	}
	return def.Name.Text
}
