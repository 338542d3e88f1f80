package lowering

import "github.com/aripiprazole/tinyml/internal/concrete"

// SepBy flattens a chain of desired operators into its operands:
// `a, b, c` gives [a, b, c]. One outer position wrapper is stripped first.
// Scanning stops at the first node that is not a desired BinOp, and that node
// is the last operand.
func (c *Context) SepBy(desired concrete.Op, term concrete.Term) ([]concrete.Term, error) {
	leave, err := c.enter()
	if err != nil {
		return nil, err
	}
	defer leave()

	if term == nil {
		return nil, nil
	}
	if pos, ok := term.(concrete.SrcPos); ok {
		term = pos.Term
	}

	var terms []concrete.Term
	for {
		op, ok := term.(concrete.BinOp)
		if !ok || op.Op != desired {
			break
		}
		terms = append(terms, op.LHS)
		term = op.RHS
	}
	return append(terms, term), nil
}
