package macro

import "github.com/dekarrin/zil/internal/zilast"

var arithOps = map[zilast.Atom]bool{
	zilast.Intern("+"): true,
	zilast.Intern("-"): true,
	zilast.Intern("*"): true,
	zilast.Intern("/"): true,
}

// expandPercentEval expands the nested form's macros first (the built-in
// and user-macro catalog still applies inside %<...>), then attempts
// compile-time arithmetic folding. If folding succeeds the PercentEval
// collapses to a literal NumberNode; otherwise it's left as a PercentEval
// wrapping the expanded form, to be evaluated identically to the form
// itself at runtime.
func (e *Expander) expandPercentEval(pe *zilast.PercentEval, depth int) (zilast.Node, error) {
	expandedInner, err := e.expandNode(pe.Form, depth+1)
	if err != nil {
		return nil, err
	}

	if n, ok := foldArithmetic(expandedInner); ok {
		return n, nil
	}

	return &zilast.PercentEval{Form: expandedInner}, nil
}

// foldArithmetic attempts to evaluate n as compile-time integer arithmetic.
// It succeeds only when n is already a NumberNode, or a Form whose operator
// is +, -, *, / and every argument folds successfully (recursively).
// Division by zero and any non-arithmetic/non-literal operand make the node
// non-foldable.
func foldArithmetic(n zilast.Node) (*zilast.NumberNode, bool) {
	switch v := n.(type) {
	case *zilast.NumberNode:
		return v, true

	case *zilast.Form:
		op, ok := v.OperatorAtom()
		if !ok || !arithOps[op] {
			return nil, false
		}

		operands := make([]int, 0, len(v.Args))
		for _, a := range v.Args {
			folded, ok := foldArithmetic(a)
			if !ok {
				return nil, false
			}
			operands = append(operands, folded.Value)
		}

		result, ok := applyArith(op, operands)
		if !ok {
			return nil, false
		}
		return &zilast.NumberNode{Value: result}, true

	default:
		return nil, false
	}
}

func applyArith(op zilast.Atom, operands []int) (int, bool) {
	switch op {
	case zilast.Intern("+"):
		sum := 0
		for _, o := range operands {
			sum += o
		}
		return sum, true

	case zilast.Intern("*"):
		product := 1
		for _, o := range operands {
			product *= o
		}
		return product, true

	case zilast.Intern("-"):
		if len(operands) == 0 {
			return 0, true
		}
		if len(operands) == 1 {
			return -operands[0], true
		}
		result := operands[0]
		for _, o := range operands[1:] {
			result -= o
		}
		return result, true

	case zilast.Intern("/"):
		if len(operands) == 0 {
			return 0, true
		}
		if len(operands) == 1 {
			if operands[0] == 0 {
				return 0, false
			}
			return 1 / operands[0], true
		}
		result := operands[0]
		for _, o := range operands[1:] {
			if o == 0 {
				return 0, false
			}
			result /= o
		}
		return result, true

	default:
		return 0, false
	}
}
