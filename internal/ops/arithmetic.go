package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerArithmetic installs +, -, *, /, and MOD. Non-numeric operands
// coerce to zero via Value.Num() rather than raising, matching documented
// source behavior for arithmetic robustness.
func registerArithmetic(r *Registry) {
	r.register("+", opAdd)
	r.register("-", opSub)
	r.register("*", opMul)
	r.register("/", opDiv)
	r.register("MOD", opMod)
}

func opAdd(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	sum := 0
	for _, v := range vs {
		sum += v.Num()
	}
	return zilast.NewNumber(sum), nil
}

func opSub(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	switch len(vs) {
	case 0:
		return zilast.NewNumber(0), nil
	case 1:
		return zilast.NewNumber(-vs[0].Num()), nil
	default:
		result := vs[0].Num()
		for _, v := range vs[1:] {
			result -= v.Num()
		}
		return zilast.NewNumber(result), nil
	}
}

func opMul(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	product := 1
	for _, v := range vs {
		product *= v.Num()
	}
	return zilast.NewNumber(product), nil
}

func opDiv(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	switch len(vs) {
	case 0:
		return zilast.NewNumber(0), nil
	case 1:
		return vs[0], nil
	default:
		result := vs[0].Num()
		for _, v := range vs[1:] {
			if v.Num() != 0 {
				result = result / v.Num()
			}
		}
		return zilast.NewNumber(result), nil
	}
}

func opMod(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	if len(vs) < 2 {
		if len(vs) == 1 {
			return vs[0], nil
		}
		return zilast.NewNumber(0), nil
	}
	divisor := vs[1].Num()
	if divisor == 0 {
		return zilast.NewNumber(vs[0].Num()), nil
	}
	return zilast.NewNumber(vs[0].Num() % divisor), nil
}
