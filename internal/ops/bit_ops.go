package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerBitOps installs BAND/BOR/BTST. MAPRET, despite living in the
// teacher's equivalent bit_ops file, is a MAPF control signal and is
// handled by the evaluator alongside AGAIN/MAPSTOP/RETURN.
func registerBitOps(r *Registry) {
	r.register("BAND", opBand)
	r.register("BOR", opBor)
	r.register("BTST", opBtst)
}

func opBand(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.NewNumber(0), err
	}
	return zilast.NewNumber(vs[0].Num() & vs[1].Num()), nil
}

func opBor(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.NewNumber(0), err
	}
	return zilast.NewNumber(vs[0].Num() | vs[1].Num()), nil
}

func opBtst(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	return boolVal((vs[0].Num() & vs[1].Num()) != 0), nil
}
