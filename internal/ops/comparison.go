package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerComparison installs L?/</G?/>/<=/>=/==/EQUAL?/ZERO?/DLESS?.
// EQUAL? accepts any number of comparands and reports true if any matches
// the first; DLESS? decrements a global by one then compares.
func registerComparison(r *Registry) {
	r.register("L?", opLess)
	r.register("<", opLess)
	r.register("G?", opGreater)
	r.register(">", opGreater)
	r.register("<=", opLessEqual)
	r.register(">=", opGreaterEqual)
	r.register("==", opNumEqual)
	r.register("=?", opNumEqual)
	r.register("EQUAL?", opEqual)
	r.register("ZERO?", opZero)
	r.register("DLESS?", opDless)
	r.register("IGRTR?", opIgrtr)
	r.register("=", opAssignEqual)
}

func opLess(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	return boolVal(vs[0].Num() < vs[1].Num()), nil
}

func opGreater(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	return boolVal(vs[0].Num() > vs[1].Num()), nil
}

func opLessEqual(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	return boolVal(vs[0].Num() <= vs[1].Num()), nil
}

func opGreaterEqual(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	return boolVal(vs[0].Num() >= vs[1].Num()), nil
}

func opNumEqual(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	for _, v := range vs[1:] {
		if v.Num() != vs[0].Num() {
			return zilast.False, nil
		}
	}
	return zilast.True, nil
}

func opEqual(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) < 2 {
		return zilast.False, err
	}
	for _, v := range vs[1:] {
		if vs[0].Equal(v) {
			return zilast.True, nil
		}
	}
	return zilast.False, nil
}

func opZero(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	return boolVal(v.IsZero()), nil
}

func opDless(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.False, nil
	}
	cur, _ := ev.Global(name)
	newVal := cur.Num() - 1
	ev.SetGlobal(name, zilast.NewNumber(newVal))
	test, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	return boolVal(newVal < test), nil
}

// opAssignEqual is the bare "=" equality test. The reader does not treat
// "=" specially; any <= a b> form reaches this operation.
func opAssignEqual(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	v1, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	v2, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	return boolVal(v1.Equal(v2)), nil
}

// opIgrtr mirrors DLESS? but increments and tests greater-than.
func opIgrtr(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.False, nil
	}
	cur, _ := ev.Global(name)
	newVal := cur.Num() + 1
	ev.SetGlobal(name, zilast.NewNumber(newVal))
	test, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	return boolVal(newVal > test), nil
}
