package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerVariables installs SET and SETG. The reader leaves <SET var val>
// and <SETG var val> as ordinary forms, so every assignment in source
// reaches the evaluator as an operator call dispatched here.
func registerVariables(r *Registry) {
	r.register("SET", opSet)
	r.register("SETG", opSetg)
}

func opSet(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.Nil, nil
	}
	val, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	ev.SetLocal(name, val)
	return val, nil
}

func opSetg(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.Nil, nil
	}
	val, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	ev.SetGlobal(name, val)
	return val, nil
}
