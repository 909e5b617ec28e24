package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerLogic installs NOT. AND/OR are short-circuiting special forms
// handled directly by the evaluator (they need to stop evaluating as soon
// as the result is known, same as COND/PROG/REPEAT), not plain operations.
func registerLogic(r *Registry) {
	r.register("NOT", opNot)
}

func opNot(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	return boolVal(!v.Truthy()), nil
}
