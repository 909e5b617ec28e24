package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerInterruptOps installs QUEUE, ENABLE, DISABLE, and DEQUEUE, all
// delegating to the evaluator's interrupt scheduler.
func registerInterruptOps(r *Registry) {
	r.register("QUEUE", opQueue)
	r.register("ENABLE", opEnable)
	r.register("DISABLE", opDisable)
	r.register("DEQUEUE", opDequeue)
}

func opQueue(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.Nil, nil
	}
	turns, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	id := ev.Interrupts().Queue(name, turns)
	return zilast.NewNumber(id), nil
}

func opEnable(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.True, nil
	}
	ev.Interrupts().Enable(name)
	return zilast.True, nil
}

func opDisable(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.True, nil
	}
	ev.Interrupts().Disable(name)
	return zilast.True, nil
}

func opDequeue(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	id, err := numArg(args, 0, ev)
	if err != nil {
		return zilast.Nil, err
	}
	ev.Interrupts().Dequeue(id)
	return zilast.True, nil
}
