package eval

import "github.com/dekarrin/zil/internal/zilast"

// CallRoutine looks up name in the world's routine table and invokes it
// with already-evaluated args, for operations (PERFORM, APPLY, GOTO, MAPF)
// that dispatch to a routine dynamically rather than through a direct
// <ROUTINE-NAME ...> form.
func (e *Evaluator) CallRoutine(name zilast.Atom, args []zilast.Value) (zilast.Value, error) {
	r, ok := e.world.Routine(name)
	if !ok {
		return zilast.Nil, nil
	}
	return e.invoke(r, args)
}

// invoke implements the call protocol: a fresh lexical scope is created and
// parameters are bound into it per their category, the caller's scope stack
// is saved and restored around the call (routine calls never see the
// caller's locals), the body is evaluated in sequence, and a RETURN/RTRUE/
// RFALSE signal is caught here and converted into the call's result.
func (e *Evaluator) invoke(r *zilast.Routine, args []zilast.Value) (zilast.Value, error) {
	savedScopes := e.scopes
	frame := make(map[zilast.Atom]zilast.Value)
	e.scopes = []map[zilast.Atom]zilast.Value{frame}
	defer func() { e.scopes = savedScopes }()

	argIdx := 0
	for _, p := range r.Params {
		switch p.Kind {
		case zilast.ParamRequired:
			if argIdx < len(args) {
				frame[p.Name] = args[argIdx]
				argIdx++
			} else {
				frame[p.Name] = zilast.Nil
			}
		case zilast.ParamOptional:
			if argIdx < len(args) {
				frame[p.Name] = args[argIdx]
				argIdx++
			} else if p.Default != nil {
				v, err := e.Eval(p.Default)
				if err != nil {
					return zilast.Nil, err
				}
				frame[p.Name] = v
			} else {
				frame[p.Name] = zilast.Nil
			}
		case zilast.ParamAux:
			if p.Default != nil {
				v, err := e.Eval(p.Default)
				if err != nil {
					return zilast.Nil, err
				}
				frame[p.Name] = v
			} else {
				frame[p.Name] = zilast.Nil
			}
		case zilast.ParamArgs:
			if argIdx < len(args) {
				rest := append([]zilast.Value(nil), args[argIdx:]...)
				frame[p.Name] = zilast.NewList(rest)
				argIdx = len(args)
			} else {
				frame[p.Name] = zilast.NewList(nil)
			}
		}
	}

	var result zilast.Value
	for _, expr := range r.Body {
		v, err := e.Eval(expr)
		if err != nil {
			if sig, ok := asSignal(err, signalReturn); ok {
				return sig.value, nil
			}
			return zilast.Nil, err
		}
		result = v
	}
	return result, nil
}
