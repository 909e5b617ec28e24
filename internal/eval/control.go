package eval

import "github.com/dekarrin/zil/internal/zilast"

// signalKind distinguishes the flavors of non-local control transfer that
// unwind through the ordinary (Value, error) return channel rather than a
// runtime panic.
type signalKind int

const (
	signalReturn  signalKind = iota // RETURN/RTRUE/RFALSE: unwinds to the enclosing routine call
	signalAgain                     // AGAIN: restarts the enclosing REPEAT's body
	signalMapStop                   // MAPSTOP: ends the enclosing MAPF early, contributing no further items
	signalMapRet                    // MAPRET: contributes one value to the enclosing MAPF's result list
)

// signal is a distinguished error carrying a non-local control transfer.
// It is caught at the boundary that owns the corresponding construct
// (routine calls for signalReturn, REPEAT for signalAgain, MAPF for
// signalMapStop/signalMapRet) and re-raised (by returning it unchanged) at
// every intermediate frame that doesn't own that boundary.
type signal struct {
	kind  signalKind
	value zilast.Value
}

func (s *signal) Error() string { return "non-local control transfer" }

// asSignal reports whether err is a *signal of the given kind.
func asSignal(err error, kind signalKind) (*signal, bool) {
	s, ok := err.(*signal)
	if !ok || s.kind != kind {
		return nil, false
	}
	return s, true
}

// evalCond evaluates each clause (a List whose head is the test) in order,
// returning the last value of the first clause whose test is truthy.
// Clauses with no body expressions evaluate to their test's own value (the
// COND-as-OR idiom).
func (e *Evaluator) evalCond(clauses []zilast.Node) (zilast.Value, error) {
	for _, c := range clauses {
		lst, ok := c.(*zilast.List)
		if !ok || len(lst.Elements) == 0 {
			continue
		}
		test, err := e.Eval(lst.Elements[0])
		if err != nil {
			return zilast.Nil, err
		}
		if !test.Truthy() {
			continue
		}
		if len(lst.Elements) == 1 {
			return test, nil
		}
		result := test
		for _, body := range lst.Elements[1:] {
			result, err = e.Eval(body)
			if err != nil {
				return zilast.Nil, err
			}
		}
		return result, nil
	}
	return zilast.False, nil
}

// evalProg opens a new lexical frame, binds the (possibly empty) bindings
// list, evaluates the body in sequence, and returns the last value.
// Bindings are evaluated left to right in the new frame, so later bindings
// can refer to earlier ones (LET*-style).
func (e *Evaluator) evalProg(args []zilast.Node) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.Nil, nil
	}
	pop := e.pushScope()
	defer pop()

	if err := e.bindProgLocals(args[0]); err != nil {
		return zilast.Nil, err
	}

	var result zilast.Value
	for _, expr := range args[1:] {
		v, err := e.Eval(expr)
		if err != nil {
			return zilast.Nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) bindProgLocals(bindings zilast.Node) error {
	lst, ok := bindings.(*zilast.List)
	if !ok {
		return nil
	}
	frame := e.scopes[len(e.scopes)-1]
	for _, b := range lst.Elements {
		switch bn := b.(type) {
		case *zilast.AtomNode:
			frame[bn.Name] = zilast.Nil
		case *zilast.LocalRef:
			frame[bn.Name] = zilast.Nil
		case *zilast.List:
			if len(bn.Elements) == 0 {
				continue
			}
			name, ok := nameOf(bn.Elements[0])
			if !ok {
				continue
			}
			if len(bn.Elements) == 1 {
				frame[name] = zilast.Nil
				continue
			}
			v, err := e.Eval(bn.Elements[1])
			if err != nil {
				return err
			}
			frame[name] = v
		}
	}
	return nil
}

// evalRepeat loops its body indefinitely in a fresh lexical frame (binding
// like PROG) until a non-local exit fires: AGAIN restarts the body from the
// top without re-initializing bindings, any other signal or error escapes
// to the caller (RETURN/RTRUE/RFALSE unwind all the way to the enclosing
// routine call).
func (e *Evaluator) evalRepeat(args []zilast.Node) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.Nil, nil
	}
	pop := e.pushScope()
	defer pop()

	if err := e.bindProgLocals(args[0]); err != nil {
		return zilast.Nil, err
	}
	body := args[1:]

	for {
		for _, expr := range body {
			_, err := e.Eval(expr)
			if err != nil {
				if _, ok := asSignal(err, signalAgain); ok {
					break // restart the body from the top
				}
				return zilast.Nil, err
			}
		}
	}
}

// evalAnd returns the first falsy value encountered, or the last value if
// every operand is truthy. No arguments evaluates to true.
func (e *Evaluator) evalAnd(args []zilast.Node) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.True, nil
	}
	var result zilast.Value
	for _, a := range args {
		v, err := e.Eval(a)
		if err != nil {
			return zilast.Nil, err
		}
		result = v
		if !v.Truthy() {
			return v, nil
		}
	}
	return result, nil
}

// evalOr returns the first truthy value encountered, or the last value if
// every operand is falsy. No arguments evaluates to false.
func (e *Evaluator) evalOr(args []zilast.Node) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.False, nil
	}
	var result zilast.Value
	for _, a := range args {
		v, err := e.Eval(a)
		if err != nil {
			return zilast.Nil, err
		}
		result = v
		if v.Truthy() {
			return v, nil
		}
	}
	return result, nil
}

// mapfItemVar names the synthetic local MAPF binds each element to while
// calling fn, scoped to a single iteration via pushScope.
var mapfItemVar = zilast.Intern("MAPF-ITEM")

// evalMapf applies fn to each element of list, collecting results. MAPSTOP
// inside fn ends the loop early and supplies the overall result; MAPRET
// contributes one value to the result list in place of fn's own return
// value.
func (e *Evaluator) evalMapf(args []zilast.Node) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.NewList(nil), nil
	}
	listVal, err := e.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	if listVal.Kind() != zilast.KindList {
		return zilast.NewList(nil), nil
	}

	items := listVal.List()
	results := make([]zilast.Value, 0, len(items))
	call := &zilast.Form{Operator: args[0], Args: []zilast.Node{&zilast.LocalRef{Name: mapfItemVar}}}

	for _, item := range items {
		pop := e.pushScope()
		e.scopes[len(e.scopes)-1][mapfItemVar] = item
		v, err := e.Eval(call)
		pop()

		if sig, ok := asSignal(err, signalMapStop); ok {
			return sig.value, nil
		}
		if sig, ok := asSignal(err, signalMapRet); ok {
			results = append(results, sig.value)
			continue
		}
		if err != nil {
			return zilast.Nil, err
		}
		results = append(results, v)
	}
	return zilast.NewList(results), nil
}
