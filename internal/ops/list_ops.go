package ops

import (
	"strings"

	"github.com/dekarrin/zil/internal/zilast"
)

// registerListOps installs LENGTH, NTH (1-indexed), REST, FIRST, NEXT,
// BACK, EMPTY?, and MEMQ over lists and strings.
func registerListOps(r *Registry) {
	r.register("LENGTH", opLength)
	r.register("NTH", opNth)
	r.register("REST", opRest)
	r.register("FIRST", opFirst)
	r.register("NEXT", opNext)
	r.register("BACK", opBack)
	r.register("EMPTY?", opEmpty)
	r.register("MEMQ", opMemq)
}

func opLength(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewNumber(0), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindList:
		return zilast.NewNumber(len(v.List())), nil
	case zilast.KindString:
		return zilast.NewNumber(len(v.Str())), nil
	default:
		return zilast.NewNumber(0), nil
	}
}

func opNth(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	idx, err := numArg(args, 1, ev)
	if err != nil || idx < 1 {
		return zilast.Nil, err
	}
	zi := idx - 1
	switch v.Kind() {
	case zilast.KindList:
		elems := v.List()
		if zi >= len(elems) {
			return zilast.Nil, nil
		}
		return elems[zi], nil
	case zilast.KindString:
		s := v.Str()
		if zi >= len(s) {
			return zilast.Nil, nil
		}
		return zilast.NewString(string(s[zi])), nil
	default:
		return zilast.Nil, nil
	}
}

func opRest(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewList(nil), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindList:
		elems := v.List()
		if len(elems) <= 1 {
			return zilast.NewList(nil), nil
		}
		return zilast.NewList(elems[1:]), nil
	case zilast.KindString:
		s := v.Str()
		if len(s) <= 1 {
			return zilast.NewString(""), nil
		}
		return zilast.NewString(s[1:]), nil
	default:
		return zilast.NewList(nil), nil
	}
}

func opFirst(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindList:
		elems := v.List()
		if len(elems) == 0 {
			return zilast.Nil, nil
		}
		return elems[0], nil
	case zilast.KindString:
		s := v.Str()
		if len(s) == 0 {
			return zilast.Nil, nil
		}
		return zilast.NewString(string(s[0])), nil
	default:
		return zilast.Nil, nil
	}
}

func opNext(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.Nil, nil
	}
	next := obj.NextSibling()
	if next == nil {
		return zilast.Nil, nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: next.Name}), nil
}

func opBack(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.Nil, nil
	}
	prev := obj.PrevSibling()
	if prev == nil {
		return zilast.Nil, nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: prev.Name}), nil
}

func opEmpty(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindNil:
		return zilast.True, nil
	case zilast.KindNumber:
		return boolVal(v.IsZero()), nil
	case zilast.KindList:
		return boolVal(len(v.List()) == 0), nil
	case zilast.KindString:
		return boolVal(len(v.Str()) == 0), nil
	default:
		return zilast.False, nil
	}
}

func opMemq(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	elem, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	coll, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	switch coll.Kind() {
	case zilast.KindString:
		return boolVal(strings.Contains(coll.Str(), elem.Str())), nil
	case zilast.KindList:
		for _, e := range coll.List() {
			if elem.Equal(e) {
				return zilast.True, nil
			}
		}
		return zilast.False, nil
	default:
		return zilast.False, nil
	}
}
