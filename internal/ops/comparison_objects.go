package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerComparisonObjects installs NEXT?, GETPT, and PTSIZE. NEXT? mirrors
// list_ops' NEXT (kept separate to match the source file split) and returns
// FALSE rather than Nil when there's no next sibling, since it's used in
// boolean position.
func registerComparisonObjects(r *Registry) {
	r.register("NEXT?", opNextQuestion)
	r.register("GETPT", opGetpt)
	r.register("PTSIZE", opPtsize)
	r.register("IN?", opInQuestion)
	r.register("FIRST?", opFirstQuestion)
}

// opInQuestion reports whether the first object's parent is the second.
func opInQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	container, ok := resolveObject(args[1], ev)
	if !ok {
		return zilast.False, nil
	}
	return boolVal(obj.Loc() == container), nil
}

// opFirstQuestion returns the object's first child, or Nil if childless.
func opFirstQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.Nil, nil
	}
	child := obj.First()
	if child == nil {
		return zilast.Nil, nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: child.Name}), nil
}

func opNextQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	next := obj.NextSibling()
	if next == nil {
		return zilast.False, nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: next.Name}), nil
}

// propRef encodes GETPT's opaque (object, property) reference as a 2-element
// list: [ObjectHandle, AtomValue(prop)]. GET/PUT/GETB/PUTB recognize this
// shape and index into the referenced property's value.
func propRef(objName, prop zilast.Atom) zilast.Value {
	return zilast.NewList([]zilast.Value{
		zilast.NewObject(zilast.ObjectHandle{Name: objName}),
		zilast.NewAtomValue(prop),
	})
}

func asPropRef(v zilast.Value) (objName, prop zilast.Atom, ok bool) {
	if v.Kind() != zilast.KindList || len(v.List()) != 2 {
		return "", "", false
	}
	elems := v.List()
	if elems[0].Kind() != zilast.KindObject || elems[1].Kind() != zilast.KindAtom {
		return "", "", false
	}
	return elems[0].Object().Name, elems[1].Atom(), true
}

func opGetpt(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	prop, ok := flagName(args[1])
	if !ok {
		return zilast.False, nil
	}
	if _, has := obj.GetProperty(prop); !has {
		return zilast.False, nil
	}
	return propRef(obj.Name, prop), nil
}

func opPtsize(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewNumber(0), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	objName, prop, ok := asPropRef(v)
	if !ok {
		return zilast.NewNumber(0), nil
	}
	obj, ok := ev.World().Object(objName)
	if !ok {
		return zilast.NewNumber(0), nil
	}
	val, ok := obj.GetProperty(prop)
	if !ok {
		return zilast.NewNumber(0), nil
	}
	switch val.Kind() {
	case zilast.KindList:
		return zilast.NewNumber(len(val.List()) * 2), nil
	case zilast.KindString:
		return zilast.NewNumber(len(val.Str())), nil
	default:
		return zilast.NewNumber(2), nil
	}
}
