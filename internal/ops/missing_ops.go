package ops

import (
	"strings"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

// registerMissingOps installs the long tail of operations with no natural
// home in another category file. PROB is fully handled by macro expansion
// at compile time and has no runtime counterpart here.
func registerMissingOps(r *Registry) {
	r.register("THIS-IS-IT", opThisIsIt)
	r.register("THIS-IT?", opThisItQuestion)
	r.register("GLOBAL-IN?", opGlobalInQuestion)
	r.register("WEIGHT", opWeight)
	r.register("SEE-INSIDE?", opSeeInsideQuestion)
	r.register("ASSIGNED?", opAssignedQuestion)
	r.register("GASSIGNED?", opGassignedQuestion)
	r.register("NUMBER?", opNumberQuestion)
	r.register("MIN", opMin)
	r.register("MAX", opMax)
	r.register("SEARCH-LIST", opSearchList)
	r.register("FIND-IN", opFindIn)
	r.register("ZMEMQ", opZmemq)
	r.register("ZMEMQB", opZmemqb)
	r.register("LENGTH?", opLengthQuestion)
	r.register("PUTREST", opPutrest)
	r.register("CHTYPE", opChtype)
	r.register("SPNAME", opSpname)
	r.register("STUFF", opStuff)
}

func opThisIsIt(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	ev.SetGlobal(zilast.Intern("P-IT-OBJECT"), v)
	return v, nil
}

func opThisItQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	it, ok := ev.Global(zilast.Intern("P-IT-OBJECT"))
	if !ok {
		return zilast.False, nil
	}
	return boolVal(v.Equal(it)), nil
}

// opGlobalInQuestion checks a room's GLOBAL property list, then falls back
// to the GLOBAL-OBJECTS object's children, matching rooms that reference
// shared scenery by parentage instead of an explicit property.
func opGlobalInQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	room, ok := resolveObject(args[1], ev)
	if !ok {
		return zilast.False, nil
	}
	if globalList, ok := room.GetProperty(zilast.Intern("GLOBAL")); ok && globalList.Kind() == zilast.KindList {
		for _, item := range globalList.List() {
			if item.Kind() == zilast.KindObject && item.Object().Name == obj.Name {
				return zilast.True, nil
			}
		}
	}
	if globalObjects, ok := ev.World().Object(zilast.Intern("GLOBAL-OBJECTS")); ok {
		for c := globalObjects.First(); c != nil; c = c.NextSibling() {
			if c.Name == obj.Name {
				return zilast.True, nil
			}
		}
	}
	return zilast.False, nil
}

func opWeight(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewNumber(0), nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.NewNumber(0), nil
	}
	return zilast.NewNumber(totalWeight(obj)), nil
}

func totalWeight(o *world.Object) int {
	total := sizeOf(o)
	for c := o.First(); c != nil; c = c.NextSibling() {
		total += totalWeight(c)
	}
	return total
}

func sizeOf(o *world.Object) int {
	v, ok := o.GetProperty(zilast.Intern("SIZE"))
	if !ok || v.Kind() != zilast.KindNumber {
		return 0
	}
	return v.Num()
}

func opSeeInsideQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	obj, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	if obj.HasFlag(zilast.Intern("OPENBIT")) {
		return zilast.True, nil
	}
	if v, ok := obj.GetProperty(zilast.Intern("TRANSBIT")); ok && v.Truthy() {
		return zilast.True, nil
	}
	return zilast.False, nil
}

func opAssignedQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.False, nil
	}
	_, ok = ev.Local(name)
	return boolVal(ok), nil
}

func opGassignedQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	name, ok := flagName(args[0])
	if !ok {
		return zilast.False, nil
	}
	_, ok = ev.Global(name)
	return boolVal(ok), nil
}

func opNumberQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	return boolVal(v.Kind() == zilast.KindNumber), nil
}

func opMin(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) == 0 {
		return zilast.NewNumber(0), err
	}
	min := vs[0].Num()
	for _, v := range vs[1:] {
		if v.Num() < min {
			min = v.Num()
		}
	}
	return zilast.NewNumber(min), nil
}

func opMax(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil || len(vs) == 0 {
		return zilast.NewNumber(0), err
	}
	max := vs[0].Num()
	for _, v := range vs[1:] {
		if v.Num() > max {
			max = v.Num()
		}
	}
	return zilast.NewNumber(max), nil
}

func opSearchList(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 3 {
		return zilast.False, nil
	}
	container, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	prop, ok := flagName(args[1])
	if !ok {
		return zilast.False, nil
	}
	target, err := ev.Eval(args[2])
	if err != nil {
		return zilast.Nil, err
	}
	for c := container.First(); c != nil; c = c.NextSibling() {
		if v, ok := c.GetProperty(prop); ok && v.Equal(target) {
			return zilast.NewObject(zilast.ObjectHandle{Name: c.Name}), nil
		}
	}
	return zilast.False, nil
}

// opFindIn returns the first child of container whose synonym list contains
// word, matching ZIL vocabulary-based object lookup.
func opFindIn(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	container, ok := resolveObject(args[0], ev)
	if !ok {
		return zilast.False, nil
	}
	wordVal, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	word := strings.ToUpper(wordVal.Str())
	for c := container.First(); c != nil; c = c.NextSibling() {
		for _, syn := range c.Synonyms {
			if syn.String() == word {
				return zilast.NewObject(zilast.ObjectHandle{Name: c.Name}), nil
			}
		}
	}
	return zilast.False, nil
}

func opZmemq(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	target, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	tbl, ok := resolveTable(args[1], ev)
	if !ok {
		return zilast.False, nil
	}
	for i := 0; i < tbl.Len(); i++ {
		w, err := tbl.GetWord(i)
		if err != nil {
			break
		}
		if int(w) == target.Num() {
			return zilast.NewNumber(i * 2), nil
		}
	}
	return zilast.False, nil
}

func opZmemqb(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	target, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	tbl, ok := resolveTable(args[1], ev)
	if !ok {
		return zilast.False, nil
	}
	for i := 0; i < tbl.Len()*2; i++ {
		b, err := tbl.GetByte(i)
		if err != nil {
			break
		}
		if int(b) == target.Num() {
			return zilast.NewNumber(i), nil
		}
	}
	return zilast.False, nil
}

func opLengthQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	minLen, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindList:
		return boolVal(len(v.List()) >= minLen), nil
	case zilast.KindString:
		return boolVal(len(v.Str()) >= minLen), nil
	default:
		return zilast.False, nil
	}
}

// opPutrest replaces everything after a list's first element with newRest's
// elements. Values are immutable here, so this returns a new list rather
// than mutating shared structure the way the Z-machine's in-place PUTREST
// does.
func opPutrest(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	lv, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	rv, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	if lv.Kind() != zilast.KindList || len(lv.List()) == 0 {
		return lv, nil
	}
	first := lv.List()[0]
	out := []zilast.Value{first}
	if rv.Kind() == zilast.KindList {
		out = append(out, rv.List()...)
	}
	return zilast.NewList(out), nil
}

func opChtype(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	return ev.Eval(args[0])
}

func opSpname(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewString(""), nil
	}
	if name, ok := flagName(args[0]); ok {
		return zilast.NewString(name.String()), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindAtom:
		return zilast.NewString(v.Atom().String()), nil
	case zilast.KindObject:
		return zilast.NewString(v.Object().Name.String()), nil
	default:
		return zilast.NewString(v.Str()), nil
	}
}

func opStuff(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	return ev.Eval(args[0])
}
