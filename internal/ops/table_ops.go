package ops

import (
	"fmt"
	"sync/atomic"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

// registerTableOps installs GET/PUT/GETB/PUTB (which operate on a table
// handle or, per GETPT's opaque property reference, the referenced
// property's own value) and LTABLE/ITABLE/TABLE table construction.
func registerTableOps(r *Registry) {
	r.register("GET", opGet)
	r.register("PUT", opPut)
	r.register("GETB", opGetb)
	r.register("PUTB", opPutb)
	r.register("LTABLE", opLtable)
	r.register("ITABLE", opItable)
	r.register("TABLE", opTable)
}

var anonTableCounter int64

func newAnonTableName() zilast.Atom {
	n := atomic.AddInt64(&anonTableCounter, 1)
	return zilast.Intern(fmt.Sprintf("T?%d", n))
}

// resolveTable evaluates n and returns a *world.Table if n names one.
func resolveTable(n zilast.Node, ev Evaluator) (*world.Table, bool) {
	v, err := ev.Eval(n)
	if err != nil || v.Kind() != zilast.KindTable {
		return nil, false
	}
	return ev.World().GetTable(v.Table().Name)
}

func opGet(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	idx, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	if tbl, ok := resolveTable(args[0], ev); ok {
		w, err := tbl.GetWord(idx)
		if err != nil {
			return zilast.Nil, nil
		}
		return zilast.NewNumber(int(w)), nil
	}
	if v, err := ev.Eval(args[0]); err == nil {
		if objName, prop, ok := asPropRef(v); ok {
			if obj, ok := ev.World().Object(objName); ok {
				if pv, ok := obj.GetProperty(prop); ok && pv.Kind() == zilast.KindList {
					elems := pv.List()
					if idx >= 0 && idx < len(elems) {
						return elems[idx], nil
					}
				}
			}
		}
	}
	return zilast.Nil, nil
}

func opPut(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 3 {
		return zilast.Nil, nil
	}
	idx, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	val, err := ev.Eval(args[2])
	if err != nil {
		return zilast.Nil, err
	}
	if tbl, ok := resolveTable(args[0], ev); ok {
		if tbl.PutWord(idx, uint16(val.Num())) == nil {
			return val, nil
		}
		return zilast.Nil, nil
	}
	if v, err := ev.Eval(args[0]); err == nil {
		if objName, prop, ok := asPropRef(v); ok {
			if obj, ok := ev.World().Object(objName); ok {
				if pv, ok := obj.GetProperty(prop); ok && pv.Kind() == zilast.KindList {
					elems := append([]zilast.Value(nil), pv.List()...)
					if idx >= 0 && idx < len(elems) {
						elems[idx] = val
						obj.PutProperty(prop, zilast.NewList(elems))
						return val, nil
					}
				}
			}
		}
	}
	return zilast.Nil, nil
}

func opGetb(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	idx, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	if tbl, ok := resolveTable(args[0], ev); ok {
		b, err := tbl.GetByte(idx)
		if err != nil {
			return zilast.Nil, nil
		}
		return zilast.NewNumber(int(b)), nil
	}
	if v, err := ev.Eval(args[0]); err == nil {
		if v.Kind() == zilast.KindString {
			s := v.Str()
			if idx >= 0 && idx < len(s) {
				return zilast.NewNumber(int(s[idx])), nil
			}
		}
	}
	return zilast.Nil, nil
}

func opPutb(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 3 {
		return zilast.Nil, nil
	}
	idx, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	val, err := ev.Eval(args[2])
	if err != nil {
		return zilast.Nil, err
	}
	if tbl, ok := resolveTable(args[0], ev); ok {
		byteVal := byte(val.Num() & 0xFF)
		if tbl.PutByte(idx, byteVal) == nil {
			return zilast.NewNumber(int(byteVal)), nil
		}
	}
	return zilast.Nil, nil
}

func opLtable(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	words := make([]uint16, len(vs)+1)
	words[0] = uint16(len(vs))
	for i, v := range vs {
		words[i+1] = uint16(v.Num())
	}
	name := newAnonTableName()
	ev.World().AddTable(name, world.NewTableFromWords(name.String(), words))
	return zilast.NewTable(zilast.TableHandle{Name: name}), nil
}

func opItable(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.Nil, nil
	}
	initVal, err := numArg(args, 0, ev)
	if err != nil {
		return zilast.Nil, err
	}
	size, err := numArg(args, 1, ev)
	if err != nil || size < 0 {
		return zilast.Nil, err
	}
	words := make([]uint16, size)
	for i := range words {
		words[i] = uint16(initVal)
	}
	name := newAnonTableName()
	ev.World().AddTable(name, world.NewTableFromWords(name.String(), words))
	return zilast.NewTable(zilast.TableHandle{Name: name}), nil
}

func opTable(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	words := make([]uint16, len(vs))
	for i, v := range vs {
		words[i] = uint16(v.Num())
	}
	name := newAnonTableName()
	ev.World().AddTable(name, world.NewTableFromWords(name.String(), words))
	return zilast.NewTable(zilast.TableHandle{Name: name}), nil
}
