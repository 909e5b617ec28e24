package ops

import (
	"strings"

	"github.com/dekarrin/zil/internal/zilast"
)

// registerAdvanced installs PRIMTYPE, PRINTB, TYPE?, and VALUE. IGRTR? lives
// in comparison.go alongside DLESS?, and AGAIN is a control-flow special
// form handled directly by the evaluator, not a registry entry.
func registerAdvanced(r *Registry) {
	r.register("PRIMTYPE", opPrimtype)
	r.register("PRINTB", opPrintb)
	r.register("TYPE?", opTypeQuestion)
	r.register("VALUE", opValue)
}

const (
	primtypeOther  = 0
	primtypeList   = 1
	primtypeAtom   = 2
	primtypeString = 3
	primtypeNumber = 4
	primtypeForm   = 5
	primtypeObject = 6
)

func opPrimtype(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewNumber(primtypeOther), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindList:
		return zilast.NewNumber(primtypeList), nil
	case zilast.KindAtom:
		return zilast.NewNumber(primtypeAtom), nil
	case zilast.KindString:
		return zilast.NewNumber(primtypeString), nil
	case zilast.KindNumber:
		return zilast.NewNumber(primtypeNumber), nil
	case zilast.KindForm:
		return zilast.NewNumber(primtypeForm), nil
	case zilast.KindObject:
		return zilast.NewNumber(primtypeObject), nil
	default:
		return zilast.NewNumber(primtypeOther), nil
	}
}

func opPrintb(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	if v.Kind() == zilast.KindString {
		ev.Print(v.Str())
	}
	return zilast.True, nil
}

func opTypeQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	for _, t := range args[1:] {
		name, ok := flagName(t)
		if !ok {
			continue
		}
		switch strings.ToUpper(name.String()) {
		case "LIST", "VECTOR":
			if v.Kind() == zilast.KindList {
				return zilast.True, nil
			}
		case "STRING", "ZSTRING":
			if v.Kind() == zilast.KindString {
				return zilast.True, nil
			}
		case "ATOM":
			if v.Kind() == zilast.KindAtom {
				return zilast.True, nil
			}
		case "NUMBER", "FIX":
			if v.Kind() == zilast.KindNumber {
				return zilast.True, nil
			}
		case "FORM":
			if v.Kind() == zilast.KindForm {
				return zilast.True, nil
			}
		case "OBJECT":
			if v.Kind() == zilast.KindObject {
				return zilast.True, nil
			}
		}
	}
	return zilast.False, nil
}

// opValue looks up a variable by name computed at runtime: locals first,
// then globals.
func opValue(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	var name zilast.Atom
	switch v.Kind() {
	case zilast.KindString:
		name = zilast.Intern(v.Str())
	case zilast.KindAtom:
		name = v.Atom()
	default:
		return zilast.Nil, nil
	}
	if lv, ok := ev.Local(name); ok {
		return lv, nil
	}
	if gv, ok := ev.Global(name); ok {
		return gv, nil
	}
	return zilast.Nil, nil
}
