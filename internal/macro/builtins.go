package macro

import (
	"fmt"

	"github.com/dekarrin/zil/internal/zilast"
)

type builtinFunc func(args []zilast.Node) (zilast.Node, error)

var builtins map[zilast.Atom]builtinFunc

func init() {
	builtins = map[zilast.Atom]builtinFunc{
		zilast.Intern("TELL"):       expandTell,
		zilast.Intern("VERB?"):      expandVerb,
		zilast.Intern("PRSO?"):      expandPrso,
		zilast.Intern("PRSI?"):      expandPrsi,
		zilast.Intern("ROOM?"):      expandRoom,
		zilast.Intern("BSET"):       expandBSet,
		zilast.Intern("BCLEAR"):     expandBClear,
		zilast.Intern("BSET?"):      expandBSetQuestion,
		zilast.Intern("ENABLE"):     expandEnable,
		zilast.Intern("DISABLE"):    expandDisable,
		zilast.Intern("RFATAL"):     expandRFatal,
		zilast.Intern("FLAMING?"):   expandFlaming,
		zilast.Intern("OPENABLE?"):  expandOpenable,
		zilast.Intern("ABS"):        expandAbs,
		zilast.Intern("PROB"):       expandProb,
	}
}

func atom(name string) *zilast.AtomNode         { return &zilast.AtomNode{Name: zilast.Intern(name)} }
func global(name string) *zilast.GlobalRef      { return &zilast.GlobalRef{Name: zilast.Intern(name)} }
func num(n int) *zilast.NumberNode              { return &zilast.NumberNode{Value: n} }
func form(op string, args ...zilast.Node) *zilast.Form {
	return &zilast.Form{Operator: atom(op), Args: args}
}

func expandVerb(args []zilast.Node) (zilast.Node, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("VERB? expects at least 1 argument")
	}
	eqs := make([]zilast.Node, len(args))
	for i, a := range args {
		name, ok := atomName(a)
		if !ok {
			return nil, fmt.Errorf("VERB? arguments must be atoms")
		}
		eqs[i] = form("EQUAL?", global("PRSA"), global("V?"+name))
	}
	if len(eqs) == 1 {
		return eqs[0], nil
	}
	return &zilast.Form{Operator: atom("OR"), Args: eqs}, nil
}

func expandPrso(args []zilast.Node) (zilast.Node, error) {
	return expandGlobalEquals("PRSO?", "PRSO", args)
}

func expandPrsi(args []zilast.Node) (zilast.Node, error) {
	return expandGlobalEquals("PRSI?", "PRSI", args)
}

func expandRoom(args []zilast.Node) (zilast.Node, error) {
	return expandGlobalEquals("ROOM?", "HERE", args)
}

func expandGlobalEquals(macroName, globalName string, args []zilast.Node) (zilast.Node, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects 1 argument, got %d", macroName, len(args))
	}
	name, ok := atomName(args[0])
	if !ok {
		return nil, fmt.Errorf("%s argument must be an atom", macroName)
	}
	return form("EQUAL?", global(globalName), global(name)), nil
}

func expandBSet(args []zilast.Node) (zilast.Node, error) {
	return expandBFlags("BSET", "FSET", args)
}

func expandBClear(args []zilast.Node) (zilast.Node, error) {
	return expandBFlags("BCLEAR", "FCLEAR", args)
}

func expandBFlags(macroName, op string, args []zilast.Node) (zilast.Node, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s expects at least 2 arguments, got %d", macroName, len(args))
	}
	obj := args[0]
	flags := args[1:]

	if len(flags) == 1 {
		name, ok := atomName(flags[0])
		if !ok {
			return nil, fmt.Errorf("%s flag argument must be an atom", macroName)
		}
		return form(op, obj, global(name)), nil
	}

	calls := make([]zilast.Node, 0, len(flags)+1)
	calls = append(calls, &zilast.List{})
	for _, f := range flags {
		name, ok := atomName(f)
		if !ok {
			return nil, fmt.Errorf("%s flag argument must be an atom", macroName)
		}
		calls = append(calls, form(op, obj, global(name)))
	}
	return &zilast.Form{Operator: atom("PROG"), Args: calls}, nil
}

func expandBSetQuestion(args []zilast.Node) (zilast.Node, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("BSET? expects at least 2 arguments, got %d", len(args))
	}
	obj := args[0]
	flags := args[1:]

	if len(flags) == 1 {
		name, ok := atomName(flags[0])
		if !ok {
			return nil, fmt.Errorf("BSET? flag argument must be an atom")
		}
		return form("FSET?", obj, global(name)), nil
	}

	checks := make([]zilast.Node, len(flags))
	for i, f := range flags {
		name, ok := atomName(f)
		if !ok {
			return nil, fmt.Errorf("BSET? flag argument must be an atom")
		}
		checks[i] = form("FSET?", obj, global(name))
	}
	return &zilast.Form{Operator: atom("OR"), Args: checks}, nil
}

func expandEnable(args []zilast.Node) (zilast.Node, error) {
	return expandEnabledPut("ENABLE", 1, args)
}

func expandDisable(args []zilast.Node) (zilast.Node, error) {
	return expandEnabledPut("DISABLE", 0, args)
}

func expandEnabledPut(macroName string, value int, args []zilast.Node) (zilast.Node, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects 1 argument, got %d", macroName, len(args))
	}
	return form("PUT", args[0], global("C-ENABLED?"), num(value)), nil
}

func expandRFatal(args []zilast.Node) (zilast.Node, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("RFATAL expects 0 arguments, got %d", len(args))
	}
	return &zilast.Form{
		Operator: atom("PROG"),
		Args: []zilast.Node{
			&zilast.List{},
			form("PUSH", num(2)),
			form("RSTACK"),
		},
	}, nil
}

func expandFlaming(args []zilast.Node) (zilast.Node, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("FLAMING? expects 1 argument, got %d", len(args))
	}
	obj := args[0]
	return &zilast.Form{
		Operator: atom("AND"),
		Args: []zilast.Node{
			form("FSET?", obj, global("FLAMEBIT")),
			form("FSET?", obj, global("ONBIT")),
		},
	}, nil
}

func expandOpenable(args []zilast.Node) (zilast.Node, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("OPENABLE? expects 1 argument, got %d", len(args))
	}
	obj := args[0]
	return &zilast.Form{
		Operator: atom("OR"),
		Args: []zilast.Node{
			form("FSET?", obj, global("DOORBIT")),
			form("FSET?", obj, global("CONTBIT")),
		},
	}, nil
}

func expandAbs(args []zilast.Node) (zilast.Node, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ABS expects 1 argument, got %d", len(args))
	}
	n := args[0]
	return &zilast.Form{
		Operator: atom("COND"),
		Args: []zilast.Node{
			&zilast.List{Elements: []zilast.Node{form("L?", n, num(0)), form("-", num(0), n)}},
			&zilast.List{Elements: []zilast.Node{atom("T"), n}},
		},
	}, nil
}

func expandProb(args []zilast.Node) (zilast.Node, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("PROB expects at least 1 argument, got %d", len(args))
	}
	threshold := args[0]
	if len(args) >= 2 {
		return form("ZPROB", threshold), nil
	}
	return form("G?", threshold, form("RANDOM", num(100))), nil
}

// atomName extracts the bare atom text from n if n is an AtomNode, for
// macro arguments that must name a verb, flag, or object rather than
// evaluate to one.
func atomName(n zilast.Node) (string, bool) {
	a, ok := n.(*zilast.AtomNode)
	if !ok {
		return "", false
	}
	return a.Name.String(), true
}
