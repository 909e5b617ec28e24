// Package directive implements the one-pass scan that turns the expanded
// AST into world tables: constants, globals, property defaults, the
// direction list, buzz words, synonyms, and the syntax table. Routines and
// objects are registered into the world as-is; every other top-level node
// is consumed.
package directive

import (
	"fmt"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

var (
	opConstant   = zilast.Intern("CONSTANT")
	opPropdef    = zilast.Intern("PROPDEF")
	opDirections = zilast.Intern("DIRECTIONS")
	opBuzz       = zilast.Intern("BUZZ")
	opSynonym    = zilast.Intern("SYNONYM")
	opSyntax     = zilast.Intern("SYNTAX")
	opObjectKw   = zilast.Intern("OBJECT")
	opEquals     = zilast.Intern("=")
)

// Process scans nodes, populating w. It returns an error only for a
// malformed SYNTAX directive; every other directive is best-effort and
// silently ignores shapes it doesn't recognize, matching the source
// convention of tolerating stray top-level forms.
func Process(nodes []zilast.Node, w *world.World) error {
	for _, n := range nodes {
		if err := processOne(n, w); err != nil {
			return err
		}
	}
	return nil
}

func processOne(n zilast.Node, w *world.World) error {
	switch v := n.(type) {
	case *zilast.Routine:
		w.AddRoutine(v)
		return nil
	case *zilast.Object:
		buildObject(v, w)
		return nil
	case *zilast.Global:
		w.Globals[v.Name] = evalConstant(v.Value)
		return nil
	case *zilast.Form:
		op, ok := v.OperatorAtom()
		if !ok {
			return nil
		}
		switch op {
		case opConstant:
			processConstant(v, w)
		case opPropdef:
			processPropdef(v, w)
		case opDirections:
			processDirections(v, w)
		case opBuzz:
			processBuzz(v, w)
		case opSynonym:
			processSynonym(v, w)
		case opSyntax:
			return processSyntax(v, w)
		}
		return nil
	default:
		return nil
	}
}

func processConstant(form *zilast.Form, w *world.World) {
	if len(form.Args) < 1 {
		return
	}
	name, ok := atomName(form.Args[0])
	if !ok {
		return
	}
	var val zilast.Node
	if len(form.Args) > 1 {
		val = form.Args[1]
	}
	w.Constants[name] = evalConstant(val)
}

func processPropdef(form *zilast.Form, w *world.World) {
	if len(form.Args) < 1 {
		return
	}
	name, ok := atomName(form.Args[0])
	if !ok {
		return
	}
	var val zilast.Node
	if len(form.Args) > 1 {
		val = form.Args[1]
	}
	w.PropertyDefaults[name] = evalConstant(val)
}

func processDirections(form *zilast.Form, w *world.World) {
	for _, a := range form.Args {
		name, ok := atomName(a)
		if !ok {
			continue
		}
		if !w.DirectionSet.Has(name) {
			w.Directions = append(w.Directions, name)
		}
		w.DirectionSet.Add(name)
	}
}

func processBuzz(form *zilast.Form, w *world.World) {
	for _, a := range form.Args {
		if name, ok := atomName(a); ok {
			w.Buzzwords.Add(name)
		}
	}
}

func processSynonym(form *zilast.Form, w *world.World) {
	if len(form.Args) < 1 {
		return
	}
	primary, ok := atomName(form.Args[0])
	if !ok {
		return
	}
	w.Synonyms[primary] = primary
	for _, a := range form.Args[1:] {
		if alias, ok := atomName(a); ok {
			w.Synonyms[alias] = primary
		}
	}
}

// processSyntax parses "<SYNTAX verb OBJECT [(c...)] [prep OBJECT [(c...)]]
// = action [preaction]>" by scanning left to right: each OBJECT atom opens
// a new object slot, an immediately-following List attaches as that slot's
// constraint set, any other atom before "=" is a preposition. After "=",
// the first atom is the action and the second (if present) is the
// preaction.
func processSyntax(form *zilast.Form, w *world.World) error {
	if len(form.Args) < 1 {
		return fmt.Errorf("line %d: SYNTAX requires a verb", form.Pos())
	}
	verb, ok := atomName(form.Args[0])
	if !ok {
		return fmt.Errorf("line %d: SYNTAX verb must be an atom", form.Pos())
	}

	entry := world.SyntaxEntry{Verb: verb}

	i := 1
	for i < len(form.Args) {
		a, ok := atomName(form.Args[i])
		if !ok {
			return fmt.Errorf("line %d: unexpected SYNTAX token", form.Pos())
		}
		if a == opEquals {
			i++
			break
		}
		if a == opObjectKw {
			entry.ObjectCount++
			i++
			if i < len(form.Args) {
				if lst, ok := form.Args[i].(*zilast.List); ok {
					entry.Constraints = append(entry.Constraints, listAtoms(lst))
					i++
					continue
				}
			}
			entry.Constraints = append(entry.Constraints, nil)
			continue
		}
		entry.Prepositions = append(entry.Prepositions, a)
		i++
	}

	if i < len(form.Args) {
		action, ok := atomName(form.Args[i])
		if !ok {
			return fmt.Errorf("line %d: SYNTAX action must be an atom", form.Pos())
		}
		entry.Action = action
		i++
	}
	if i < len(form.Args) {
		preaction, ok := atomName(form.Args[i])
		if !ok {
			return fmt.Errorf("line %d: SYNTAX preaction must be an atom", form.Pos())
		}
		entry.Preaction = preaction
		i++
	}

	w.Syntax[verb] = append(w.Syntax[verb], entry)
	return nil
}

func listAtoms(lst *zilast.List) []zilast.Atom {
	out := make([]zilast.Atom, 0, len(lst.Elements))
	for _, e := range lst.Elements {
		if name, ok := atomName(e); ok {
			out = append(out, name)
		}
	}
	return out
}

func atomName(n zilast.Node) (zilast.Atom, bool) {
	switch v := n.(type) {
	case *zilast.AtomNode:
		return v.Name, true
	case *zilast.QuotedAtom:
		return v.Name, true
	default:
		return "", false
	}
}

// evalConstant implements the literal-or-lazy-form rule shared by CONSTANT,
// GLOBAL, and PROPDEF: the empty form is FALSE, the atoms T/ELSE/TRUE are
// TRUE, the atom FALSE is FALSE, numbers and strings take their literal
// value, and anything else is kept as an unevaluated form for the evaluator
// to resolve the first time it's read.
func evalConstant(n zilast.Node) zilast.Value {
	switch v := n.(type) {
	case nil:
		return zilast.Nil
	case *zilast.NumberNode:
		return zilast.NewNumber(v.Value)
	case *zilast.StringNode:
		return zilast.NewString(v.Value)
	case *zilast.AtomNode:
		switch v.Name {
		case zilast.AtomTrue, zilast.AtomElse, zilast.AtomTRUE:
			return zilast.True
		case zilast.AtomFalse:
			return zilast.False
		default:
			return zilast.NewForm(&zilast.Form{Operator: v})
		}
	case *zilast.Form:
		if v.EmptyForm() {
			return zilast.False
		}
		return zilast.NewForm(v)
	default:
		return zilast.NewForm(&zilast.Form{Operator: n})
	}
}

// buildObject interprets OBJECT's well-known properties (IN, LOC, FLAGS,
// SYNONYM, ADJECTIVE, DESC, ACTION) into a world.Object and stores every
// other property verbatim via evalConstant, so GETP still finds it.
func buildObject(od *zilast.Object, w *world.World) {
	o := world.NewObject(od.Name)
	var parentName zilast.Atom
	hasParent := false

	for _, p := range od.Properties {
		lst, ok := p.(*zilast.List)
		if !ok || len(lst.Elements) < 1 {
			continue
		}
		op, ok := atomName(lst.Elements[0])
		if !ok {
			continue
		}
		args := lst.Elements[1:]
		switch op {
		case zilast.Intern("IN"), zilast.Intern("LOC"):
			if len(args) >= 1 {
				if name, ok := atomName(args[0]); ok {
					parentName = name
					hasParent = true
				}
			}
		case zilast.Intern("FLAGS"):
			for _, a := range args {
				if name, ok := atomName(a); ok {
					o.SetFlag(name)
				}
			}
		case zilast.Intern("SYNONYM"):
			for _, a := range args {
				if name, ok := atomName(a); ok {
					o.Synonyms = append(o.Synonyms, name)
				}
			}
		case zilast.Intern("ADJECTIVE"):
			for _, a := range args {
				if name, ok := atomName(a); ok {
					o.Adjectives = append(o.Adjectives, name)
				}
			}
		case zilast.Intern("DESC"):
			if len(args) >= 1 {
				if s, ok := args[0].(*zilast.StringNode); ok {
					o.Desc = s.Value
				}
			}
		case zilast.Intern("ACTION"):
			if len(args) >= 1 {
				if name, ok := atomName(args[0]); ok {
					o.Action = name
				}
			}
		default:
			var val zilast.Node
			if len(args) >= 1 {
				val = args[0]
			}
			o.PutProperty(op, evalConstant(val))
		}
	}

	w.AddObject(o)
	if hasParent {
		if parent, ok := w.Object(parentName); ok {
			o.MoveTo(parent)
		}
	}
}
