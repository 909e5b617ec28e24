package ops

import (
	"strconv"
	"strings"

	"github.com/dekarrin/zil/internal/zilast"
)

// registerIO installs PRINTN, PRINT, PRINTI, YES?, READ, LEX, and WORD?.
// TELL is handled entirely by macro expansion and has no runtime op.
func registerIO(r *Registry) {
	r.register("PRINTN", opPrintn)
	r.register("PRINT", opPrint)
	r.register("PRINTI", opPrinti)
	r.register("YES?", opYesQuestion)
	r.register("READ", opRead)
	r.register("LEX", opLex)
	r.register("WORD?", opWordQuestion)
}

// printable renders a value the way TELL/PRINT do: an object prints its
// DESC property (falling back to its name), Nil prints as nothing.
func printable(v zilast.Value, ev Evaluator) string {
	switch v.Kind() {
	case zilast.KindNil:
		return ""
	case zilast.KindObject:
		oh := v.Object()
		if obj, ok := ev.World().Object(oh.Name); ok {
			if desc, ok := obj.GetProperty(zilast.Intern("DESC")); ok && desc.Kind() == zilast.KindString {
				return desc.Str()
			}
		}
		return oh.Name.String()
	default:
		return v.Str()
	}
}

func opPrintn(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	switch v.Kind() {
	case zilast.KindNumber:
		ev.Print(strconv.Itoa(v.Num()))
	case zilast.KindString:
		if n, err := strconv.Atoi(v.Str()); err == nil {
			ev.Print(strconv.Itoa(n))
		} else {
			ev.Print(v.Str())
		}
	default:
		ev.Print(printable(v, ev))
	}
	return zilast.True, nil
}

func opPrint(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	ev.Print(printable(v, ev))
	return zilast.True, nil
}

func opPrinti(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.True, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	ev.Print(printable(v, ev))
	return zilast.True, nil
}

func opYesQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	ev.Print("? ")
	answer := ev.ReadLine()
	if answer == "" {
		return zilast.True, nil
	}
	return boolVal(strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")), nil
}

func opRead(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	return zilast.NewString(ev.ReadLine()), nil
}

func opLex(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewList(nil), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	if v.Kind() != zilast.KindString {
		return zilast.NewList(nil), nil
	}
	words := strings.Fields(v.Str())
	vals := make([]zilast.Value, len(words))
	for i, w := range words {
		vals[i] = zilast.NewString(w)
	}
	return zilast.NewList(vals), nil
}

var wordQuestionVerbs = map[string]bool{
	"TAKE": true, "GET": true, "DROP": true, "LOOK": true,
	"OPEN": true, "CLOSE": true, "GO": true,
}

func opWordQuestion(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 2 {
		return zilast.False, nil
	}
	word, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	wordType, err := ev.Eval(args[1])
	if err != nil {
		return zilast.Nil, err
	}
	if wordType.Str() != "VERB" {
		return zilast.False, nil
	}
	return boolVal(wordQuestionVerbs[strings.ToUpper(word.Str())]), nil
}
