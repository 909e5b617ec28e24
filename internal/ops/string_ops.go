package ops

import "github.com/dekarrin/zil/internal/zilast"

// registerStringOps installs CONCAT, SUBSTRING, and PRINTC.
func registerStringOps(r *Registry) {
	r.register("CONCAT", opConcat)
	r.register("SUBSTRING", opSubstring)
	r.register("PRINTC", opPrintc)
}

func opConcat(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	vs, err := evalArgs(args, ev)
	if err != nil {
		return zilast.Nil, err
	}
	result := ""
	for _, v := range vs {
		result += v.Str()
	}
	return zilast.NewString(result), nil
}

func opSubstring(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 3 {
		return zilast.NewString(""), nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	start, err := numArg(args, 1, ev)
	if err != nil {
		return zilast.Nil, err
	}
	end, err := numArg(args, 2, ev)
	if err != nil {
		return zilast.Nil, err
	}
	s := v.Str()
	if start < 0 || start >= end {
		return zilast.NewString(""), nil
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= len(s) {
		return zilast.NewString(""), nil
	}
	return zilast.NewString(s[start:end]), nil
}

func opPrintc(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.NewString(""), nil
	}
	code, err := numArg(args, 0, ev)
	if err != nil {
		return zilast.Nil, err
	}
	if code < 0 || code > 255 {
		return zilast.NewString(""), nil
	}
	c := string(rune(code))
	ev.Print(c)
	return zilast.NewString(c), nil
}
