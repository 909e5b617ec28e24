package macro

import (
	"fmt"

	"github.com/dekarrin/zil/internal/zilast"
)

// userMacro is a compiled DEFMAC declaration: a parameter list classified by
// quoting and category, and a template body substituted at call sites.
type userMacro struct {
	name   zilast.Atom
	params []zilast.Param
	body   []zilast.Node
}

func newUserMacro(md *zilast.MacroDef) *userMacro {
	return &userMacro{name: md.Name, params: md.Params, body: md.Body}
}

// apply binds args to the macro's parameters and substitutes them into the
// body template. Quoted parameters substitute the caller's argument AST
// as-is; unquoted parameters substitute the caller's argument expression,
// which is re-evaluated at each occurrence in the template. The result is a
// PROG wrapping the (possibly multi-form) body so it behaves as a single
// expression, matching how the body of a DEFMAC is a sequence of forms.
func (m *userMacro) apply(args []zilast.Node) (zilast.Node, error) {
	bindings := make(map[zilast.Atom]zilast.Node)
	argIdx := 0

	for _, p := range m.params {
		switch p.Kind {
		case zilast.ParamRequired:
			if argIdx >= len(args) {
				return nil, fmt.Errorf("macro %s: missing required argument %s", m.name, p.Name)
			}
			bindings[p.Name] = args[argIdx]
			argIdx++

		case zilast.ParamOptional:
			if argIdx < len(args) {
				bindings[p.Name] = args[argIdx]
				argIdx++
			} else {
				bindings[p.Name] = defaultOrNil(p.Default)
			}

		case zilast.ParamAux:
			bindings[p.Name] = defaultOrNil(p.Default)

		case zilast.ParamArgs:
			rest := make([]zilast.Node, len(args)-argIdx)
			copy(rest, args[argIdx:])
			bindings[p.Name] = &zilast.List{Elements: rest}
			argIdx = len(args)
		}
	}

	substituted := make([]zilast.Node, len(m.body))
	for i, n := range m.body {
		substituted[i] = substitute(n, bindings)
	}

	if len(substituted) == 1 {
		return substituted[0], nil
	}

	progArgs := make([]zilast.Node, 0, len(substituted)+1)
	progArgs = append(progArgs, &zilast.List{})
	progArgs = append(progArgs, substituted...)
	return &zilast.Form{Operator: atom("PROG"), Args: progArgs}, nil
}

func defaultOrNil(def zilast.Node) zilast.Node {
	if def == nil {
		return atom("FALSE")
	}
	return def
}

// substitute walks n, replacing references to macro parameters with their
// bound argument. Quoted parameters are referenced in the template as plain
// atoms (matching the convention that the template names the parameter
// directly); the quoted-ness only governs what the macro call site
// supplied, which has already been resolved into bindings by apply.
func substitute(n zilast.Node, bindings map[zilast.Atom]zilast.Node) zilast.Node {
	switch v := n.(type) {
	case *zilast.AtomNode:
		if bound, ok := bindings[v.Name]; ok {
			return bound
		}
		return v

	case *zilast.QuotedAtom:
		if bound, ok := bindings[v.Name]; ok {
			return bound
		}
		return v

	case *zilast.LocalRef:
		if bound, ok := bindings[v.Name]; ok {
			return bound
		}
		return v

	case *zilast.GlobalRef:
		if bound, ok := bindings[v.Name]; ok {
			return bound
		}
		return v

	case *zilast.Form:
		op := substitute(v.Operator, bindings)
		args := make([]zilast.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = substitute(a, bindings)
		}
		return &zilast.Form{Operator: op, Args: args}

	case *zilast.List:
		elems := make([]zilast.Node, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = substitute(e, bindings)
		}
		return &zilast.List{Elements: elems}

	case *zilast.Splice:
		return &zilast.Splice{Form: substitute(v.Form, bindings)}

	case *zilast.PercentEval:
		return &zilast.PercentEval{Form: substitute(v.Form, bindings)}

	case *zilast.HashExpr:
		vals := make([]zilast.Node, len(v.Values))
		for i, val := range v.Values {
			vals[i] = substitute(val, bindings)
		}
		return &zilast.HashExpr{Tag: v.Tag, Values: vals}

	default:
		return n
	}
}
