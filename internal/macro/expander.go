// Package macro implements the built-in macro catalog, user-defined DEFMAC
// substitution, and compile-time %<...> arithmetic folding. Expansion is a
// pure AST-to-AST rewrite over the merged tree produced by the loader: each
// macro call is replaced by its expansion, which is then expanded again, and
// the arguments of every other form are expanded recursively.
package macro

import (
	"fmt"

	"github.com/dekarrin/zil/internal/zilast"
)

// Expander holds the user-defined macro registry accumulated from DEFMAC
// declarations seen so far. Built-ins are stateless and live in
// builtins.go.
type Expander struct {
	macros map[zilast.Atom]*userMacro
}

// New returns an Expander with an empty user-macro registry.
func New() *Expander {
	return &Expander{macros: make(map[zilast.Atom]*userMacro)}
}

// Expand rewrites every node in nodes, recursively expanding macro calls and
// folding compile-time arithmetic. DEFMAC declarations are consumed: they
// register into the expander's registry and do not appear in the output.
func (e *Expander) Expand(nodes []zilast.Node) ([]zilast.Node, error) {
	// Register every DEFMAC before expanding bodies, so macros can be used
	// before their textual declaration (source order does not constrain
	// macro visibility any more than routine visibility does).
	for _, n := range nodes {
		if md, ok := n.(*zilast.MacroDef); ok {
			e.macros[md.Name] = newUserMacro(md)
		}
	}

	out := make([]zilast.Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := n.(*zilast.MacroDef); ok {
			continue
		}
		en, err := e.expandNode(n, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, en)
	}
	return out, nil
}

// maxExpansionDepth guards against a user macro whose body invokes itself
// (directly or through another macro) without terminating.
const maxExpansionDepth = 200

func (e *Expander) expandNode(n zilast.Node, depth int) (zilast.Node, error) {
	if depth > maxExpansionDepth {
		return nil, fmt.Errorf("macro expansion exceeded depth %d, possible non-terminating macro", maxExpansionDepth)
	}

	switch v := n.(type) {
	case *zilast.Routine:
		body, err := e.expandSlice(v.Body, depth)
		if err != nil {
			return nil, err
		}
		return &zilast.Routine{Name: v.Name, Params: v.Params, Body: body}, nil

	case *zilast.Object:
		props, err := e.expandSlice(v.Properties, depth)
		if err != nil {
			return nil, err
		}
		return &zilast.Object{Name: v.Name, Properties: props}, nil

	case *zilast.Global:
		if v.Value == nil {
			return v, nil
		}
		val, err := e.expandNode(v.Value, depth)
		if err != nil {
			return nil, err
		}
		return &zilast.Global{Name: v.Name, Value: val}, nil

	case *zilast.Form:
		return e.expandForm(v, depth)

	case *zilast.List:
		elems, err := e.expandSlice(v.Elements, depth)
		if err != nil {
			return nil, err
		}
		return &zilast.List{Elements: elems}, nil

	case *zilast.Splice:
		inner, err := e.expandNode(v.Form, depth+1)
		if err != nil {
			return nil, err
		}
		return &zilast.Splice{Form: inner}, nil

	case *zilast.PercentEval:
		return e.expandPercentEval(v, depth)

	case *zilast.HashExpr:
		vals, err := e.expandSlice(v.Values, depth)
		if err != nil {
			return nil, err
		}
		return &zilast.HashExpr{Tag: v.Tag, Values: vals}, nil

	default:
		// Atom, Number, String, LocalRef, GlobalRef, QuotedAtom,
		// CharLiteral, IncludeRef: no macro-relevant substructure.
		return n, nil
	}
}

func (e *Expander) expandSlice(nodes []zilast.Node, depth int) ([]zilast.Node, error) {
	out := make([]zilast.Node, len(nodes))
	for i, n := range nodes {
		en, err := e.expandNode(n, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = en
	}
	return out, nil
}

func (e *Expander) expandForm(form *zilast.Form, depth int) (zilast.Node, error) {
	op, ok := form.OperatorAtom()
	if !ok {
		// operator is itself a ref/form; nothing to dispatch on by name,
		// just expand its parts.
		operand, err := e.expandNode(form.Operator, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := e.expandSlice(form.Args, depth)
		if err != nil {
			return nil, err
		}
		return &zilast.Form{Operator: operand, Args: args}, nil
	}

	if bi, ok := builtins[op]; ok {
		expanded, err := bi(form.Args)
		if err != nil {
			return nil, fmt.Errorf("line %d: expanding %s: %w", form.Pos(), op, err)
		}
		return e.expandNode(expanded, depth+1)
	}

	if um, ok := e.macros[op]; ok {
		expanded, err := um.apply(form.Args)
		if err != nil {
			return nil, fmt.Errorf("line %d: expanding %s: %w", form.Pos(), op, err)
		}
		return e.expandNode(expanded, depth+1)
	}

	args, err := e.expandSlice(form.Args, depth)
	if err != nil {
		return nil, err
	}
	return &zilast.Form{Operator: form.Operator, Args: args}, nil
}
