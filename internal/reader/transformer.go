package reader

import (
	"fmt"

	"github.com/dekarrin/zil/internal/zilast"
)

// transformTopLevel recognizes ROUTINE, OBJECT, GLOBAL, DEFMAC, and
// INSERT-FILE forms at the top level and promotes them to their typed AST
// node. Every other top-level form passes through unchanged.
func transformTopLevel(nodes []zilast.Node) ([]zilast.Node, error) {
	out := make([]zilast.Node, 0, len(nodes))
	for _, n := range nodes {
		tn, err := transformOne(n)
		if err != nil {
			return nil, err
		}
		out = append(out, tn)
	}
	return out, nil
}

func transformOne(n zilast.Node) (zilast.Node, error) {
	form, ok := n.(*zilast.Form)
	if !ok {
		return n, nil
	}
	op, ok := form.OperatorAtom()
	if !ok {
		return n, nil
	}

	switch op {
	case zilast.Intern("ROUTINE"):
		return transformRoutine(form)
	case zilast.Intern("OBJECT"), zilast.Intern("ROOM"):
		return transformObject(form)
	case zilast.Intern("GLOBAL"):
		return transformGlobal(form)
	case zilast.Intern("INSERT-FILE"):
		return transformInclude(form)
	case zilast.Intern("DEFMAC"):
		return transformMacroDef(form)
	default:
		return form, nil
	}
}

func transformRoutine(form *zilast.Form) (zilast.Node, error) {
	if len(form.Args) < 2 {
		return nil, fmt.Errorf("line %d: ROUTINE requires a name and a parameter list", form.Pos())
	}
	nameAtom, ok := form.Args[0].(*zilast.AtomNode)
	if !ok {
		return nil, fmt.Errorf("line %d: ROUTINE name must be an atom", form.Pos())
	}
	paramList, ok := form.Args[1].(*zilast.List)
	if !ok {
		return nil, fmt.Errorf("line %d: ROUTINE parameter list must be a list", form.Pos())
	}
	params, err := parseParamList(paramList.Elements, false)
	if err != nil {
		return nil, err
	}
	return &zilast.Routine{
		Name:   nameAtom.Name,
		Params: params,
		Body:   form.Args[2:],
	}, nil
}

func transformObject(form *zilast.Form) (zilast.Node, error) {
	if len(form.Args) < 1 {
		return nil, fmt.Errorf("line %d: OBJECT requires a name", form.Pos())
	}
	nameAtom, ok := form.Args[0].(*zilast.AtomNode)
	if !ok {
		return nil, fmt.Errorf("line %d: OBJECT name must be an atom", form.Pos())
	}
	return &zilast.Object{
		Name:       nameAtom.Name,
		Properties: form.Args[1:],
	}, nil
}

func transformGlobal(form *zilast.Form) (zilast.Node, error) {
	if len(form.Args) < 1 {
		return nil, fmt.Errorf("line %d: GLOBAL requires a name", form.Pos())
	}
	nameAtom, ok := form.Args[0].(*zilast.AtomNode)
	if !ok {
		return nil, fmt.Errorf("line %d: GLOBAL name must be an atom", form.Pos())
	}
	var val zilast.Node
	if len(form.Args) > 1 {
		val = form.Args[1]
	}
	return &zilast.Global{Name: nameAtom.Name, Value: val}, nil
}

func transformInclude(form *zilast.Form) (zilast.Node, error) {
	if len(form.Args) < 1 {
		return nil, fmt.Errorf("line %d: INSERT-FILE requires a file name", form.Pos())
	}
	strNode, ok := form.Args[0].(*zilast.StringNode)
	if !ok {
		return nil, fmt.Errorf("line %d: INSERT-FILE name must be a string", form.Pos())
	}
	return &zilast.IncludeRef{FileName: strNode.Value}, nil
}

func transformMacroDef(form *zilast.Form) (zilast.Node, error) {
	if len(form.Args) < 2 {
		return nil, fmt.Errorf("line %d: DEFMAC requires a name and a parameter list", form.Pos())
	}
	nameAtom, ok := form.Args[0].(*zilast.AtomNode)
	if !ok {
		return nil, fmt.Errorf("line %d: DEFMAC name must be an atom", form.Pos())
	}
	paramList, ok := form.Args[1].(*zilast.List)
	if !ok {
		return nil, fmt.Errorf("line %d: DEFMAC parameter list must be a list", form.Pos())
	}
	params, err := parseParamList(paramList.Elements, true)
	if err != nil {
		return nil, err
	}
	return &zilast.MacroDef{
		Name:   nameAtom.Name,
		Params: params,
		Body:   form.Args[2:],
	}, nil
}

var (
	sepOptional = zilast.Intern("OPTIONAL")
	sepAux      = zilast.Intern("AUX")
	sepArgs     = zilast.Intern("ARGS")
)

// parseParamList classifies a routine/macro parameter declaration list by
// scanning for the separator atoms "OPTIONAL", "AUX", and "ARGS": every
// parameter after a separator acquires that category until another
// separator is seen. allowQuoted enables the leading-quote convention used
// by DEFMAC; ROUTINE params are never quoted.
func parseParamList(elems []zilast.Node, allowQuoted bool) ([]zilast.Param, error) {
	var params []zilast.Param
	kind := zilast.ParamRequired

	for _, e := range elems {
		// the separators are conventionally written as quoted strings
		// ("OPTIONAL", "AUX", "ARGS") rather than bare atoms.
		if s, ok := e.(*zilast.StringNode); ok {
			switch zilast.Intern(s.Value) {
			case sepOptional:
				kind = zilast.ParamOptional
				continue
			case sepAux:
				kind = zilast.ParamAux
				continue
			case sepArgs:
				kind = zilast.ParamArgs
				continue
			}
			return nil, fmt.Errorf("unrecognized parameter list separator %q", s.Value)
		}

		if a, ok := e.(*zilast.AtomNode); ok {
			switch a.Name {
			case sepOptional:
				kind = zilast.ParamOptional
				continue
			case sepAux:
				kind = zilast.ParamAux
				continue
			case sepArgs:
				kind = zilast.ParamArgs
				continue
			}
			params = append(params, zilast.Param{Name: a.Name, Kind: kind})
			continue
		}

		if allowQuoted {
			if q, ok := e.(*zilast.QuotedAtom); ok {
				params = append(params, zilast.Param{Name: q.Name, Kind: kind, Quoted: true})
				continue
			}
		}

		if lst, ok := e.(*zilast.List); ok && len(lst.Elements) >= 1 {
			nameNode := lst.Elements[0]
			var name zilast.Atom
			quoted := false
			switch nn := nameNode.(type) {
			case *zilast.AtomNode:
				name = nn.Name
			case *zilast.QuotedAtom:
				name = nn.Name
				quoted = true
			default:
				return nil, fmt.Errorf("invalid parameter declaration")
			}
			var def zilast.Node
			if len(lst.Elements) > 1 {
				def = lst.Elements[1]
			}
			params = append(params, zilast.Param{Name: name, Kind: kind, Default: def, Quoted: quoted && allowQuoted})
			continue
		}

		return nil, fmt.Errorf("invalid parameter declaration")
	}

	return params, nil
}
