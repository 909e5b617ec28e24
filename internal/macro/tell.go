package macro

import "github.com/dekarrin/zil/internal/zilast"

var (
	descIndicators = map[zilast.Atom]bool{
		zilast.Intern("D"): true, zilast.Intern("DESC"): true,
		zilast.Intern("O"): true, zilast.Intern("OBJ"): true,
	}
	numIndicators = map[zilast.Atom]bool{
		zilast.Intern("N"): true, zilast.Intern("NUM"): true,
	}
	charIndicators = map[zilast.Atom]bool{
		zilast.Intern("C"): true, zilast.Intern("CHR"): true, zilast.Intern("CHAR"): true,
	}
	articleIndicators = map[zilast.Atom]bool{
		zilast.Intern("A"): true, zilast.Intern("AN"): true,
	}
	crIndicators = map[zilast.Atom]bool{
		zilast.Intern("CR"): true, zilast.Intern("CRLF"): true,
	}
)

// expandTell walks a TELL argument list linearly, emitting one primitive
// print form per logical item, and wraps the result in <PROG ()...>.
func expandTell(args []zilast.Node) (zilast.Node, error) {
	var body []zilast.Node
	i := 0
	for i < len(args) {
		arg := args[i]

		switch a := arg.(type) {
		case *zilast.StringNode:
			body = append(body, form("PRINTI", a))
			i++

		case *zilast.AtomNode:
			switch {
			case crIndicators[a.Name]:
				body = append(body, &zilast.Form{Operator: atom("CRLF")})
				i++
			case descIndicators[a.Name]:
				i++
				if i < len(args) {
					body = append(body, form("PRINTD", args[i]))
					i++
				}
			case numIndicators[a.Name]:
				i++
				if i < len(args) {
					body = append(body, form("PRINTN", args[i]))
					i++
				}
			case charIndicators[a.Name]:
				i++
				if i < len(args) {
					body = append(body, form("PRINTC", args[i]))
					i++
				}
			case articleIndicators[a.Name]:
				i++
				if i < len(args) {
					body = append(body, form("PRINTA", args[i]))
					i++
				}
			default:
				i++
				if i < len(args) {
					body = append(body, form("PRINT", form("GETP", args[i], a)))
					i++
				} else {
					body = append(body, form("PRINT", a))
				}
			}

		default:
			body = append(body, form("PRINT", arg))
			i++
		}
	}

	progArgs := make([]zilast.Node, 0, len(body)+1)
	progArgs = append(progArgs, &zilast.List{})
	progArgs = append(progArgs, body...)
	return &zilast.Form{Operator: atom("PROG"), Args: progArgs}, nil
}
