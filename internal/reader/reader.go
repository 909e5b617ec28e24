package reader

import "github.com/dekarrin/zil/internal/zilast"

// Read lexes and parses source into a list of top-level AST nodes, then
// promotes the well-known declaration forms (ROUTINE, OBJECT, GLOBAL,
// DEFMAC, INSERT-FILE) to their typed node. It is deterministic: calling
// Read twice on the same source produces structurally identical trees.
func Read(source string) ([]zilast.Node, error) {
	lx := newLexer(source)
	toks, err := lx.lexAll()
	if err != nil {
		return nil, err
	}

	p := newParser(toks)
	raw, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}

	return transformTopLevel(raw)
}
