package command

import (
	"strings"

	"github.com/dekarrin/zil/internal/ops"
	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zerrors"
	"github.com/dekarrin/zil/internal/zilast"
)

var (
	vWalk    = zilast.Intern("V-WALK")
	atomPRSA = zilast.Intern("PRSA")
	atomPRSO = zilast.Intern("PRSO")
	atomPRSI = zilast.Intern("PRSI")
	atomPDir = zilast.Intern("P-DIR")
)

// Processor orchestrates one full command turn: lex, parse, match the verb
// against its syntax table entries, resolve noun phrases against the
// current room, and stamp the parser-state globals the action routine
// reads.
type Processor struct {
	world    *world.World
	lexer    *Lexer
	parser   *Parser
	resolver *Resolver
}

// NewProcessor returns a Processor over w.
func NewProcessor(w *world.World) *Processor {
	return &Processor{
		world:    w,
		lexer:    NewLexer(w),
		parser:   NewParser(),
		resolver: NewResolver(w),
	}
}

// Process runs input through lexing, parsing, syntax matching, and object
// resolution against currentRoom. On success it sets PRSA/PRSO/PRSI (or
// PRSA/P-DIR for a bare direction) on ev and returns a successful Result
// naming the action routine for the caller to invoke. On failure it returns
// a zero Result and a *zerrors.RuntimeError describing what went wrong, and
// leaves ev's globals untouched.
func (p *Processor) Process(input string, ev ops.Evaluator, currentRoom *world.Object) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, zerrors.UnrecognizedCommand()
	}

	tokens := p.lexer.Tokenize(input)
	if len(tokens) == 0 {
		return Result{}, zerrors.UnrecognizedCommand()
	}

	parsed := p.parser.Parse(tokens)

	if parsed.Direction != "" {
		return p.handleDirection(parsed.Direction, ev), nil
	}

	if parsed.Verb == "" {
		return Result{}, zerrors.UnrecognizedCommand()
	}

	verbAtom := zilast.Intern(parsed.Verb)
	entry, ok := matchSyntax(p.world.Syntax[verbAtom], parsed)
	if !ok {
		return Result{}, zerrors.SyntaxMismatch(parsed.Verb)
	}

	var directObj, indirectObj *world.Object

	if len(parsed.NounPhrases) >= 1 {
		obj, err := p.resolveNounPhrase(parsed.NounPhrases[0], currentRoom)
		if err != nil {
			return Result{}, err
		}
		directObj = obj
	}

	if len(parsed.NounPhrases) >= 2 {
		obj, err := p.resolveNounPhrase(parsed.NounPhrases[1], currentRoom)
		if err != nil {
			return Result{}, err
		}
		indirectObj = obj
	}

	ev.SetGlobal(atomPRSA, zilast.NewAtomValue(entry.Action))
	ev.SetGlobal(atomPRSO, objectValue(directObj))
	ev.SetGlobal(atomPRSI, objectValue(indirectObj))

	result := Result{Success: true, Action: entry.Action}
	if directObj != nil {
		result.DirectObjectName = directObj.Name
	}
	if indirectObj != nil {
		result.IndirectObjectName = indirectObj.Name
	}
	return result, nil
}

// resolveNounPhrase resolves np, translating a resolver miss or ambiguity
// into the matching game error.
func (p *Processor) resolveNounPhrase(np NounPhrase, currentRoom *world.Object) (*world.Object, error) {
	obj, err := p.resolver.Resolve(np, currentRoom)
	if err != nil {
		return nil, disambiguationError(np.Noun, err)
	}
	if obj == nil {
		return nil, zerrors.ObjectNotVisible(strings.ToLower(np.Noun))
	}
	return obj, nil
}

func (p *Processor) handleDirection(direction string, ev ops.Evaluator) Result {
	ev.SetGlobal(atomPRSA, zilast.NewAtomValue(vWalk))
	ev.SetGlobal(atomPDir, zilast.NewAtomValue(zilast.Intern(direction)))
	ev.SetGlobal(atomPRSO, zilast.Nil)
	ev.SetGlobal(atomPRSI, zilast.Nil)
	return Result{Success: true, Action: vWalk}
}

// matchSyntax finds the entry among a verb's syntax table rows whose object
// count matches the parsed command and, for a two-object command, whose
// preposition list accepts the parsed preposition.
func matchSyntax(entries []world.SyntaxEntry, parsed ParsedCommand) (world.SyntaxEntry, bool) {
	wantCount := parsed.ObjectCount()
	for _, e := range entries {
		if e.ObjectCount != wantCount {
			continue
		}
		if wantCount == 2 && !prepositionMatches(e.Prepositions, parsed.Preposition) {
			continue
		}
		return e, true
	}
	return world.SyntaxEntry{}, false
}

func prepositionMatches(allowed []zilast.Atom, got string) bool {
	if got == "" {
		return len(allowed) == 0
	}
	target := zilast.Intern(got)
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

func objectValue(o *world.Object) zilast.Value {
	if o == nil {
		return zilast.Nil
	}
	return zilast.NewObject(zilast.ObjectHandle{Name: o.Name})
}

func disambiguationError(noun string, err error) error {
	de, ok := err.(*DisambiguationError)
	if !ok {
		return zerrors.UnrecognizedCommand()
	}
	names := make([]string, len(de.Candidates))
	for i, c := range de.Candidates {
		if c.Desc != "" {
			names[i] = strings.ToLower(c.Desc)
			continue
		}
		names[i] = strings.ToLower(c.Name.String())
	}
	return zerrors.DisambiguationNeeded(strings.ToLower(noun), names)
}
