// Package command turns a line of player input into a bound action: lex it
// against the world's vocabulary tables, parse the token stream into a verb
// and noun phrases, match the verb against its syntax table entries, resolve
// each noun phrase to an accessible object, and stamp PRSA/PRSO/PRSI (or
// PRSA/P-DIR for a bare direction) for the caller to act on.
package command

import "github.com/dekarrin/zil/internal/zilast"

// TokenType classifies one word of tokenized input.
type TokenType int

const (
	TokenUnknown TokenType = iota
	TokenVerb
	TokenPreposition
	TokenDirection
)

// Token is one cleaned, synonym-resolved, classified word of input.
type Token struct {
	Word string
	Type TokenType
}

// NounPhrase is a noun together with the adjectives modifying it, e.g.
// "BRASS LAMP" becomes NounPhrase{Noun: "LAMP", Adjectives: []string{"BRASS"}}.
type NounPhrase struct {
	Noun       string
	Adjectives []string
}

// ParsedCommand is the token stream reshaped into a verb, its noun phrases,
// and (for two-object verbs) the preposition joining them. A command whose
// first word is a direction ("NORTH") sets only Direction.
type ParsedCommand struct {
	Verb        string
	NounPhrases []NounPhrase
	Preposition string
	Direction   string
}

// ObjectCount is how many noun phrases the command carries, the figure the
// syntax table matches a verb's entries against.
func (p ParsedCommand) ObjectCount() int {
	return len(p.NounPhrases)
}

// Result is the outcome of successfully processing one line of input. On
// failure, Process returns a zero Result and a non-nil error (typically a
// *zerrors.RuntimeError) instead of populating this struct.
type Result struct {
	Success bool
	Action  zilast.Atom

	DirectObjectName   zilast.Atom
	IndirectObjectName zilast.Atom
}
