package command

import (
	"strings"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

// punctuationReplacer strips the sentence punctuation a player might type
// ("look.", "what's this?") down to whitespace before splitting on words.
var punctuationReplacer = strings.NewReplacer(
	".", " ", ",", " ", "!", " ", "?", " ", "\"", " ", "'", " ",
)

// prepositions is the fixed English preposition vocabulary a two-object verb
// may require between its direct and indirect objects. It is not derived
// from world data; every ZIL-descended game accepts the same set.
var prepositions = map[string]bool{
	"IN": true, "INTO": true, "ON": true, "ONTO": true, "WITH": true,
	"USING": true, "TO": true, "FROM": true, "AT": true, "FOR": true,
	"UNDER": true, "THROUGH": true, "THRU": true, "ABOUT": true, "OVER": true,
	"BEHIND": true, "BESIDE": true, "BETWEEN": true, "OFF": true, "OUT": true,
	"UP": true, "DOWN": true,
}

// Lexer tokenizes raw input against a world's vocabulary tables: buzzwords
// are dropped, aliases are resolved to their primary atom, and each
// surviving word is classified using the world's direction set and syntax
// table.
type Lexer struct {
	world *world.World
}

// NewLexer returns a Lexer reading vocabulary from w.
func NewLexer(w *world.World) *Lexer {
	return &Lexer{world: w}
}

// Tokenize splits input into classified tokens, or nil if input has no
// words left once punctuation is stripped and buzzwords are dropped.
func (l *Lexer) Tokenize(input string) []Token {
	cleaned := punctuationReplacer.Replace(input)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return nil
	}

	var tokens []Token
	for _, f := range fields {
		atom := zilast.Intern(strings.ToUpper(f))
		if l.world.Buzzwords.Has(atom) {
			continue
		}
		primary := l.world.ResolveSynonym(atom)
		tokens = append(tokens, Token{Word: primary.String()})
	}

	for i := range tokens {
		tokens[i].Type = l.classify(tokens[i].Word, i == 0)
	}
	return tokens
}

// classify assigns a token's type. A direction word in first position is a
// DIRECTION even if it also happens to head a syntax entry; a word in first
// position with syntax entries is the VERB; a fixed preposition anywhere
// after the first token is a PREPOSITION; a direction word anywhere else is
// still a DIRECTION (closing a noun phrase mid-sentence, e.g. "THROW BALL
// NORTH"); everything else is UNKNOWN and folds into the current noun
// phrase buffer during parsing.
func (l *Lexer) classify(word string, isFirst bool) TokenType {
	atom := zilast.Intern(word)
	switch {
	case isFirst && l.world.DirectionSet.Has(atom):
		return TokenDirection
	case isFirst && len(l.world.Syntax[atom]) > 0:
		return TokenVerb
	case !isFirst && prepositions[word]:
		return TokenPreposition
	case l.world.DirectionSet.Has(atom):
		return TokenDirection
	default:
		return TokenUnknown
	}
}
