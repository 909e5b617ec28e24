package command

import (
	"testing"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLexWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New()

	north := zilast.Intern("NORTH")
	w.Directions = append(w.Directions, north)
	w.DirectionSet.Add(north)

	w.Buzzwords.Add(zilast.Intern("THE"))

	take := zilast.Intern("TAKE")
	get := zilast.Intern("GET")
	w.Synonyms[take] = take
	w.Synonyms[get] = take

	w.Syntax[take] = []world.SyntaxEntry{{Verb: take, Action: zilast.Intern("V-TAKE"), ObjectCount: 1}}

	return w
}

func Test_Tokenize_stripsPunctuationAndUpcases(t *testing.T) {
	w := buildLexWorld(t)
	l := NewLexer(w)

	tokens := l.Tokenize("take the lamp.")
	require.Len(t, tokens, 2)
	assert.Equal(t, "TAKE", tokens[0].Word)
	assert.Equal(t, "LAMP", tokens[1].Word)
}

func Test_Tokenize_emptyInputReturnsNil(t *testing.T) {
	w := buildLexWorld(t)
	l := NewLexer(w)
	assert.Nil(t, l.Tokenize("   "))
}

func Test_Tokenize_resolvesSynonymToPrimary(t *testing.T) {
	w := buildLexWorld(t)
	l := NewLexer(w)

	tokens := l.Tokenize("get lamp")
	require.Len(t, tokens, 2)
	assert.Equal(t, "TAKE", tokens[0].Word)
}

func Test_Tokenize_classifiesFirstTokenVerb(t *testing.T) {
	w := buildLexWorld(t)
	l := NewLexer(w)

	tokens := l.Tokenize("take lamp")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenVerb, tokens[0].Type)
	assert.Equal(t, TokenUnknown, tokens[1].Type)
}

func Test_Tokenize_classifiesFirstTokenDirectionOverVerb(t *testing.T) {
	w := buildLexWorld(t)
	w.Syntax[zilast.Intern("NORTH")] = []world.SyntaxEntry{{ObjectCount: 0}}
	l := NewLexer(w)

	tokens := l.Tokenize("north")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenDirection, tokens[0].Type)
}

func Test_Tokenize_classifiesMidSentencePreposition(t *testing.T) {
	w := buildLexWorld(t)
	l := NewLexer(w)

	tokens := l.Tokenize("put lamp in box")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenPreposition, tokens[2].Type)
}

func Test_Tokenize_dropsBuzzwords(t *testing.T) {
	w := buildLexWorld(t)
	l := NewLexer(w)

	tokens := l.Tokenize("take the the lamp")
	require.Len(t, tokens, 2)
	assert.Equal(t, "TAKE", tokens[0].Word)
	assert.Equal(t, "LAMP", tokens[1].Word)
}
