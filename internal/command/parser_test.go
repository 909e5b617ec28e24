package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_emptyTokensReturnsEmptyCommand(t *testing.T) {
	p := NewParser()
	pc := p.Parse(nil)
	assert.Equal(t, ParsedCommand{}, pc)
}

func Test_Parse_bareDirectionSetsDirectionOnly(t *testing.T) {
	p := NewParser()
	pc := p.Parse([]Token{{Word: "NORTH", Type: TokenDirection}})
	assert.Equal(t, "NORTH", pc.Direction)
	assert.Empty(t, pc.Verb)
	assert.Empty(t, pc.NounPhrases)
}

func Test_Parse_leadingDirectionWithTrailingWordsIsStillBareDirection(t *testing.T) {
	p := NewParser()
	pc := p.Parse([]Token{
		{Word: "NORTH", Type: TokenDirection},
		{Word: "QUICKLY", Type: TokenUnknown},
	})
	assert.Equal(t, "NORTH", pc.Direction)
}

func Test_Parse_verbWithSingleNounPhrase(t *testing.T) {
	p := NewParser()
	pc := p.Parse([]Token{
		{Word: "TAKE", Type: TokenVerb},
		{Word: "BRASS", Type: TokenUnknown},
		{Word: "LAMP", Type: TokenUnknown},
	})
	assert.Equal(t, "TAKE", pc.Verb)
	require.Len(t, pc.NounPhrases, 1)
	assert.Equal(t, "LAMP", pc.NounPhrases[0].Noun)
	assert.Equal(t, []string{"BRASS"}, pc.NounPhrases[0].Adjectives)
	assert.Equal(t, 1, pc.ObjectCount())
}

func Test_Parse_twoObjectsWithPreposition(t *testing.T) {
	p := NewParser()
	pc := p.Parse([]Token{
		{Word: "PUT", Type: TokenUnknown},
		{Word: "LAMP", Type: TokenUnknown},
		{Word: "IN", Type: TokenPreposition},
		{Word: "BOX", Type: TokenUnknown},
	})
	require.Len(t, pc.NounPhrases, 2)
	assert.Equal(t, "LAMP", pc.NounPhrases[0].Noun)
	assert.Equal(t, "BOX", pc.NounPhrases[1].Noun)
	assert.Equal(t, "IN", pc.Preposition)
	assert.Equal(t, 2, pc.ObjectCount())
}

func Test_Parse_onlyFirstPrepositionIsRecorded(t *testing.T) {
	p := NewParser()
	pc := p.Parse([]Token{
		{Word: "LOOK", Type: TokenVerb},
		{Word: "AT", Type: TokenPreposition},
		{Word: "LAMP", Type: TokenUnknown},
		{Word: "WITH", Type: TokenPreposition},
		{Word: "GLASSES", Type: TokenUnknown},
	})
	assert.Equal(t, "AT", pc.Preposition)
	require.Len(t, pc.NounPhrases, 2)
	assert.Equal(t, "LAMP", pc.NounPhrases[0].Noun)
	assert.Equal(t, "GLASSES", pc.NounPhrases[1].Noun)
}

func Test_Parse_midSentenceDirectionClosesPhraseAndAddsDirectionNoun(t *testing.T) {
	p := NewParser()
	pc := p.Parse([]Token{
		{Word: "THROW", Type: TokenVerb},
		{Word: "BALL", Type: TokenUnknown},
		{Word: "NORTH", Type: TokenDirection},
	})
	require.Len(t, pc.NounPhrases, 2)
	assert.Equal(t, "BALL", pc.NounPhrases[0].Noun)
	assert.Equal(t, "NORTH", pc.NounPhrases[1].Noun)
	assert.Empty(t, pc.NounPhrases[1].Adjectives)
}
