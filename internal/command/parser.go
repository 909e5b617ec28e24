package command

// Parser reshapes a token stream into a ParsedCommand. It carries no state
// of its own; parsing depends only on the tokens' classifications.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts tokens into a ParsedCommand. A single DIRECTION token, or a
// DIRECTION token in first position with more tokens following, is a bare
// movement command and short-circuits the rest of parsing. Otherwise a
// leading VERB token is consumed, and every remaining token either
// accumulates into the current noun phrase's word buffer, closes that
// buffer as a noun phrase on a PREPOSITION or DIRECTION boundary, or (for a
// PREPOSITION) is recorded as the command's preposition the first time one
// is seen.
func (p *Parser) Parse(tokens []Token) ParsedCommand {
	if len(tokens) == 0 {
		return ParsedCommand{}
	}

	// A leading direction word is always a bare movement command, whether
	// it stands alone ("NORTH") or is followed by more words that a fuller
	// grammar might otherwise try to parse as objects.
	if tokens[0].Type == TokenDirection {
		return ParsedCommand{Direction: tokens[0].Word}
	}

	var pc ParsedCommand
	startIdx := 0
	if tokens[0].Type == TokenVerb {
		pc.Verb = tokens[0].Word
		startIdx = 1
	}

	var buffer []string
	closePhrase := func() {
		if len(buffer) == 0 {
			return
		}
		noun := buffer[len(buffer)-1]
		var adjectives []string
		if len(buffer) > 1 {
			adjectives = append(adjectives, buffer[:len(buffer)-1]...)
		}
		pc.NounPhrases = append(pc.NounPhrases, NounPhrase{Noun: noun, Adjectives: adjectives})
		buffer = nil
	}

	for _, t := range tokens[startIdx:] {
		switch t.Type {
		case TokenPreposition:
			closePhrase()
			if pc.Preposition == "" {
				pc.Preposition = t.Word
			}
		case TokenDirection:
			closePhrase()
			pc.NounPhrases = append(pc.NounPhrases, NounPhrase{Noun: t.Word})
		default:
			buffer = append(buffer, t.Word)
		}
	}
	closePhrase()

	return pc
}
