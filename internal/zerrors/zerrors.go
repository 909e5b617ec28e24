// Package zerrors defines the typed error taxonomy used across the load and
// run pipelines. Load-time errors are fatal; runtime errors carry a
// human-readable game message distinct from the technical Error() string,
// and are meant to be reported at the turn boundary without aborting the
// session.
package zerrors

import (
	"fmt"
	"strings"

	"github.com/dekarrin/zil/internal/util"
)

// Kind classifies an error for callers that need to branch on taxonomy
// (e.g. the CLI deciding whether to abort or continue the turn loop) without
// string-matching Error().
type Kind int

const (
	KindUnknown Kind = iota
	KindFileNotFound
	KindReadError
	KindParseError
	KindCircularDependency
	KindUnknownOperator
	KindUnknownRoutine
	KindUnrecognizedCommand
	KindSyntaxMismatch
	KindObjectNotVisible
	KindObjectNotAccessible
	KindDisambiguationNeeded
	KindIndexOutOfRange
)

// LoadError is a fatal error raised while resolving, reading, or parsing
// source files. It carries no separate game-facing message: load errors are
// reported to an operator, not a player.
type LoadError struct {
	kind Kind
	msg  string
	wrap error
}

func (e *LoadError) Error() string { return e.msg }
func (e *LoadError) Kind() Kind    { return e.kind }
func (e *LoadError) Unwrap() error { return e.wrap }

func newLoad(k Kind, format string, a ...interface{}) error {
	return &LoadError{kind: k, msg: fmt.Sprintf(format, a...)}
}

func FileNotFound(name string) error {
	return newLoad(KindFileNotFound, "%s: file not found", name)
}

func ReadError(name string, wrap error) error {
	return &LoadError{kind: KindReadError, msg: fmt.Sprintf("%s: %v", name, wrap), wrap: wrap}
}

func ParseError(name string, wrap error) error {
	return &LoadError{kind: KindParseError, msg: fmt.Sprintf("%s: %v", name, wrap), wrap: wrap}
}

func CircularDependency(cycle []string) error {
	chain := cycle[0]
	for _, n := range cycle[1:] {
		chain += " -> " + n
	}
	return newLoad(KindCircularDependency, "circular INSERT-FILE dependency: %s", chain)
}

// RuntimeError is an error surfaced to the player during a command or
// routine evaluation. GameMessage is what the player sees; Error is the
// technical description used in logs and test failures.
type RuntimeError struct {
	kind  Kind
	msg   string
	human string
	wrap  error
}

func (e *RuntimeError) Error() string       { return e.msg }
func (e *RuntimeError) GameMessage() string { return e.human }
func (e *RuntimeError) Kind() Kind          { return e.kind }
func (e *RuntimeError) Unwrap() error       { return e.wrap }

func newRuntime(k Kind, human, technicalFormat string, a ...interface{}) error {
	technical := fmt.Sprintf(technicalFormat, a...)
	if human == "" {
		human = technical
	}
	return &RuntimeError{kind: k, msg: technical, human: human}
}

func UnknownOperator(name string) error {
	return newRuntime(KindUnknownOperator, "", "unknown operator %q", name)
}

func UnknownRoutine(name string) error {
	return newRuntime(KindUnknownRoutine, "", "unknown routine %q", name)
}

func UnrecognizedCommand() error {
	return newRuntime(KindUnrecognizedCommand, "I don't understand that.", "no syntax entry matched the input")
}

func SyntaxMismatch(verb string) error {
	return newRuntime(KindSyntaxMismatch, fmt.Sprintf("I don't understand how to use '%s' that way.", strings.ToLower(verb)),
		"no syntax entry for verb %q matched the given object count/prepositions", verb)
}

func ObjectNotVisible(noun string) error {
	return newRuntime(KindObjectNotVisible, fmt.Sprintf("I don't see any %s here.", noun),
		"noun phrase %q resolved to no visible object", noun)
}

func ObjectNotAccessible(noun string) error {
	return newRuntime(KindObjectNotAccessible, fmt.Sprintf("You can't reach the %s.", noun),
		"noun phrase %q resolved to an object outside the open-container chain", noun)
}

// DisambiguationNeeded reports that a noun phrase matched more than one
// accessible object. candidates lists each match's player-facing name, in
// world order, and is folded into the game message so the player can see
// what to choose between.
func DisambiguationNeeded(noun string, candidates []string) error {
	return newRuntime(KindDisambiguationNeeded,
		fmt.Sprintf("Which do you mean: %s?", util.MakeTextList(candidates)),
		"noun phrase %q matched more than one visible object: %s", noun, strings.Join(candidates, ", "))
}

func IndexOutOfRange(table string, index int) error {
	return newRuntime(KindIndexOutOfRange, "",
		"table %q: index %d out of range", table, index)
}

// GameMessage returns the message that should be shown to the player for
// err. Errors without a game-facing message (load errors, internal errors)
// fall back to Error().
func GameMessage(err error) string {
	if re, ok := err.(*RuntimeError); ok {
		return re.GameMessage()
	}
	return err.Error()
}

// KindOf extracts the Kind of err if it is one of the types defined in this
// package, or KindUnknown otherwise.
func KindOf(err error) Kind {
	switch e := err.(type) {
	case *LoadError:
		return e.kind
	case *RuntimeError:
		return e.kind
	default:
		return KindUnknown
	}
}
