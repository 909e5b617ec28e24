// Package zil contains a CLI-driven engine for loading a ZIL source tree and
// advancing its game state one command at a time until the player quits.
package zil

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/zil/internal/command"
	"github.com/dekarrin/zil/internal/directive"
	"github.com/dekarrin/zil/internal/eval"
	"github.com/dekarrin/zil/internal/input"
	"github.com/dekarrin/zil/internal/interrupt"
	"github.com/dekarrin/zil/internal/loader"
	"github.com/dekarrin/zil/internal/macro"
	"github.com/dekarrin/zil/internal/output"
	"github.com/dekarrin/zil/internal/serializer"
	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zerrors"
	"github.com/dekarrin/zil/internal/zilast"
)

const consoleOutputWidth = 80

var (
	atomHere = zilast.Intern("HERE")
	atomGo   = zilast.Intern("GO")
)

// deathPhrases and victoryPhrases are the substrings JSON mode scans a
// turn's output for to derive is_dead/is_complete. Matching is case
// insensitive; this is a heuristic over printed text, not a check against
// game state, so a room description that happens to contain one of these
// phrases would also trip it.
var (
	deathPhrases = []string{
		"you have died",
		"you are dead",
		"you're dead",
		"game over",
	}
	victoryPhrases = []string{
		"you have won",
		"congratulations",
		"you are victorious",
		"you have completed",
		"you win",
	}
)

// commandReader is the subset of input.DirectCommandReader /
// input.InteractiveCommandReader the engine depends on.
type commandReader interface {
	ReadCommand() (string, error)
	AllowBlank(bool)
	Close() error
}

// Engine runs a loaded ZIL world from an interactive shell attached to an
// input stream and an output stream.
type Engine struct {
	world     *world.World
	evaluator *eval.Evaluator
	processor *command.Processor
	out       *bufio.Writer
	outBuf    *output.Buffer
	in        commandReader

	jsonMode bool
	running  bool
}

// jsonLine is one line of JSON-mode output, matching the {type, output,
// command, is_dead, is_complete} shape.
type jsonLine struct {
	Type       string `json:"type"`
	Output     string `json:"output"`
	Command    string `json:"command,omitempty"`
	IsDead     bool   `json:"is_dead,omitempty"`
	IsComplete bool   `json:"is_complete,omitempty"`
}

// New loads the source tree rooted at entryPath and returns an Engine ready
// to run it against inputStream/outputStream.
//
// If nil is given for the input stream, os.Stdin is used. If nil is given
// for the output stream, os.Stdout is used. Readline-backed interactive
// input is used only when reading from the real stdin/stdout pair, JSON
// mode is off, and forceDirectInput is false; otherwise input is read
// line-by-line directly from inputStream.
func New(inputStream io.Reader, outputStream io.Writer, entryPath string, forceDirectInput, jsonMode bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	nodes, err := loader.Load(entryPath)
	if err != nil {
		return nil, err
	}

	nodes, err = macro.New().Expand(nodes)
	if err != nil {
		return nil, err
	}

	w := world.New()
	if err := directive.Process(nodes, w); err != nil {
		return nil, err
	}

	eng := &Engine{
		world:    w,
		out:      bufio.NewWriter(outputStream),
		outBuf:   output.New(),
		jsonMode: jsonMode,
	}

	useReadline := !forceDirectInput && !jsonMode && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	interrupts := interrupt.New()
	system := serializer.NewFileSystem(w, ".")
	eng.evaluator = eval.New(w, eng.outBuf, inputStream, interrupts, system, rand.New(rand.NewSource(1)))
	eng.processor = command.NewProcessor(w)

	return eng, nil
}

// Close releases resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}
	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}
	return nil
}

// RunUntilQuit runs startCommands (if any) and then reads commands from the
// input stream, applying each to the game, until a quit sentinel is read,
// the player dies or wins, or the input stream reaches EOF.
func (eng *Engine) RunUntilQuit(startCommands []string) error {
	eng.running = true
	defer func() { eng.running = false }()

	if err := eng.emitInit(eng.initialState()); err != nil {
		return err
	}

	for _, c := range startCommands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !eng.runOneCommand(c) {
			eng.running = false
			break
		}
	}

	for eng.running {
		line, err := eng.in.ReadCommand()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read command: %w", err)
		}

		if isQuitCommand(line) {
			break
		}

		if !eng.runOneCommand(line) {
			break
		}
	}

	return eng.emitGoodbye()
}

// initialState invokes the world's GO entry routine, if defined, and
// returns whatever it printed. Most ZIL-descended games define GO to set up
// HERE and describe the starting room; a world without one is assumed to
// have already arranged its own initial state via top-level forms.
func (eng *Engine) initialState() string {
	if _, ok := eng.world.Routine(atomGo); ok {
		eng.evaluator.CallRoutine(atomGo, nil)
	}
	return eng.outBuf.Flush()
}

// runOneCommand processes one line of player input against the current
// room and reports its outcome. It returns false if the engine should stop
// running (death or victory reached).
func (eng *Engine) runOneCommand(line string) bool {
	room := eng.currentRoom()
	result, err := eng.processor.Process(line, eng.evaluator, room)
	if err != nil {
		eng.reportTurn(line, zerrors.GameMessage(err))
		return true
	}

	if _, err := eng.evaluator.CallRoutine(result.Action, nil); err != nil {
		eng.reportTurn(line, err.Error())
		return true
	}

	text := eng.outBuf.Flush()
	eng.reportTurn(line, text)
	return !containsAny(text, deathPhrases) && !containsAny(text, victoryPhrases)
}

// currentRoom resolves the HERE global to the *world.Object it names, or
// nil if HERE is unset or names an object the world no longer has (neither
// should happen in a well-formed game, but the command pipeline tolerates a
// nil room by finding nothing accessible rather than panicking).
func (eng *Engine) currentRoom() *world.Object {
	v, ok := eng.world.Globals[atomHere]
	if !ok || v.Kind() != zilast.KindObject {
		return nil
	}
	room, _ := eng.world.Object(v.Object().Name)
	return room
}

func (eng *Engine) emitInit(text string) error {
	if eng.jsonMode {
		return eng.writeJSON(jsonLine{
			Type:   "init",
			Output: firstNonEmpty(text, "Welcome! Type 'look' to begin."),
		})
	}
	if text == "" {
		text = "Welcome! Type 'look' to begin."
	}
	return eng.writeLine(wrapConsole(text))
}

func (eng *Engine) reportTurn(cmd, text string) {
	isDead := containsAny(text, deathPhrases)
	isComplete := containsAny(text, victoryPhrases)

	if eng.jsonMode {
		eng.writeJSON(jsonLine{
			Type:       "response",
			Command:    cmd,
			Output:     text,
			IsDead:     isDead,
			IsComplete: isComplete,
		})
		return
	}

	if text != "" {
		eng.writeLine(wrapConsole(text))
	}
	if isDead {
		eng.writeLine("\n*** YOU HAVE DIED ***\n")
	} else if isComplete {
		eng.writeLine("\n*** CONGRATULATIONS! YOU WIN! ***\n")
	}
}

func (eng *Engine) emitGoodbye() error {
	if eng.jsonMode {
		return nil
	}
	return eng.writeLine("Goodbye")
}

func (eng *Engine) writeLine(s string) error {
	if _, err := eng.out.WriteString(s + "\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func (eng *Engine) writeJSON(line jsonLine) error {
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	return eng.writeLine(string(data))
}

func wrapConsole(s string) string {
	return rosed.Edit(s).Wrap(consoleOutputWidth).String()
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func isQuitCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "q":
		return true
	default:
		return false
	}
}

func containsAny(haystack string, phrases []string) bool {
	lower := strings.ToLower(haystack)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
