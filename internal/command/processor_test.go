package command

import (
	"testing"

	"github.com/dekarrin/zil/internal/ops"
	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zerrors"
	"github.com/dekarrin/zil/internal/zilast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ops.Evaluator = (*fakeEvaluator)(nil)

// fakeEvaluator is a minimal ops.Evaluator stand-in recording only what
// Process needs: globals set along the way.
type fakeEvaluator struct {
	globals map[zilast.Atom]zilast.Value
}

func newFakeEvaluator() *fakeEvaluator {
	return &fakeEvaluator{globals: make(map[zilast.Atom]zilast.Value)}
}

func (e *fakeEvaluator) Eval(n zilast.Node) (zilast.Value, error)     { return zilast.Nil, nil }
func (e *fakeEvaluator) World() *world.World                         { return nil }
func (e *fakeEvaluator) Local(name zilast.Atom) (zilast.Value, bool)  { return zilast.Nil, false }
func (e *fakeEvaluator) SetLocal(name zilast.Atom, v zilast.Value)    {}
func (e *fakeEvaluator) Global(name zilast.Atom) (zilast.Value, bool) { v, ok := e.globals[name]; return v, ok }
func (e *fakeEvaluator) SetGlobal(name zilast.Atom, v zilast.Value)   { e.globals[name] = v }
func (e *fakeEvaluator) Print(s string)                               {}
func (e *fakeEvaluator) ReadLine() string                             { return "" }
func (e *fakeEvaluator) Random(n int) int                             { return 0 }
func (e *fakeEvaluator) Interrupts() ops.InterruptManager             { return nil }
func (e *fakeEvaluator) System() ops.System                           { return nil }
func (e *fakeEvaluator) CallRoutine(name zilast.Atom, args []zilast.Value) (zilast.Value, error) {
	return zilast.Nil, nil
}
func (e *fakeEvaluator) Push(v zilast.Value)            {}
func (e *fakeEvaluator) PopStack() (zilast.Value, bool) { return zilast.Nil, false }

func buildProcessorWorld(t *testing.T) (*world.World, *world.Object) {
	t.Helper()
	w := world.New()

	room := world.NewObject(zilast.Intern("ROOM"))
	w.AddObject(room)

	lamp := world.NewObject(zilast.Intern("LAMP"))
	lamp.Synonyms = []zilast.Atom{zilast.Intern("LAMP")}
	lamp.MoveTo(room)
	w.AddObject(lamp)

	box := world.NewObject(zilast.Intern("BOX"))
	box.Synonyms = []zilast.Atom{zilast.Intern("BOX")}
	box.MoveTo(room)
	w.AddObject(box)

	north := zilast.Intern("NORTH")
	w.Directions = append(w.Directions, north)
	w.DirectionSet.Add(north)

	take := zilast.Intern("TAKE")
	w.Synonyms[take] = take
	w.Syntax[take] = []world.SyntaxEntry{
		{Verb: take, Action: zilast.Intern("V-TAKE"), ObjectCount: 1},
	}

	put := zilast.Intern("PUT")
	w.Synonyms[put] = put
	w.Syntax[put] = []world.SyntaxEntry{
		{Verb: put, Action: zilast.Intern("V-PUT"), ObjectCount: 2, Prepositions: []zilast.Atom{zilast.Intern("IN")}},
	}

	return w, room
}

func Test_Process_emptyInput(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("   ", ev, room)
	assert.False(t, res.Success)
	require.Error(t, err)
	assert.Equal(t, zerrors.KindUnrecognizedCommand, zerrors.KindOf(err))
}

func Test_Process_bareDirectionSetsWalk(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("north", ev, room)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, zilast.Intern("V-WALK"), res.Action)
	assert.Equal(t, zilast.NewAtomValue(zilast.Intern("NORTH")), ev.globals[atomPDir])
}

func Test_Process_noVerbFails(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("lamp", ev, room)
	assert.False(t, res.Success)
	require.Error(t, err)
	assert.Equal(t, zerrors.KindUnrecognizedCommand, zerrors.KindOf(err))
}

func Test_Process_resolvesDirectObjectAndSetsParserState(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("take lamp", ev, room)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, zilast.Intern("V-TAKE"), res.Action)
	assert.Equal(t, zilast.Intern("LAMP"), res.DirectObjectName)
	assert.Equal(t, zilast.NewAtomValue(zilast.Intern("V-TAKE")), ev.globals[atomPRSA])
	assert.Equal(t, zilast.NewObject(zilast.ObjectHandle{Name: zilast.Intern("LAMP")}), ev.globals[atomPRSO])
}

func Test_Process_missingNounReportsNotSeen(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("take sword", ev, room)
	assert.False(t, res.Success)
	require.Error(t, err)
	assert.Equal(t, zerrors.KindObjectNotVisible, zerrors.KindOf(err))
	assert.Equal(t, "I don't see any sword here.", zerrors.GameMessage(err))
}

func Test_Process_unmatchedSyntaxReportsUsageError(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("put lamp", ev, room)
	assert.False(t, res.Success)
	require.Error(t, err)
	assert.Equal(t, zerrors.KindSyntaxMismatch, zerrors.KindOf(err))
	assert.Equal(t, "I don't understand how to use 'put' that way.", zerrors.GameMessage(err))
}

func Test_Process_twoObjectVerbWithPreposition(t *testing.T) {
	w, room := buildProcessorWorld(t)
	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("put lamp in box", ev, room)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, zilast.Intern("LAMP"), res.DirectObjectName)
	assert.Equal(t, zilast.Intern("BOX"), res.IndirectObjectName)
}

func Test_Process_disambiguationListsCandidates(t *testing.T) {
	w, room := buildProcessorWorld(t)
	dup := world.NewObject(zilast.Intern("LAMP2"))
	dup.Synonyms = []zilast.Atom{zilast.Intern("LAMP")}
	dup.MoveTo(room)
	w.AddObject(dup)

	p := NewProcessor(w)
	ev := newFakeEvaluator()

	res, err := p.Process("take lamp", ev, room)
	assert.False(t, res.Success)
	require.Error(t, err)
	assert.Equal(t, zerrors.KindDisambiguationNeeded, zerrors.KindOf(err))
	assert.Contains(t, zerrors.GameMessage(err), "Which do you mean:")
}
