package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

// testEvaluator is a minimal stand-in for the real evaluator: literals
// evaluate to themselves, locals/globals resolve from plain maps, and
// output/input/randomness/interrupts/system are recorded rather than
// performed for real.
type testEvaluator struct {
	w        *world.World
	locals   map[zilast.Atom]zilast.Value
	globals  map[zilast.Atom]zilast.Value
	output   string
	input    []string
	randNext int
	stack    []zilast.Value
	routines map[zilast.Atom]func([]zilast.Value) zilast.Value
	ints     *testInterrupts
	sys      *testSystem
}

func newTestEvaluator() *testEvaluator {
	return &testEvaluator{
		w:        world.New(),
		locals:   make(map[zilast.Atom]zilast.Value),
		globals:  make(map[zilast.Atom]zilast.Value),
		routines: make(map[zilast.Atom]func([]zilast.Value) zilast.Value),
		ints:     &testInterrupts{},
		sys:      &testSystem{},
	}
}

func (e *testEvaluator) Eval(n zilast.Node) (zilast.Value, error) {
	switch v := n.(type) {
	case *zilast.NumberNode:
		return zilast.NewNumber(v.Value), nil
	case *zilast.StringNode:
		return zilast.NewString(v.Value), nil
	case *zilast.AtomNode:
		if v.Name == zilast.AtomTrue || v.Name == zilast.AtomTRUE {
			return zilast.True, nil
		}
		if v.Name == zilast.AtomFalse {
			return zilast.False, nil
		}
		return zilast.NewAtomValue(v.Name), nil
	case *zilast.QuotedAtom:
		return zilast.NewAtomValue(v.Name), nil
	case *zilast.LocalRef:
		if val, ok := e.locals[v.Name]; ok {
			return val, nil
		}
		return zilast.Nil, nil
	case *zilast.GlobalRef:
		if val, ok := e.globals[v.Name]; ok {
			return val, nil
		}
		if _, ok := e.w.Object(v.Name); ok {
			return zilast.NewObject(zilast.ObjectHandle{Name: v.Name}), nil
		}
		return zilast.Nil, nil
	case *zilast.List:
		vals := make([]zilast.Value, len(v.Elements))
		for i, elem := range v.Elements {
			ev, err := e.Eval(elem)
			if err != nil {
				return zilast.Nil, err
			}
			vals[i] = ev
		}
		return zilast.NewList(vals), nil
	default:
		return zilast.Nil, nil
	}
}

func (e *testEvaluator) World() *world.World                         { return e.w }
func (e *testEvaluator) Local(name zilast.Atom) (zilast.Value, bool)  { v, ok := e.locals[name]; return v, ok }
func (e *testEvaluator) SetLocal(name zilast.Atom, v zilast.Value)    { e.locals[name] = v }
func (e *testEvaluator) Global(name zilast.Atom) (zilast.Value, bool) { v, ok := e.globals[name]; return v, ok }
func (e *testEvaluator) SetGlobal(name zilast.Atom, v zilast.Value)   { e.globals[name] = v }
func (e *testEvaluator) Print(s string)                              { e.output += s }
func (e *testEvaluator) ReadLine() string {
	if len(e.input) == 0 {
		return ""
	}
	line := e.input[0]
	e.input = e.input[1:]
	return line
}
func (e *testEvaluator) Random(n int) int             { return e.randNext % n }
func (e *testEvaluator) Interrupts() InterruptManager { return e.ints }
func (e *testEvaluator) System() System               { return e.sys }
func (e *testEvaluator) CallRoutine(name zilast.Atom, args []zilast.Value) (zilast.Value, error) {
	if fn, ok := e.routines[name]; ok {
		return fn(args), nil
	}
	return zilast.Nil, nil
}
func (e *testEvaluator) Push(v zilast.Value) { e.stack = append(e.stack, v) }
func (e *testEvaluator) PopStack() (zilast.Value, bool) {
	if len(e.stack) == 0 {
		return zilast.Nil, false
	}
	last := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return last, true
}

type testInterrupts struct {
	nextID  int
	enabled map[zilast.Atom]bool
}

func (t *testInterrupts) Queue(routine zilast.Atom, turns int) int {
	t.nextID++
	return t.nextID
}
func (t *testInterrupts) Dequeue(id int) bool { return true }
func (t *testInterrupts) Enable(routine zilast.Atom) {
	if t.enabled == nil {
		t.enabled = make(map[zilast.Atom]bool)
	}
	t.enabled[routine] = true
}
func (t *testInterrupts) Disable(routine zilast.Atom) {
	if t.enabled == nil {
		t.enabled = make(map[zilast.Atom]bool)
	}
	t.enabled[routine] = false
}

type testSystem struct {
	saved   string
	failing bool
}

func (s *testSystem) Save(name string) error {
	if s.failing {
		return assert.AnError
	}
	s.saved = name
	return nil
}
func (s *testSystem) Restore(name string) error {
	if s.failing {
		return assert.AnError
	}
	return nil
}
func (s *testSystem) Restart() error { return nil }
func (s *testSystem) Verify() bool   { return true }

func num(n int) zilast.Node   { return &zilast.NumberNode{Value: n} }
func str(s string) zilast.Node { return &zilast.StringNode{Value: s} }
func atom(a string) zilast.Node { return &zilast.AtomNode{Name: zilast.Intern(a)} }
func global(a string) zilast.Node { return &zilast.GlobalRef{Name: zilast.Intern(a)} }

func Test_Arithmetic(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	add, _ := r.Get(zilast.Intern("+"))
	v, err := add(nil, ev)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Num())

	v, err = add([]zilast.Node{num(2), num(3), num(4)}, ev)
	require.NoError(t, err)
	assert.Equal(t, 9, v.Num())

	sub, _ := r.Get(zilast.Intern("-"))
	v, _ = sub([]zilast.Node{num(5)}, ev)
	assert.Equal(t, -5, v.Num())

	div, _ := r.Get(zilast.Intern("/"))
	v, _ = div([]zilast.Node{num(10), num(0), num(2)}, ev)
	assert.Equal(t, 5, v.Num())

	mod, _ := r.Get(zilast.Intern("MOD"))
	v, _ = mod([]zilast.Node{num(7), num(3)}, ev)
	assert.Equal(t, 1, v.Num())
}

func Test_Comparison(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	less, _ := r.Get(zilast.Intern("L?"))
	v, _ := less([]zilast.Node{num(1), num(2)}, ev)
	assert.True(t, v.Truthy())

	zero, _ := r.Get(zilast.Intern("ZERO?"))
	v, _ = zero([]zilast.Node{num(0)}, ev)
	assert.True(t, v.Truthy())

	eq, _ := r.Get(zilast.Intern("="))
	v, _ = eq([]zilast.Node{str("a"), str("a")}, ev)
	assert.True(t, v.Truthy())

	ev.SetGlobal(zilast.Intern("COUNT"), zilast.NewNumber(3))
	dless, _ := r.Get(zilast.Intern("DLESS?"))
	v, _ = dless([]zilast.Node{global("COUNT"), num(3)}, ev)
	assert.True(t, v.Truthy())
	cur, _ := ev.Global(zilast.Intern("COUNT"))
	assert.Equal(t, 2, cur.Num())
}

func Test_Logic(t *testing.T) {
	r := New()
	ev := newTestEvaluator()
	not, _ := r.Get(zilast.Intern("NOT"))
	v, _ := not([]zilast.Node{num(0)}, ev)
	assert.False(t, v.Truthy())
}

func Test_BitOps(t *testing.T) {
	r := New()
	ev := newTestEvaluator()
	band, _ := r.Get(zilast.Intern("BAND"))
	v, _ := band([]zilast.Node{num(6), num(3)}, ev)
	assert.Equal(t, 2, v.Num())

	btst, _ := r.Get(zilast.Intern("BTST"))
	v, _ = btst([]zilast.Node{num(6), num(2)}, ev)
	assert.True(t, v.Truthy())
}

func Test_ObjectOps(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	room := world.NewObject(zilast.Intern("KITCHEN"))
	lamp := world.NewObject(zilast.Intern("LAMP"))
	ev.w.AddObject(room)
	ev.w.AddObject(lamp)

	move, _ := r.Get(zilast.Intern("MOVE"))
	_, err := move([]zilast.Node{global("LAMP"), global("KITCHEN")}, ev)
	require.NoError(t, err)
	assert.Equal(t, room, lamp.Loc())

	fset, _ := r.Get(zilast.Intern("FSET"))
	_, err = fset([]zilast.Node{global("LAMP"), atom("LIGHTBIT")}, ev)
	require.NoError(t, err)
	assert.True(t, lamp.HasFlag(zilast.Intern("LIGHTBIT")))

	putp, _ := r.Get(zilast.Intern("PUTP"))
	_, err = putp([]zilast.Node{global("LAMP"), atom("SIZE"), num(5)}, ev)
	require.NoError(t, err)

	getp, _ := r.Get(zilast.Intern("GETP"))
	v, err := getp([]zilast.Node{global("LAMP"), atom("SIZE")}, ev)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Num())

	loc, _ := r.Get(zilast.Intern("LOC"))
	v, _ = loc([]zilast.Node{global("LAMP")}, ev)
	assert.Equal(t, zilast.Intern("KITCHEN"), v.Object().Name)
}

func Test_TableOps(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	ltable, _ := r.Get(zilast.Intern("LTABLE"))
	tv, err := ltable([]zilast.Node{num(10), num(20), num(30)}, ev)
	require.NoError(t, err)
	require.Equal(t, zilast.KindTable, tv.Kind())
	ev.SetGlobal(zilast.Intern("TBL"), tv)

	get, _ := r.Get(zilast.Intern("GET"))
	tblNode := global("TBL")
	v, err := get([]zilast.Node{tblNode, num(0)}, ev)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Num()) // length prefix word

	v, err = get([]zilast.Node{tblNode, num(1)}, ev)
	require.NoError(t, err)
	assert.Equal(t, 10, v.Num())

	put, _ := r.Get(zilast.Intern("PUT"))
	_, err = put([]zilast.Node{tblNode, num(1), num(99)}, ev)
	require.NoError(t, err)
	v, _ = get([]zilast.Node{tblNode, num(1)}, ev)
	assert.Equal(t, 99, v.Num())
}

func Test_ListOps(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	lst := &zilast.List{Elements: []zilast.Node{num(1), num(2), num(3)}}

	length, _ := r.Get(zilast.Intern("LENGTH"))
	v, _ := length([]zilast.Node{lst}, ev)
	assert.Equal(t, 3, v.Num())

	first, _ := r.Get(zilast.Intern("FIRST"))
	v, _ = first([]zilast.Node{lst}, ev)
	assert.Equal(t, 1, v.Num())

	rest, _ := r.Get(zilast.Intern("REST"))
	v, _ = rest([]zilast.Node{lst}, ev)
	assert.Equal(t, []zilast.Value{zilast.NewNumber(2), zilast.NewNumber(3)}, v.List())

	empty, _ := r.Get(zilast.Intern("EMPTY?"))
	v, _ = empty([]zilast.Node{&zilast.List{}}, ev)
	assert.True(t, v.Truthy())

	memq, _ := r.Get(zilast.Intern("MEMQ"))
	v, _ = memq([]zilast.Node{num(2), lst}, ev)
	assert.True(t, v.Truthy())
}

func Test_StringOps(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	concat, _ := r.Get(zilast.Intern("CONCAT"))
	v, _ := concat([]zilast.Node{str("foo"), str("bar")}, ev)
	assert.Equal(t, "foobar", v.Str())

	sub, _ := r.Get(zilast.Intern("SUBSTRING"))
	v, _ = sub([]zilast.Node{str("hello world"), num(0), num(5)}, ev)
	assert.Equal(t, "hello", v.Str())
}

func Test_IO(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	print_, _ := r.Get(zilast.Intern("PRINT"))
	_, err := print_([]zilast.Node{str("hi")}, ev)
	require.NoError(t, err)
	assert.Equal(t, "hi", ev.output)

	crlf, _ := r.Get(zilast.Intern("CRLF"))
	_, _ = crlf(nil, ev)
	assert.Equal(t, "hi\n", ev.output)

	ev.input = []string{"yes"}
	yes, _ := r.Get(zilast.Intern("YES?"))
	v, _ := yes(nil, ev)
	assert.True(t, v.Truthy())

	lex, _ := r.Get(zilast.Intern("LEX"))
	v, _ = lex([]zilast.Node{str("take lamp")}, ev)
	require.Equal(t, 2, len(v.List()))
	assert.Equal(t, "take", v.List()[0].Str())
}

func Test_Random(t *testing.T) {
	r := New()
	ev := newTestEvaluator()
	ev.randNext = 2

	random, _ := r.Get(zilast.Intern("RANDOM"))
	v, err := random([]zilast.Node{num(6)}, ev)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Num()) // 2 % 6 + 1
}

func Test_MinMax(t *testing.T) {
	r := New()
	ev := newTestEvaluator()

	min, _ := r.Get(zilast.Intern("MIN"))
	v, _ := min([]zilast.Node{num(5), num(2)}, ev)
	assert.Equal(t, 2, v.Num())

	max, _ := r.Get(zilast.Intern("MAX"))
	v, _ = max([]zilast.Node{num(5), num(2)}, ev)
	assert.Equal(t, 5, v.Num())
}

func Test_Assigned(t *testing.T) {
	r := New()
	ev := newTestEvaluator()
	ev.SetLocal(zilast.Intern("X"), zilast.NewNumber(1))

	assigned, _ := r.Get(zilast.Intern("ASSIGNED?"))
	v, _ := assigned([]zilast.Node{atom("X")}, ev)
	assert.True(t, v.Truthy())

	v, _ = assigned([]zilast.Node{atom("Y")}, ev)
	assert.False(t, v.Truthy())
}

func Test_Has(t *testing.T) {
	r := New()
	assert.True(t, r.Has(zilast.Intern("+")))
	assert.False(t, r.Has(zilast.Intern("NOT-AN-OP")))
}
