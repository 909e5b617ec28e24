// Package eval is the tree-walking evaluator: it walks an expanded AST node
// and returns a Value, threading a lexical scope stack for locals, a shared
// output accumulator, and the operation registry and routine table reached
// through the world model. Control-flow special forms (COND, PROG, REPEAT,
// AND, OR, MAPF, RETURN, RTRUE, RFALSE, AGAIN, MAPSTOP, MAPRET) are
// dispatched directly here rather than through the operation registry,
// since they need push/pop access to the scope stack and the non-local
// control-flow channel that internal/ops deliberately has no visibility
// into.
package eval

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/dekarrin/zil/internal/ops"
	"github.com/dekarrin/zil/internal/output"
	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zerrors"
	"github.com/dekarrin/zil/internal/zilast"
)

var (
	opCond    = zilast.Intern("COND")
	opProg    = zilast.Intern("PROG")
	opRepeat  = zilast.Intern("REPEAT")
	opAnd     = zilast.Intern("AND")
	opOr      = zilast.Intern("OR")
	opMapf    = zilast.Intern("MAPF")
	opReturn  = zilast.Intern("RETURN")
	opRtrue   = zilast.Intern("RTRUE")
	opRfalse  = zilast.Intern("RFALSE")
	opAgain   = zilast.Intern("AGAIN")
	opMapstop = zilast.Intern("MAPSTOP")
	opMapret  = zilast.Intern("MAPRET")
)

var _ ops.Evaluator = (*Evaluator)(nil)

// Evaluator walks AST nodes against a single world, dispatching through the
// operation registry and the routine table. It implements ops.Evaluator.
type Evaluator struct {
	world    *world.World
	registry *ops.Registry
	out      *output.Buffer
	in       *bufio.Scanner

	scopes []map[zilast.Atom]zilast.Value
	stack  []zilast.Value

	rng        *rand.Rand
	interrupts ops.InterruptManager
	system     ops.System
}

// New returns an Evaluator over w, writing to out and reading player input
// from in. interrupts and system may be nil only in tests that never
// exercise QUEUE/ENABLE/DISABLE/DEQUEUE or SAVE/RESTORE/RESTART/VERIFY.
// rng may be nil, in which case a default time-seeded source is used;
// callers wanting deterministic RANDOM output should inject a seeded one.
func New(w *world.World, out *output.Buffer, in io.Reader, interrupts ops.InterruptManager, system ops.System, rng *rand.Rand) *Evaluator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Evaluator{
		world:      w,
		registry:   ops.New(),
		out:        out,
		in:         bufio.NewScanner(in),
		scopes:     []map[zilast.Atom]zilast.Value{make(map[zilast.Atom]zilast.Value)},
		interrupts: interrupts,
		system:     system,
		rng:        rng,
	}
}

// World returns the world model this evaluator mutates.
func (e *Evaluator) World() *world.World { return e.world }

// Interrupts returns the interrupt scheduler.
func (e *Evaluator) Interrupts() ops.InterruptManager { return e.interrupts }

// System returns the save/restore/restart/verify implementation.
func (e *Evaluator) System() ops.System { return e.system }

// Print appends s to the shared output buffer.
func (e *Evaluator) Print(s string) { e.out.Write(s) }

// ReadLine reads one line of player input, or "" at end of input.
func (e *Evaluator) ReadLine() string {
	if !e.in.Scan() {
		return ""
	}
	return e.in.Text()
}

// Random returns a pseudo-random integer in [0, n).
func (e *Evaluator) Random(n int) int {
	if n < 1 {
		return 0
	}
	return e.rng.Intn(n)
}

// Push appends v to the PUSH/RSTACK data stack.
func (e *Evaluator) Push(v zilast.Value) { e.stack = append(e.stack, v) }

// PopStack pops and returns the top of the data stack.
func (e *Evaluator) PopStack() (zilast.Value, bool) {
	if len(e.stack) == 0 {
		return zilast.Nil, false
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, true
}

// Local looks up name in the current call's scope stack, innermost frame
// first.
func (e *Evaluator) Local(name zilast.Atom) (zilast.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return zilast.Nil, false
}

// SetLocal assigns name in whichever frame already binds it, or in the
// innermost frame if it is not yet bound anywhere in the current call.
func (e *Evaluator) SetLocal(name zilast.Atom, v zilast.Value) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return
		}
	}
	e.scopes[len(e.scopes)-1][name] = v
}

// Global looks up a global variable.
func (e *Evaluator) Global(name zilast.Atom) (zilast.Value, bool) {
	v, ok := e.world.Globals[name]
	return v, ok
}

// SetGlobal assigns a global variable.
func (e *Evaluator) SetGlobal(name zilast.Atom, v zilast.Value) {
	e.world.Globals[name] = v
}

// pushScope opens a new lexical frame (for PROG/REPEAT/MAPF), returning a
// function that restores the prior stack depth.
func (e *Evaluator) pushScope() func() {
	e.scopes = append(e.scopes, make(map[zilast.Atom]zilast.Value))
	depth := len(e.scopes)
	return func() { e.scopes = e.scopes[:depth-1] }
}

// Eval walks n and returns its value.
func (e *Evaluator) Eval(n zilast.Node) (zilast.Value, error) {
	switch v := n.(type) {
	case *zilast.NumberNode:
		return zilast.NewNumber(v.Value), nil
	case *zilast.StringNode:
		return zilast.NewString(v.Value), nil
	case *zilast.QuotedAtom:
		return zilast.NewAtomValue(v.Name), nil
	case *zilast.LocalRef:
		val, _ := e.Local(v.Name)
		return val, nil
	case *zilast.GlobalRef:
		if val, ok := e.Global(v.Name); ok {
			return val, nil
		}
		if _, ok := e.world.Object(v.Name); ok {
			return zilast.NewObject(zilast.ObjectHandle{Name: v.Name}), nil
		}
		return zilast.Nil, nil
	case *zilast.AtomNode:
		return e.evalAtom(v.Name)
	case *zilast.Form:
		return e.evalForm(v)
	case *zilast.List:
		vals := make([]zilast.Value, len(v.Elements))
		for i, el := range v.Elements {
			ev, err := e.Eval(el)
			if err != nil {
				return zilast.Nil, err
			}
			vals[i] = ev
		}
		return zilast.NewList(vals), nil
	case *zilast.PercentEval:
		return e.Eval(v.Form)
	case *zilast.Splice:
		return e.Eval(v.Form)
	case *zilast.CharLiteral:
		return zilast.NewNumber(int(v.Char)), nil
	case *zilast.HashExpr:
		vals := make([]zilast.Value, len(v.Values))
		for i, el := range v.Values {
			ev, err := e.Eval(el)
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

func (e *Evaluator) evalAtom(name zilast.Atom) (zilast.Value, error) {
	switch name {
	case zilast.AtomTrue, zilast.AtomElse, zilast.AtomTRUE:
		return zilast.True, nil
	case zilast.AtomFalse:
		return zilast.False, nil
	}
	if val, ok := e.Global(name); ok {
		return val, nil
	}
	return zilast.Nil, nil
}

func (e *Evaluator) evalForm(f *zilast.Form) (zilast.Value, error) {
	if f.EmptyForm() {
		return zilast.False, nil
	}

	op, ok := f.OperatorAtom()
	if !ok {
		v, err := e.Eval(f.Operator)
		if err != nil {
			return zilast.Nil, err
		}
		if v.Kind() != zilast.KindAtom {
			return zilast.Nil, zerrors.UnknownOperator(v.Str())
		}
		op = v.Atom()
	}

	switch op {
	case opCond:
		return e.evalCond(f.Args)
	case opProg:
		return e.evalProg(f.Args)
	case opRepeat:
		return e.evalRepeat(f.Args)
	case opAnd:
		return e.evalAnd(f.Args)
	case opOr:
		return e.evalOr(f.Args)
	case opMapf:
		return e.evalMapf(f.Args)
	case opReturn:
		return e.evalReturn(f.Args)
	case opRtrue:
		return zilast.Nil, &signal{kind: signalReturn, value: zilast.True}
	case opRfalse:
		return zilast.Nil, &signal{kind: signalReturn, value: zilast.False}
	case opAgain:
		return zilast.Nil, &signal{kind: signalAgain}
	case opMapstop:
		return e.evalMapSignal(f.Args, signalMapStop)
	case opMapret:
		return e.evalMapSignal(f.Args, signalMapRet)
	}

	if fn, ok := e.registry.Get(op); ok {
		return fn(f.Args, e)
	}

	if _, ok := e.world.Routine(op); ok {
		args, err := e.evalList(f.Args)
		if err != nil {
			return zilast.Nil, err
		}
		return e.CallRoutine(op, args)
	}

	return zilast.Nil, zerrors.UnknownOperator(op.String())
}

func (e *Evaluator) evalList(nodes []zilast.Node) ([]zilast.Value, error) {
	out := make([]zilast.Value, len(nodes))
	for i, n := range nodes {
		v, err := e.Eval(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Evaluator) evalReturn(args []zilast.Node) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.Nil, &signal{kind: signalReturn}
	}
	v, err := e.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	return zilast.Nil, &signal{kind: signalReturn, value: v}
}

func (e *Evaluator) evalMapSignal(args []zilast.Node, kind signalKind) (zilast.Value, error) {
	if len(args) == 0 {
		return zilast.Nil, &signal{kind: kind}
	}
	v, err := e.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	return zilast.Nil, &signal{kind: kind, value: v}
}

// nameOf resolves a flag/variable-name argument without evaluating it as a
// variable reference, mirroring internal/ops's own flagName helper.
func nameOf(n zilast.Node) (zilast.Atom, bool) {
	switch v := n.(type) {
	case *zilast.AtomNode:
		return v.Name, true
	case *zilast.QuotedAtom:
		return v.Name, true
	case *zilast.GlobalRef:
		return v.Name, true
	case *zilast.LocalRef:
		return v.Name, true
	default:
		return "", false
	}
}
