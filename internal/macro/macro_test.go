package macro

import (
	"testing"

	"github.com/dekarrin/zil/internal/reader"
	"github.com/dekarrin/zil/internal/zilast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandSource(t *testing.T, src string) []zilast.Node {
	t.Helper()
	nodes, err := reader.Read(src)
	require.NoError(t, err)
	out, err := New().Expand(nodes)
	require.NoError(t, err)
	return out
}

func Test_Expand_tell(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <TELL "Hello " D ,LAMP CR>>`)
	require.Len(t, out, 1)
	routine := out[0].(*zilast.Routine)
	require.Len(t, routine.Body, 1)

	prog := routine.Body[0].(*zilast.Form)
	op, _ := prog.OperatorAtom()
	assert.Equal(t, zilast.Intern("PROG"), op)

	require.Len(t, prog.Args, 4) // bindings list + 3 prints
	printi := prog.Args[1].(*zilast.Form)
	op, _ = printi.OperatorAtom()
	assert.Equal(t, zilast.Intern("PRINTI"), op)

	printd := prog.Args[2].(*zilast.Form)
	op, _ = printd.OperatorAtom()
	assert.Equal(t, zilast.Intern("PRINTD"), op)
	ref := printd.Args[0].(*zilast.GlobalRef)
	assert.Equal(t, zilast.Intern("LAMP"), ref.Name)

	crlf := prog.Args[3].(*zilast.Form)
	op, _ = crlf.OperatorAtom()
	assert.Equal(t, zilast.Intern("CRLF"), op)
}

func Test_Expand_tellEmptyYieldsBareProg(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <TELL>>`)
	routine := out[0].(*zilast.Routine)
	prog := routine.Body[0].(*zilast.Form)
	assert.Len(t, prog.Args, 1) // just the empty binding list
}

func Test_Expand_verbQuestionSingle(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <VERB? TAKE>>`)
	routine := out[0].(*zilast.Routine)
	eq := routine.Body[0].(*zilast.Form)
	op, _ := eq.OperatorAtom()
	assert.Equal(t, zilast.Intern("EQUAL?"), op)
	assert.Equal(t, zilast.Intern("PRSA"), eq.Args[0].(*zilast.GlobalRef).Name)
	assert.Equal(t, zilast.Intern("V?TAKE"), eq.Args[1].(*zilast.GlobalRef).Name)
}

func Test_Expand_verbQuestionMultipleOrFanout(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <VERB? TAKE DROP PUT>>`)
	routine := out[0].(*zilast.Routine)
	or := routine.Body[0].(*zilast.Form)
	op, _ := or.OperatorAtom()
	assert.Equal(t, zilast.Intern("OR"), op)
	require.Len(t, or.Args, 3)
}

func Test_Expand_bsetSingleAndMultiple(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <BSET LAMP TAKEBIT>>`)
	routine := out[0].(*zilast.Routine)
	fset := routine.Body[0].(*zilast.Form)
	op, _ := fset.OperatorAtom()
	assert.Equal(t, zilast.Intern("FSET"), op)

	out2 := expandSource(t, `<ROUTINE F () <BSET LAMP TAKEBIT LIGHTBIT>>`)
	routine2 := out2[0].(*zilast.Routine)
	prog := routine2.Body[0].(*zilast.Form)
	op, _ = prog.OperatorAtom()
	assert.Equal(t, zilast.Intern("PROG"), op)
	require.Len(t, prog.Args, 3)
}

func Test_Expand_prob(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <PROB 25>>`)
	routine := out[0].(*zilast.Routine)
	g := routine.Body[0].(*zilast.Form)
	op, _ := g.OperatorAtom()
	assert.Equal(t, zilast.Intern("G?"), op)

	out2 := expandSource(t, `<ROUTINE F () <PROB 25 T>>`)
	routine2 := out2[0].(*zilast.Routine)
	zprob := routine2.Body[0].(*zilast.Form)
	op, _ = zprob.OperatorAtom()
	assert.Equal(t, zilast.Intern("ZPROB"), op)
	require.Len(t, zprob.Args, 1)
}

func Test_Expand_abs(t *testing.T) {
	out := expandSource(t, `<ROUTINE F () <ABS ,X>>`)
	routine := out[0].(*zilast.Routine)
	cond := routine.Body[0].(*zilast.Form)
	op, _ := cond.OperatorAtom()
	assert.Equal(t, zilast.Intern("COND"), op)
	require.Len(t, cond.Args, 2)
}

func Test_Expand_compileTimeArithmetic(t *testing.T) {
	out := expandSource(t, `<SETG X %<* 2 <+ 3 4>>>`)
	setg := out[0].(*zilast.Form)
	n := setg.Args[1].(*zilast.NumberNode)
	assert.Equal(t, 14, n.Value)
}

func Test_Expand_compileTimeArithmetic_divisionByZeroLeftUnevaluated(t *testing.T) {
	out := expandSource(t, `<SETG X %</ 4 0>>`)
	setg := out[0].(*zilast.Form)
	pe, ok := setg.Args[1].(*zilast.PercentEval)
	require.True(t, ok)
	inner := pe.Form.(*zilast.Form)
	op, _ := inner.OperatorAtom()
	assert.Equal(t, zilast.Intern("/"), op)
}

func Test_Expand_compileTimeArithmetic_nonLiteralLeftUnevaluated(t *testing.T) {
	out := expandSource(t, `<SETG X %<+ 1 ,Y>>`)
	setg := out[0].(*zilast.Form)
	_, ok := setg.Args[1].(*zilast.PercentEval)
	assert.True(t, ok)
}

func Test_Expand_userDefinedMacro(t *testing.T) {
	out := expandSource(t, `
<DEFMAC MY-EQUAL ('A B) <FORM EQUAL? .A .B>>
<ROUTINE F () <MY-EQUAL 1 2>>
`)
	require.Len(t, out, 1) // DEFMAC consumed
	routine := out[0].(*zilast.Routine)
	callForm := routine.Body[0].(*zilast.Form)
	op, _ := callForm.OperatorAtom()
	assert.Equal(t, zilast.Intern("FORM"), op)
}

func Test_Expand_userDefinedMacroWithOptional(t *testing.T) {
	out := expandSource(t, `
<DEFMAC GREET (NAME "OPTIONAL" (GREETING "Hello")) <TELL .GREETING " " .NAME>>
<ROUTINE F () <GREET "World">>
`)
	routine := out[0].(*zilast.Routine)
	prog := routine.Body[0].(*zilast.Form)
	op, _ := prog.OperatorAtom()
	assert.Equal(t, zilast.Intern("PROG"), op)
}
