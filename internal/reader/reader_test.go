package reader

import (
	"testing"

	"github.com/dekarrin/zil/internal/zilast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Read_sigils(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect func(t *testing.T, nodes []zilast.Node)
	}{
		{
			name:  "local ref",
			input: "<FOO .BAR>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				local := form.Args[0].(*zilast.LocalRef)
				assert.Equal(t, zilast.Intern("BAR"), local.Name)
			},
		},
		{
			name:  "global ref",
			input: "<FOO ,BAR>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				g := form.Args[0].(*zilast.GlobalRef)
				assert.Equal(t, zilast.Intern("BAR"), g.Name)
			},
		},
		{
			name:  "quoted atom",
			input: "<FOO 'BAR>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				q := form.Args[0].(*zilast.QuotedAtom)
				assert.Equal(t, zilast.Intern("BAR"), q.Name)
			},
		},
		{
			name:  "empty form is false literal",
			input: "<>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				assert.True(t, form.EmptyForm())
			},
		},
		{
			name:  "char literal",
			input: "<FOO !\\A>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				c := form.Args[0].(*zilast.CharLiteral)
				assert.Equal(t, 'A', c.Char)
			},
		},
		{
			name:  "splice",
			input: "<FOO !<BAR>>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				s := form.Args[0].(*zilast.Splice)
				inner := s.Form.(*zilast.Form)
				op, _ := inner.OperatorAtom()
				assert.Equal(t, zilast.Intern("BAR"), op)
			},
		},
		{
			name:  "percent eval",
			input: "<SETG X %<+ 1 2>>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				pe := form.Args[1].(*zilast.PercentEval)
				inner := pe.Form.(*zilast.Form)
				op, _ := inner.OperatorAtom()
				assert.Equal(t, zilast.Intern("+"), op)
			},
		},
		{
			name:  "hash expr",
			input: "<FOO #DECL ((X) FIX)>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				h := form.Args[0].(*zilast.HashExpr)
				assert.Equal(t, zilast.Intern("DECL"), h.Tag)
				assert.Len(t, h.Values, 2)
			},
		},
		{
			name:  "comment eliding a form is dropped",
			input: "<FOO 1 ;<BAR> 2>",
			expect: func(t *testing.T, nodes []zilast.Node) {
				form := nodes[0].(*zilast.Form)
				require.Len(t, form.Args, 2)
				assert.Equal(t, 1, form.Args[0].(*zilast.NumberNode).Value)
				assert.Equal(t, 2, form.Args[1].(*zilast.NumberNode).Value)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := Read(tc.input)
			require.NoError(t, err)
			require.NotEmpty(t, nodes)
			tc.expect(t, nodes)
		})
	}
}

func Test_Read_routineObjectGlobal(t *testing.T) {
	src := `
<ROUTINE GO-NORTH (RM "OPTIONAL" (N 1) "AUX" TMP)
	<TELL "You go north.">>

<OBJECT LAMP
	(DESC "brass lamp")
	(SYNONYM LAMP LANTERN)
	(FLAGS TAKEBIT))

<GLOBAL SCORE 0>
`
	nodes, err := Read(src)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	routine, ok := nodes[0].(*zilast.Routine)
	require.True(t, ok)
	assert.Equal(t, zilast.Intern("GO-NORTH"), routine.Name)
	require.Len(t, routine.Params, 3)
	assert.Equal(t, zilast.ParamRequired, routine.Params[0].Kind)
	assert.Equal(t, zilast.ParamOptional, routine.Params[1].Kind)
	assert.Equal(t, zilast.ParamAux, routine.Params[2].Kind)

	obj, ok := nodes[1].(*zilast.Object)
	require.True(t, ok)
	assert.Equal(t, zilast.Intern("LAMP"), obj.Name)
	assert.Len(t, obj.Properties, 3)

	g, ok := nodes[2].(*zilast.Global)
	require.True(t, ok)
	assert.Equal(t, zilast.Intern("SCORE"), g.Name)
	assert.Equal(t, 0, g.Value.(*zilast.NumberNode).Value)
}

func Test_Read_insertFile(t *testing.T) {
	nodes, err := Read(`<INSERT-FILE "parser" T>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	inc, ok := nodes[0].(*zilast.IncludeRef)
	require.True(t, ok)
	assert.Equal(t, "parser", inc.FileName)
}

func Test_Read_defmac(t *testing.T) {
	nodes, err := Read(`<DEFMAC MY-MAC ('A B) <FORM LIST 'A B>>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	m, ok := nodes[0].(*zilast.MacroDef)
	require.True(t, ok)
	require.Len(t, m.Params, 2)
	assert.True(t, m.Params[0].Quoted)
	assert.False(t, m.Params[1].Quoted)
}

func Test_Read_unterminatedFormIsError(t *testing.T) {
	_, err := Read(`<FOO 1 2`)
	require.Error(t, err)
}

func Test_Read_determinism(t *testing.T) {
	src := `<ROUTINE F () <TELL "hi" CR>>`
	a, err := Read(src)
	require.NoError(t, err)
	b, err := Read(src)
	require.NoError(t, err)
	assert.Equal(t, len(a), len(b))
}
