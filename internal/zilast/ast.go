package zilast

import "fmt"

// Node is any AST node produced by the reader and walked by the macro
// expander, directive processor, and evaluator. Concrete node types are
// value types; code that needs to mutate a tree in place works with
// pointers to them.
type Node interface {
	// Pos returns the 1-indexed line the node started on, or 0 if unknown
	// (nodes synthesized by macro expansion commonly have no position).
	Pos() int
	node()
}

type pos struct {
	Line int
}

func (p pos) Pos() int { return p.Line }
func (pos) node()      {}

// AtomNode is a bare atom reference, e.g. HERE or T.
type AtomNode struct {
	pos
	Name Atom
}

// NumberNode is an integer literal.
type NumberNode struct {
	pos
	Value int
}

// StringNode is a string literal.
type StringNode struct {
	pos
	Value string
}

// Form is an application node `<op arg...>`. Operator is usually an
// *AtomNode but may be any Node that evaluates to something callable (a
// nested Form, or a Local/GlobalRef).
type Form struct {
	pos
	Operator Node
	Args     []Node
}

// OperatorAtom returns the operator's atom and true if Operator is a bare
// atom reference, which is the overwhelming common case (`<TELL ...>`,
// `<SETG X 1>`, etc).
func (f *Form) OperatorAtom() (Atom, bool) {
	if a, ok := f.Operator.(*AtomNode); ok {
		return a.Name, true
	}
	return "", false
}

// EmptyForm reports whether this is the canonical false literal `<>`.
func (f *Form) EmptyForm() bool {
	return f.Operator == nil && len(f.Args) == 0
}

// List is a list literal `(x y z)`, distinct from a Form: it is never
// evaluated as an application.
type List struct {
	pos
	Elements []Node
}

// LocalRef is `.X`, a reference to a lexically-scoped local variable.
type LocalRef struct {
	pos
	Name Atom
}

// GlobalRef is `,X`, a reference to a global variable (or, failing that, to
// an object of the same name).
type GlobalRef struct {
	pos
	Name Atom
}

// QuotedAtom is `'X`: the atom itself, not evaluated as a variable
// reference.
type QuotedAtom struct {
	pos
	Name Atom
}

// Splice is `!<f>`: the reader keeps it as a wrapper around the form, and
// the evaluator evaluates the wrapped form in place. No list splicing is
// performed.
type Splice struct {
	pos
	Form Node
}

// PercentEval is `%<f>`: a form evaluated at compile time if every operand
// is a literal, otherwise left for the evaluator to run at runtime.
type PercentEval struct {
	pos
	Form Node
}

// HashExpr is `#TAG v...`, e.g. `#DECL ((X) FIX)`.
type HashExpr struct {
	pos
	Tag    Atom
	Values []Node
}

// CharLiteral is `!\X`, the single character following the backslash.
type CharLiteral struct {
	pos
	Char rune
}

// IncludeRef is `<INSERT-FILE "name" T>`, recognized by the reader and
// resolved by the file loader.
type IncludeRef struct {
	pos
	FileName string
}

// ParamKind classifies a routine or macro parameter.
type ParamKind int

const (
	ParamRequired ParamKind = iota
	ParamOptional
	ParamAux
	ParamArgs
)

func (k ParamKind) String() string {
	switch k {
	case ParamRequired:
		return "REQUIRED"
	case ParamOptional:
		return "OPTIONAL"
	case ParamAux:
		return "AUX"
	case ParamArgs:
		return "ARGS"
	default:
		return "UNKNOWN"
	}
}

// Param is one parameter of a Routine or MacroDef declaration.
type Param struct {
	Name    Atom
	Kind    ParamKind
	Default Node // only meaningful for ParamOptional/ParamAux
	Quoted  bool // only meaningful for MacroDef params
}

// Routine is `<ROUTINE name (params...) body...>`.
type Routine struct {
	pos
	Name   Atom
	Params []Param
	Body   []Node
}

// Object is `<OBJECT name props...>`. Properties are kept as raw Forms;
// the world builder interprets the well-known ones (IN, FLAGS, SYNONYM,
// ADJECTIVE, DESC, ACTION, ...) and stores the rest verbatim.
type Object struct {
	pos
	Name       Atom
	Properties []Node
}

// Global is `<GLOBAL name value>`.
type Global struct {
	pos
	Name  Atom
	Value Node
}

// MacroDef is `<DEFMAC name (params...) body>`.
type MacroDef struct {
	pos
	Name   Atom
	Params []Param
	Body   []Node
}

func (f *Form) String() string {
	return fmt.Sprintf("Form(%v, %d args)", f.Operator, len(f.Args))
}
