package zilast

import "fmt"

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindAtom
	KindBool
	KindList
	KindForm
	KindObject
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "NIL"
	case KindNumber:
		return "NUMBER"
	case KindString:
		return "STRING"
	case KindAtom:
		return "ATOM"
	case KindBool:
		return "BOOL"
	case KindList:
		return "LIST"
	case KindForm:
		return "FORM"
	case KindObject:
		return "OBJECT"
	case KindTable:
		return "TABLE"
	default:
		return "UNKNOWN"
	}
}

// ObjectHandle is an opaque reference to a world object, issued by the world
// model and opaque to everything upstream of it.
type ObjectHandle struct {
	Name Atom
}

// TableHandle is an opaque reference to a named table of 16-bit words.
type TableHandle struct {
	Name Atom
}

// Value is the tagged sum every ZIL expression evaluates to: a number,
// string, atom, boolean, list, unevaluated form, or a handle into the world
// model. The zero Value is Nil.
type Value struct {
	kind Kind
	num  int
	str  string
	atom Atom
	list []Value
	form *Form
	obj  ObjectHandle
	tbl  TableHandle
	b    bool
}

// Nil is the canonical empty/absent value.
var Nil = Value{kind: KindNil}

// True and False are the dedicated boolean sentinels TRUE/FALSE from the
// data model.
var (
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool, b: false}
)

// NewNumber wraps an integer as a Value.
func NewNumber(n int) Value { return Value{kind: KindNumber, num: n} }

// NewString wraps a string as a Value.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewAtomValue wraps an atom as a Value (distinct from evaluating the atom
// as a variable reference; this is the QuotedAtom/atom-as-datum case).
func NewAtomValue(a Atom) Value { return Value{kind: KindAtom, atom: a} }

// NewBool returns True or False.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewList wraps a slice of Values as a list Value.
func NewList(vs []Value) Value { return Value{kind: KindList, list: vs} }

// NewForm wraps an unevaluated Form as a Value (used for lazily-stored
// globals and for data arguments that happen to be application nodes).
func NewForm(f *Form) Value { return Value{kind: KindForm, form: f} }

// NewObject wraps an object handle as a Value.
func NewObject(h ObjectHandle) Value { return Value{kind: KindObject, obj: h} }

// NewTable wraps a table handle as a Value.
func NewTable(h TableHandle) Value { return Value{kind: KindTable, tbl: h} }

// Kind returns which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// Num returns the integer payload, coercing non-numeric kinds to 0 rather
// than panicking so arithmetic operators can stay permissive about operand
// kinds.
func (v Value) Num() int {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Str returns the display text of the value.
func (v Value) Str() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return fmt.Sprintf("%d", v.num)
	case KindAtom:
		return v.atom.String()
	case KindBool:
		if v.b {
			return "T"
		}
		return "FALSE"
	case KindNil:
		return ""
	case KindObject:
		return v.obj.Name.String()
	case KindTable:
		return v.tbl.Name.String()
	default:
		return ""
	}
}

// Atom returns the atom payload; valid only when Kind() == KindAtom.
func (v Value) Atom() Atom { return v.atom }

// List returns the list payload; valid only when Kind() == KindList.
func (v Value) List() []Value { return v.list }

// Form returns the form payload; valid only when Kind() == KindForm.
func (v Value) Form() *Form { return v.form }

// Object returns the object handle; valid only when Kind() == KindObject.
func (v Value) Object() ObjectHandle { return v.obj }

// Table returns the table handle; valid only when Kind() == KindTable.
func (v Value) Table() TableHandle { return v.tbl }

// Truthy reports general truthiness: FALSE, the empty form <>, the empty
// list (), and Nil are false. Numbers are always truthy here, including
// zero. Callers that need the ZERO?-style zero-is-false test call IsZero
// instead.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	case KindForm:
		return !(v.form.Operator == nil && len(v.form.Args) == 0)
	case KindList:
		return len(v.list) != 0
	default:
		return true
	}
}

// IsZero reports whether v is the numeric zero, used by ZERO?/EMPTY?
// semantics which (unlike general truth tests) treat 0 as falsy.
func (v Value) IsZero() bool {
	return v.kind == KindNumber && v.num == 0
}

// Equal reports whether two Values are the same per EQUAL?/==: numbers
// compare numerically, atoms by identity, strings by content, booleans by
// value, objects/tables by name.
func (v Value) Equal(o Value) bool {
	if v.kind == KindNumber || o.kind == KindNumber {
		if isNumericKind(v.kind) && isNumericKind(o.kind) {
			return v.Num() == o.Num()
		}
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindAtom:
		return v.atom == o.atom
	case KindBool:
		return v.b == o.b
	case KindObject:
		return v.obj.Name == o.obj.Name
	case KindTable:
		return v.tbl.Name == o.tbl.Name
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumericKind(k Kind) bool {
	return k == KindNumber || k == KindBool
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.Str())
}
