// Package zilast defines the abstract syntax tree and value types shared by
// every stage of the ZIL pipeline: the reader produces it, the macro
// expander rewrites it, the directive processor scans it, and the evaluator
// walks it.
package zilast

import "strings"

// Atom is an interned, case-normalized identifier. Atoms carry no storage
// beyond their identity; two atoms with the same name (after upcasing) are
// always the same Atom value.
type Atom string

// pool is the process-wide intern table. It is initialized once and never
// cleared; atom identity is stable for the lifetime of the process.
var pool = struct {
	names map[string]Atom
}{names: make(map[string]Atom)}

// Intern normalizes name to upper case and returns the canonical Atom for
// it. Calling Intern twice with strings that differ only in case returns the
// identical Atom.
func Intern(name string) Atom {
	upper := strings.ToUpper(name)
	if a, ok := pool.names[upper]; ok {
		return a
	}
	a := Atom(upper)
	pool.names[upper] = a
	return a
}

// String returns the atom's canonical (upper-case) text.
func (a Atom) String() string {
	return string(a)
}

// Well-known atoms used throughout the pipeline.
var (
	AtomTrue  = Intern("T")
	AtomElse  = Intern("ELSE")
	AtomTRUE  = Intern("TRUE")
	AtomFalse = Intern("FALSE")
)
