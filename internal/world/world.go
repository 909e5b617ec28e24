// Package world holds the runtime state populated by the directive
// processor and mutated by the evaluator: the object tree, flags,
// properties, globals, tables, and the vocabulary tables derived from
// source directives (constants, property defaults, directions, buzz words,
// synonyms, the syntax table).
package world

import (
	"github.com/dekarrin/zil/internal/util"
	"github.com/dekarrin/zil/internal/zilast"
)

// SyntaxEntry is one parsed SYNTAX directive: a verb's accepted shape.
type SyntaxEntry struct {
	Verb        zilast.Atom
	Action      zilast.Atom
	Preaction   zilast.Atom // zero value if absent
	ObjectCount int         // 0, 1, or 2
	// Prepositions holds the preposition expected before each non-first
	// object slot, indexed by slot order (len == ObjectCount-1, typically).
	Prepositions []zilast.Atom
	// Constraints holds the flag/class constraint list attached to each
	// object slot, indexed in the same order as the slots appear.
	Constraints [][]zilast.Atom
}

// World is the mutable runtime state shared by the evaluator, the routine
// executor, and the command pipeline.
type World struct {
	Objects     map[zilast.Atom]*Object
	ObjectOrder []zilast.Atom

	Routines map[zilast.Atom]*zilast.Routine

	Globals map[zilast.Atom]zilast.Value

	Constants        map[zilast.Atom]zilast.Value
	PropertyDefaults map[zilast.Atom]zilast.Value

	Directions   []zilast.Atom
	DirectionSet util.KeySet[zilast.Atom]

	Buzzwords util.KeySet[zilast.Atom]

	// Synonyms maps every alias (including a primary atom mapped to
	// itself) to its primary atom.
	Synonyms map[zilast.Atom]zilast.Atom

	Syntax map[zilast.Atom][]SyntaxEntry

	Tables map[zilast.Atom]*Table
}

// New returns an empty World with every table initialized, ready for the
// directive processor and world builder to populate.
func New() *World {
	return &World{
		Objects:          make(map[zilast.Atom]*Object),
		Routines:         make(map[zilast.Atom]*zilast.Routine),
		Globals:          make(map[zilast.Atom]zilast.Value),
		Constants:        make(map[zilast.Atom]zilast.Value),
		PropertyDefaults: make(map[zilast.Atom]zilast.Value),
		DirectionSet:     util.NewKeySet[zilast.Atom](),
		Buzzwords:        util.NewKeySet[zilast.Atom](),
		Synonyms:         make(map[zilast.Atom]zilast.Atom),
		Syntax:           make(map[zilast.Atom][]SyntaxEntry),
		Tables:           make(map[zilast.Atom]*Table),
	}
}

// AddObject registers o, preserving insertion order for deterministic
// enumeration (e.g. a future OBJECTS? walk or save serialization).
func (w *World) AddObject(o *Object) {
	if _, exists := w.Objects[o.Name]; !exists {
		w.ObjectOrder = append(w.ObjectOrder, o.Name)
	}
	w.Objects[o.Name] = o
}

// Object looks up an object by name.
func (w *World) Object(name zilast.Atom) (*Object, bool) {
	o, ok := w.Objects[name]
	return o, ok
}

// AddRoutine registers a routine definition.
func (w *World) AddRoutine(r *zilast.Routine) {
	w.Routines[r.Name] = r
}

// Routine looks up a routine definition by name.
func (w *World) Routine(name zilast.Atom) (*zilast.Routine, bool) {
	r, ok := w.Routines[name]
	return r, ok
}

// ResolveSynonym follows the synonym map from alias to primary atom. Atoms
// with no registered synonym entry map to themselves, matching the
// directive's own rule that a primary maps to itself.
func (w *World) ResolveSynonym(alias zilast.Atom) zilast.Atom {
	if primary, ok := w.Synonyms[alias]; ok {
		return primary
	}
	return alias
}

// GetProperty returns object o's value for prop, falling back to the
// property's registered default, then to Nil if neither exists.
func (w *World) GetProperty(o *Object, prop zilast.Atom) zilast.Value {
	if v, ok := o.GetProperty(prop); ok {
		return v
	}
	if def, ok := w.PropertyDefaults[prop]; ok {
		return def
	}
	return zilast.Nil
}

// IsRoom reports whether o is flagged as a room, the convention MetaLoc's
// climb uses to find the enclosing room for a deeply nested object.
func (w *World) IsRoom(o *Object) bool {
	return o.HasFlag(zilast.Intern("ROOMBIT")) || o.HasFlag(zilast.Intern("ROOM"))
}

// AddTable registers a table under name.
func (w *World) AddTable(name zilast.Atom, t *Table) {
	w.Tables[name] = t
}

// GetTable looks up a table by name.
func (w *World) GetTable(name zilast.Atom) (*Table, bool) {
	t, ok := w.Tables[name]
	return t, ok
}
