// Package serializer implements the save/restore document: a TOML envelope
// (format/type header plus a UUID snapshot id) wrapping a rezi-encoded
// binary blob of the world's globals, object tree, and tables. Routine and
// macro definitions are never serialized; RESTORE rebuilds them from the
// already-loaded source and only overwrites the mutable state captured at
// SAVE time.
package serializer

import (
	"sort"

	"github.com/dekarrin/zil/internal/util"
	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

func makeFlagSet(flags []string) util.KeySet[zilast.Atom] {
	s := util.NewKeySet[zilast.Atom]()
	for _, f := range flags {
		s.Add(zilast.Intern(f))
	}
	return s
}

// valueSnapshot mirrors zilast.Value in a plain, exported-field shape that
// rezi's reflection-based encoder can walk directly (Value's own fields are
// unexported, by design, so it is never encoded as-is).
type valueSnapshot struct {
	Kind   int
	Num    int
	Str    string
	Atom   string
	Bool   bool
	List   []valueSnapshot
	Object string
	Table  string
}

func snapshotValue(v zilast.Value) valueSnapshot {
	vs := valueSnapshot{Kind: int(v.Kind())}
	switch v.Kind() {
	case zilast.KindNumber:
		vs.Num = v.Num()
	case zilast.KindString:
		vs.Str = v.Str()
	case zilast.KindAtom:
		vs.Atom = v.Atom().String()
	case zilast.KindBool:
		vs.Bool = v.Truthy()
	case zilast.KindList:
		items := v.List()
		vs.List = make([]valueSnapshot, len(items))
		for i, item := range items {
			vs.List[i] = snapshotValue(item)
		}
	case zilast.KindObject:
		vs.Object = v.Object().Name.String()
	case zilast.KindTable:
		vs.Table = v.Table().Name.String()
	}
	return vs
}

func (vs valueSnapshot) restore() zilast.Value {
	switch zilast.Kind(vs.Kind) {
	case zilast.KindNumber:
		return zilast.NewNumber(vs.Num)
	case zilast.KindString:
		return zilast.NewString(vs.Str)
	case zilast.KindAtom:
		return zilast.NewAtomValue(zilast.Intern(vs.Atom))
	case zilast.KindBool:
		if vs.Bool {
			return zilast.True
		}
		return zilast.False
	case zilast.KindList:
		items := make([]zilast.Value, len(vs.List))
		for i, item := range vs.List {
			items[i] = item.restore()
		}
		return zilast.NewList(items)
	case zilast.KindObject:
		return zilast.NewObject(zilast.ObjectHandle{Name: zilast.Intern(vs.Object)})
	case zilast.KindTable:
		return zilast.NewTable(zilast.TableHandle{Name: zilast.Intern(vs.Table)})
	default:
		return zilast.Nil
	}
}

// objectSnapshot captures one object's mutable state: its current parent
// (by name, empty string if parentless), flags, and properties. Synonyms,
// adjectives, description, and action routine are source-defined and
// immutable at runtime, so they are not captured; RESTORE relies on the
// already-loaded world for them.
type objectSnapshot struct {
	Parent     string
	Flags      []string
	Properties map[string]valueSnapshot
}

func snapshotObject(o *world.Object) objectSnapshot {
	os := objectSnapshot{
		Properties: make(map[string]valueSnapshot, len(o.Properties)),
	}
	if o.Parent != nil {
		os.Parent = o.Parent.Name.String()
	}
	for flag := range o.Flags {
		os.Flags = append(os.Flags, flag.String())
	}
	sort.Strings(os.Flags)
	for prop, v := range o.Properties {
		os.Properties[prop.String()] = snapshotValue(v)
	}
	return os
}

// tableSnapshot captures one named table's backing words.
type tableSnapshot struct {
	Words []uint16
}

// Snapshot is the full captured runtime state: everything SAVE persists and
// RESTORE overwrites onto an already-loaded world.
type Snapshot struct {
	Globals     map[string]valueSnapshot
	Objects     map[string]objectSnapshot
	ObjectOrder []string
	Tables      map[string]tableSnapshot
}

// Capture builds a Snapshot from w's current mutable state.
func Capture(w *world.World) Snapshot {
	s := Snapshot{
		Globals: make(map[string]valueSnapshot, len(w.Globals)),
		Objects: make(map[string]objectSnapshot, len(w.Objects)),
		Tables:  make(map[string]tableSnapshot, len(w.Tables)),
	}
	for name, v := range w.Globals {
		s.Globals[name.String()] = snapshotValue(v)
	}
	for _, name := range w.ObjectOrder {
		s.ObjectOrder = append(s.ObjectOrder, name.String())
	}
	for name, o := range w.Objects {
		s.Objects[name.String()] = snapshotObject(o)
	}
	for name, t := range w.Tables {
		words := make([]uint16, len(t.Words))
		copy(words, t.Words)
		s.Tables[name.String()] = tableSnapshot{Words: words}
	}
	return s
}

// Apply overwrites w's mutable state with s. Objects and tables must
// already exist in w (from the source the world was loaded from); Apply
// never creates or deletes an object or table, only reassigns their
// runtime-mutable fields. This is what makes RESTORE round-trip-correct
// without needing to re-serialize routines or macros: the static shape of
// the world comes from source, loaded fresh each run, and the snapshot only
// carries what changed during play.
func Apply(w *world.World, s Snapshot) {
	w.Globals = make(map[zilast.Atom]zilast.Value, len(s.Globals))
	for name, vs := range s.Globals {
		w.Globals[zilast.Intern(name)] = vs.restore()
	}

	for name, os := range s.Objects {
		o, ok := w.Object(zilast.Intern(name))
		if !ok {
			continue
		}
		o.Flags = makeFlagSet(os.Flags)
		o.Properties = make(map[zilast.Atom]zilast.Value, len(os.Properties))
		for prop, vs := range os.Properties {
			o.Properties[zilast.Intern(prop)] = vs.restore()
		}
	}

	// Re-parent after every object's own fields are restored, so a parent
	// referenced by name is guaranteed to already exist in w.Objects.
	for name, os := range s.Objects {
		o, ok := w.Object(zilast.Intern(name))
		if !ok {
			continue
		}
		if os.Parent == "" {
			o.MoveTo(nil)
			continue
		}
		parent, ok := w.Object(zilast.Intern(os.Parent))
		if !ok {
			continue
		}
		o.MoveTo(parent)
	}

	for name, ts := range s.Tables {
		t, ok := w.GetTable(zilast.Intern(name))
		if !ok {
			continue
		}
		copy(t.Words, ts.Words)
	}
}
