package world

import (
	"github.com/dekarrin/zil/internal/util"
	"github.com/dekarrin/zil/internal/zilast"
)

// Object is a single world object: a room, an item, an NPC, or any other
// addressable thing. Children form a doubly-linked sibling list in
// insertion order so NEXT?/BACK can walk it without re-deriving order from
// a map.
type Object struct {
	Name       zilast.Atom
	Parent     *Object
	FirstChild *Object
	LastChild  *Object
	prevSib    *Object
	nextSib    *Object

	Flags      util.KeySet[zilast.Atom]
	Properties map[zilast.Atom]zilast.Value
	Synonyms   []zilast.Atom
	Adjectives []zilast.Atom
	Desc       string
	Action     zilast.Atom // action routine name; zero value if none
}

// NewObject returns an empty Object ready to be populated by the directive
// processor / world builder.
func NewObject(name zilast.Atom) *Object {
	return &Object{
		Name:       name,
		Flags:      util.NewKeySet[zilast.Atom](),
		Properties: make(map[zilast.Atom]zilast.Value),
	}
}

// HasFlag reports whether the object's bitmap has flag set.
func (o *Object) HasFlag(flag zilast.Atom) bool { return o.Flags.Has(flag) }

// SetFlag sets flag on the object.
func (o *Object) SetFlag(flag zilast.Atom) { o.Flags.Add(flag) }

// ClearFlag clears flag on the object.
func (o *Object) ClearFlag(flag zilast.Atom) { o.Flags.Remove(flag) }

// GetProperty returns the object's own value for prop and true, or
// (zero, false) if the object doesn't carry that property. Callers
// wanting property-default fallback should use World.GetProperty instead.
func (o *Object) GetProperty(prop zilast.Atom) (zilast.Value, bool) {
	v, ok := o.Properties[prop]
	return v, ok
}

// PutProperty sets the object's own value for prop.
func (o *Object) PutProperty(prop zilast.Atom, v zilast.Value) {
	o.Properties[prop] = v
}

// detach removes o from its current parent's sibling list. It is a no-op if
// o has no parent.
func (o *Object) detach() {
	if o.Parent == nil {
		return
	}
	if o.prevSib != nil {
		o.prevSib.nextSib = o.nextSib
	} else {
		o.Parent.FirstChild = o.nextSib
	}
	if o.nextSib != nil {
		o.nextSib.prevSib = o.prevSib
	} else {
		o.Parent.LastChild = o.prevSib
	}
	o.Parent = nil
	o.prevSib = nil
	o.nextSib = nil
}

// MoveTo detaches o from its current parent (if any) and attaches it as the
// last child of newParent, atomically with respect to external observers:
// o is never left in a half-detached state. newParent may be nil, which is
// equivalent to Remove.
func (o *Object) MoveTo(newParent *Object) {
	if newParent == o {
		return // self-parenting is rejected silently; the tree stays acyclic
	}
	o.detach()
	if newParent == nil {
		return
	}
	o.Parent = newParent
	o.prevSib = newParent.LastChild
	if newParent.LastChild != nil {
		newParent.LastChild.nextSib = o
	} else {
		newParent.FirstChild = o
	}
	newParent.LastChild = o
}

// Remove detaches o from its parent, leaving it parentless.
func (o *Object) Remove() { o.detach() }

// In reports whether o's direct parent is p.
func (o *Object) In(p *Object) bool {
	return o.Parent == p
}

// Loc returns o's parent, or nil if o has none.
func (o *Object) Loc() *Object { return o.Parent }

// First returns o's first child, or nil.
func (o *Object) First() *Object { return o.FirstChild }

// NextSibling returns the next object in o's parent's child list.
func (o *Object) NextSibling() *Object { return o.nextSib }

// PrevSibling returns the previous object in o's parent's child list.
func (o *Object) PrevSibling() *Object { return o.prevSib }

// MetaLoc climbs the parent chain starting at o until it finds an object
// flagged as a room (isRoom reports true), or returns nil if the chain runs
// out first.
func (o *Object) MetaLoc(isRoom func(*Object) bool) *Object {
	cur := o.Parent
	for cur != nil {
		if isRoom(cur) {
			return cur
		}
		cur = cur.Parent
	}
	return nil
}
