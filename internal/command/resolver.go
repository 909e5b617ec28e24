package command

import (
	"strings"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
)

var (
	atomContainerBit = zilast.Intern("CONTAINERBIT")
	atomOpenBit      = zilast.Intern("OPENBIT")
	atomPlayer       = zilast.Intern("PLAYER")
)

// DisambiguationError is returned by Resolve when a noun phrase matches more
// than one accessible object. Candidates holds every match, in world object
// order, so the caller can prompt the player to choose.
type DisambiguationError struct {
	Candidates []*world.Object
}

func (e *DisambiguationError) Error() string {
	return "more than one object matches"
}

// Resolver matches a noun phrase against the objects accessible from a room.
type Resolver struct {
	world *world.World
}

// NewResolver returns a Resolver over w.
func NewResolver(w *world.World) *Resolver {
	return &Resolver{world: w}
}

// FindMatches returns every accessible object whose synonyms contain np's
// noun and whose adjectives are a superset of np's adjectives.
func (r *Resolver) FindMatches(np NounPhrase, currentRoom *world.Object) []*world.Object {
	var matches []*world.Object
	for _, name := range r.world.ObjectOrder {
		obj := r.world.Objects[name]
		if !r.isAccessible(obj, currentRoom) {
			continue
		}
		if !matchesNoun(obj, np.Noun) || !matchesAdjectives(obj, np.Adjectives) {
			continue
		}
		matches = append(matches, obj)
	}
	return matches
}

// Resolve returns the single object np refers to. It returns (nil, nil) if
// nothing accessible matches, and a *DisambiguationError if more than one
// object does.
func (r *Resolver) Resolve(np NounPhrase, currentRoom *world.Object) (*world.Object, error) {
	matches := r.FindMatches(np, currentRoom)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, &DisambiguationError{Candidates: matches}
	}
}

func matchesNoun(obj *world.Object, noun string) bool {
	target := zilast.Intern(strings.ToUpper(noun))
	for _, s := range obj.Synonyms {
		if s == target {
			return true
		}
	}
	return false
}

func matchesAdjectives(obj *world.Object, adjectives []string) bool {
	for _, a := range adjectives {
		target := zilast.Intern(strings.ToUpper(a))
		found := false
		for _, oa := range obj.Adjectives {
			if oa == target {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// isAccessible reports whether obj can be reached from currentRoom: held
// directly by the room or by the player, or nested inside a chain of
// containers that are all open. A non-container intermediate parent is
// passively transparent; a surface does not hide what sits on it. Mirrors
// ACCESSIBLE?'s walk in internal/ops, generalized to take the room to check
// against rather than always reading the HERE global.
func (r *Resolver) isAccessible(obj *world.Object, currentRoom *world.Object) bool {
	player := r.playerObject()
	cur := obj.Loc()
	for cur != nil {
		if cur == currentRoom || (player != nil && cur == player) {
			return true
		}
		if cur.HasFlag(atomContainerBit) && !cur.HasFlag(atomOpenBit) {
			return false
		}
		cur = cur.Loc()
	}
	return false
}

func (r *Resolver) playerObject() *world.Object {
	v, ok := r.world.Globals[atomPlayer]
	if !ok || v.Kind() != zilast.KindObject {
		return nil
	}
	obj, _ := r.world.Object(v.Object().Name)
	return obj
}
