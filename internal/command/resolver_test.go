package command

import (
	"testing"

	"github.com/dekarrin/zil/internal/world"
	"github.com/dekarrin/zil/internal/zilast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResolverWorld(t *testing.T) (*world.World, *world.Object) {
	t.Helper()
	w := world.New()

	room := world.NewObject(zilast.Intern("ROOM"))
	w.AddObject(room)

	lamp := world.NewObject(zilast.Intern("LAMP"))
	lamp.Synonyms = []zilast.Atom{zilast.Intern("LAMP"), zilast.Intern("LANTERN")}
	lamp.Adjectives = []zilast.Atom{zilast.Intern("BRASS")}
	lamp.MoveTo(room)
	w.AddObject(lamp)

	box := world.NewObject(zilast.Intern("BOX"))
	box.Synonyms = []zilast.Atom{zilast.Intern("BOX")}
	box.SetFlag(atomContainerBit)
	box.MoveTo(room)
	w.AddObject(box)

	coin := world.NewObject(zilast.Intern("COIN"))
	coin.Synonyms = []zilast.Atom{zilast.Intern("COIN")}
	coin.MoveTo(box)
	w.AddObject(coin)

	player := world.NewObject(zilast.Intern("PLAYER"))
	player.MoveTo(room)
	w.AddObject(player)
	w.Globals[atomPlayer] = zilast.NewObject(zilast.ObjectHandle{Name: player.Name})

	held := world.NewObject(zilast.Intern("SWORD"))
	held.Synonyms = []zilast.Atom{zilast.Intern("SWORD")}
	held.MoveTo(player)
	w.AddObject(held)

	return w, room
}

func Test_Resolve_findsObjectInRoom(t *testing.T) {
	w, room := buildResolverWorld(t)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "LAMP"}, room)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, zilast.Intern("LAMP"), obj.Name)
}

func Test_Resolve_matchesBySynonym(t *testing.T) {
	w, room := buildResolverWorld(t)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "LANTERN"}, room)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, zilast.Intern("LAMP"), obj.Name)
}

func Test_Resolve_requiresAllAdjectivesToMatch(t *testing.T) {
	w, room := buildResolverWorld(t)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "LAMP", Adjectives: []string{"IRON"}}, room)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func Test_Resolve_findsObjectHeldByPlayer(t *testing.T) {
	w, room := buildResolverWorld(t)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "SWORD"}, room)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, zilast.Intern("SWORD"), obj.Name)
}

func Test_Resolve_closedContainerHidesContents(t *testing.T) {
	w, room := buildResolverWorld(t)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "COIN"}, room)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func Test_Resolve_openContainerExposesContents(t *testing.T) {
	w, room := buildResolverWorld(t)
	box, _ := w.Object(zilast.Intern("BOX"))
	box.SetFlag(atomOpenBit)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "COIN"}, room)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, zilast.Intern("COIN"), obj.Name)
}

func Test_Resolve_nothingAccessibleReturnsNilNil(t *testing.T) {
	w, room := buildResolverWorld(t)
	r := NewResolver(w)

	obj, err := r.Resolve(NounPhrase{Noun: "NOTHING"}, room)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func Test_Resolve_multipleMatchesReturnsDisambiguationError(t *testing.T) {
	w, room := buildResolverWorld(t)
	dup := world.NewObject(zilast.Intern("LAMP2"))
	dup.Synonyms = []zilast.Atom{zilast.Intern("LAMP")}
	dup.MoveTo(room)
	w.AddObject(dup)

	r := NewResolver(w)
	obj, err := r.Resolve(NounPhrase{Noun: "LAMP"}, room)
	assert.Nil(t, obj)
	require.Error(t, err)
	var de *DisambiguationError
	require.ErrorAs(t, err, &de)
	assert.Len(t, de.Candidates, 2)
}

func Test_Resolve_surfaceParentIsTransparent(t *testing.T) {
	w, room := buildResolverWorld(t)
	table := world.NewObject(zilast.Intern("TABLE"))
	table.MoveTo(room)
	w.AddObject(table)

	book := world.NewObject(zilast.Intern("BOOK"))
	book.Synonyms = []zilast.Atom{zilast.Intern("BOOK")}
	book.MoveTo(table)
	w.AddObject(book)

	r := NewResolver(w)
	obj, err := r.Resolve(NounPhrase{Noun: "BOOK"}, room)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, zilast.Intern("BOOK"), obj.Name)
}
