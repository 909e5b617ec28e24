package world

import (
	"testing"

	"github.com/dekarrin/zil/internal/zilast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Object_moveToReparents(t *testing.T) {
	kitchen := NewObject(zilast.Intern("KITCHEN"))
	table := NewObject(zilast.Intern("TABLE"))
	lamp := NewObject(zilast.Intern("LAMP"))

	lamp.MoveTo(kitchen)
	assert.Equal(t, kitchen, lamp.Loc())
	assert.Equal(t, lamp, kitchen.First())

	lamp.MoveTo(table)
	assert.Equal(t, table, lamp.Loc())
	assert.Nil(t, kitchen.First())
	assert.Equal(t, lamp, table.First())
}

func Test_Object_moveToSelfIsNoOp(t *testing.T) {
	o := NewObject(zilast.Intern("ROCK"))
	o.MoveTo(o)
	assert.Nil(t, o.Loc())
}

func Test_Object_siblingOrderPreserved(t *testing.T) {
	room := NewObject(zilast.Intern("ROOM"))
	a := NewObject(zilast.Intern("A"))
	b := NewObject(zilast.Intern("B"))
	c := NewObject(zilast.Intern("C"))

	a.MoveTo(room)
	b.MoveTo(room)
	c.MoveTo(room)

	require.Equal(t, a, room.First())
	assert.Equal(t, b, a.NextSibling())
	assert.Equal(t, c, b.NextSibling())
	assert.Nil(t, c.NextSibling())
	assert.Equal(t, b, c.PrevSibling())
}

func Test_Object_removeDetaches(t *testing.T) {
	room := NewObject(zilast.Intern("ROOM"))
	a := NewObject(zilast.Intern("A"))
	b := NewObject(zilast.Intern("B"))
	a.MoveTo(room)
	b.MoveTo(room)

	a.Remove()
	assert.Nil(t, a.Loc())
	assert.Equal(t, b, room.First())
	assert.Nil(t, b.PrevSibling())
}

func Test_Object_metaLocClimbsToRoom(t *testing.T) {
	room := NewObject(zilast.Intern("ROOM"))
	room.SetFlag(zilast.Intern("ROOMBIT"))
	bag := NewObject(zilast.Intern("BAG"))
	coin := NewObject(zilast.Intern("COIN"))

	bag.MoveTo(room)
	coin.MoveTo(bag)

	isRoom := func(o *Object) bool { return o.HasFlag(zilast.Intern("ROOMBIT")) }
	assert.Equal(t, room, coin.MetaLoc(isRoom))
	assert.Nil(t, room.MetaLoc(isRoom))
}

func Test_World_getPropertyFallsBackToDefault(t *testing.T) {
	w := New()
	sizeProp := zilast.Intern("SIZE")
	w.PropertyDefaults[sizeProp] = zilast.NewNumber(5)

	o := NewObject(zilast.Intern("ROCK"))
	assert.Equal(t, zilast.NewNumber(5), w.GetProperty(o, sizeProp))

	o.PutProperty(sizeProp, zilast.NewNumber(99))
	assert.Equal(t, zilast.NewNumber(99), w.GetProperty(o, sizeProp))
}

func Test_World_getPropertyNilWhenNoDefault(t *testing.T) {
	w := New()
	o := NewObject(zilast.Intern("ROCK"))
	assert.Equal(t, zilast.Nil, w.GetProperty(o, zilast.Intern("CAPACITY")))
}

func Test_World_resolveSynonymFallsBackToSelf(t *testing.T) {
	w := New()
	w.Synonyms[zilast.Intern("LAMP")] = zilast.Intern("LANTERN")
	assert.Equal(t, zilast.Intern("LANTERN"), w.ResolveSynonym(zilast.Intern("LAMP")))
	assert.Equal(t, zilast.Intern("SWORD"), w.ResolveSynonym(zilast.Intern("SWORD")))
}

func Test_World_addObjectPreservesInsertionOrder(t *testing.T) {
	w := New()
	w.AddObject(NewObject(zilast.Intern("B")))
	w.AddObject(NewObject(zilast.Intern("A")))
	w.AddObject(NewObject(zilast.Intern("C")))
	require.Equal(t, []zilast.Atom{zilast.Intern("B"), zilast.Intern("A"), zilast.Intern("C")}, w.ObjectOrder)

	o, ok := w.Object(zilast.Intern("A"))
	require.True(t, ok)
	assert.Equal(t, zilast.Intern("A"), o.Name)
}

func Test_World_addObjectReplaceDoesNotDuplicateOrder(t *testing.T) {
	w := New()
	w.AddObject(NewObject(zilast.Intern("A")))
	w.AddObject(NewObject(zilast.Intern("A")))
	assert.Len(t, w.ObjectOrder, 1)
}

func Test_Table_wordAndByteAddressing(t *testing.T) {
	tbl := NewTable("T", 2)
	require.NoError(t, tbl.PutWord(0, 0x1234))
	require.NoError(t, tbl.PutWord(1, 0xABCD))

	hi, err := tbl.GetByte(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), hi)

	lo, err := tbl.GetByte(1)
	require.NoError(t, err)
	assert.Equal(t, byte(0x34), lo)

	require.NoError(t, tbl.PutByte(2, 0xFF))
	w, err := tbl.GetWord(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFCD), w)
}

func Test_Table_outOfRangeErrors(t *testing.T) {
	tbl := NewTable("T", 1)
	_, err := tbl.GetWord(5)
	assert.Error(t, err)
	err = tbl.PutByte(-1, 1)
	assert.Error(t, err)
}
