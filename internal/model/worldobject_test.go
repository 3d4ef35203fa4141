package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWorldObject(t *testing.T) {
	loc := NewLocation(10, 20, 0)
	obj := NewWorldObject(7, "Barracks", 2, loc)

	assert.Equal(t, uint32(7), obj.ObjectID())
	assert.Equal(t, "Barracks", obj.Name())
	assert.Equal(t, KindFaction, obj.Kind())
	assert.False(t, obj.IsResource())
	assert.Equal(t, 2, obj.FactionID())
	assert.Equal(t, loc, obj.Location())
}

func TestNewResource(t *testing.T) {
	res := NewResource(8, "GoldMine", NewLocation(1, 1, 0))

	assert.True(t, res.IsResource())
	assert.Equal(t, NoFaction, res.FactionID())
	assert.Equal(t, "resource", res.Kind().String())
}

func TestWorldObject_SetLocation(t *testing.T) {
	obj := NewWorldObject(1, "Scout", 0, NewLocation(0, 0, 0))
	obj.SetLocation(NewLocation(5, 6, 7))
	assert.Equal(t, NewLocation(5, 6, 7), obj.Location())
}

func TestNewUnit(t *testing.T) {
	u := NewUnit(3, "Dragon", 1, NewLocation(0, 0, 0), 2, true, AreaNone)

	assert.Equal(t, 2.0, u.Radius())
	assert.True(t, u.IsFlying())
	assert.Equal(t, AreaGround, u.Areas(), "zero mask defaults to ground")
	assert.Equal(t, LayerAir, u.Layer())
	assert.Same(t, u, u.Data)
}

func TestAreaMask_Allows(t *testing.T) {
	assert.True(t, AreaGround.Allows(AreaAll))
	assert.True(t, (AreaGround | AreaWater).Allows(AreaWater))
	assert.False(t, AreaGround.Allows(AreaWater))
	assert.False(t, AreaAll.Allows(AreaNone))
}
