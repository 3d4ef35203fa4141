package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_DistanceSquared(t *testing.T) {
	tests := []struct {
		name string
		a, b Location
		want float64
	}{
		{"same point", NewLocation(1, 2, 3), NewLocation(1, 2, 3), 0},
		{"axis aligned", NewLocation(0, 0, 0), NewLocation(3, 4, 0), 25},
		{"height ignored", NewLocation(0, 0, 0), NewLocation(3, 4, 100), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.DistanceSquared(tt.b), 1e-9)
		})
	}
}

func TestLocation_Flat(t *testing.T) {
	dir, ok := NewLocation(0, 10, 5).Flat()
	assert.True(t, ok)
	assert.InDelta(t, 0, dir.X, 1e-9)
	assert.InDelta(t, 1, dir.Y, 1e-9)
	assert.InDelta(t, 0, dir.Z, 1e-9)

	_, ok = NewLocation(0, 0, 7).Flat()
	assert.False(t, ok, "vertical vector has no ground direction")
}

func TestLocation_Perpendicular(t *testing.T) {
	p := NewLocation(0, 1, 0).Perpendicular()
	assert.InDelta(t, -1, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestLocation_Immutable(t *testing.T) {
	l := NewLocation(1, 2, 3)
	moved := l.Add(NewLocation(1, 1, 1)).WithZ(0)

	assert.Equal(t, NewLocation(1, 2, 3), l)
	assert.Equal(t, NewLocation(2, 3, 0), moved)
}
