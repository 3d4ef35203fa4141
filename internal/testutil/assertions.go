package testutil

import (
	"testing"

	"github.com/udisondev/skirmish/internal/model"
)

// AssertSeparated fails the test if any two positions are closer than minDist
// on the ground plane (with a small tolerance for float error).
func AssertSeparated(t testing.TB, positions []model.Location, minDist float64) {
	t.Helper()

	const slack = 1e-6
	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			d := positions[i].Distance(positions[j])
			if d < minDist-slack {
				t.Errorf("positions %d %v and %d %v are %.4f apart, want >= %.4f",
					i, positions[i], j, positions[j], d, minDist)
			}
		}
	}
}

// AssertInsideRect fails the test if pos lies outside [lo, hi] on the ground plane.
func AssertInsideRect(t testing.TB, pos, lo, hi model.Location) {
	t.Helper()
	if pos.X < lo.X || pos.X > hi.X || pos.Y < lo.Y || pos.Y > hi.Y {
		t.Errorf("position %v outside rect %v-%v", pos, lo, hi)
	}
}
