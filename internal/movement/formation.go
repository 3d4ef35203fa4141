package movement

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidFormation is returned for formation parameters that cannot produce positions.
	ErrInvalidFormation = errors.New("invalid formation")
	// ErrInvalidProfile is returned for a unit profile without a usable radius.
	ErrInvalidProfile = errors.New("invalid unit profile")
	// ErrNoUnits is returned when a request names no units.
	ErrNoUnits = errors.New("no units to place")
	// ErrInvalidOffset is returned for a start offset that is negative, not finite,
	// or too large to advance by one step.
	ErrInvalidOffset = errors.New("invalid target offset")
)

// FormationKind selects the placement strategy.
type FormationKind uint8

const (
	FormationCircle FormationKind = iota // rings around the target
	FormationRow                         // rows behind the target, facing the approach direction
)

func (k FormationKind) String() string {
	switch k {
	case FormationCircle:
		return "circle"
	case FormationRow:
		return "row"
	default:
		return fmt.Sprintf("formation(%d)", uint8(k))
	}
}

// ParseFormationKind parses "circle" or "row" (case-insensitive).
func ParseFormationKind(s string) (FormationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "":
		return FormationCircle, nil
	case "row":
		return FormationRow, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidFormation, s)
	}
}

// Formation describes how a group arranges around its target.
// UnitsPerRow and MaxEmptyRows apply to row formations only.
type Formation struct {
	Kind         FormationKind
	Spacing      float64 // gap kept between neighboring units
	UnitsPerRow  int
	MaxEmptyRows int // consecutive empty rows before falling back to circle
}

// Circle returns a circle formation.
func Circle(spacing float64) Formation {
	return Formation{Kind: FormationCircle, Spacing: spacing}
}

// Row returns a row formation.
func Row(spacing float64, unitsPerRow, maxEmptyRows int) Formation {
	return Formation{
		Kind:         FormationRow,
		Spacing:      spacing,
		UnitsPerRow:  unitsPerRow,
		MaxEmptyRows: maxEmptyRows,
	}
}

// Validate checks the formation parameters.
func (f Formation) Validate() error {
	if f.Spacing < 0 || math.IsNaN(f.Spacing) || math.IsInf(f.Spacing, 0) {
		return fmt.Errorf("%w: spacing %v", ErrInvalidFormation, f.Spacing)
	}
	switch f.Kind {
	case FormationCircle:
		return nil
	case FormationRow:
		if f.UnitsPerRow < 1 {
			return fmt.Errorf("%w: units per row %d < 1", ErrInvalidFormation, f.UnitsPerRow)
		}
		if f.MaxEmptyRows < 1 {
			return fmt.Errorf("%w: max empty rows %d < 1", ErrInvalidFormation, f.MaxEmptyRows)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidFormation, f.Kind)
	}
}

// rowSlot returns the signed lateral multiple of (radius + spacing) for slot i
// of a row holding n units. Slots alternate right/left of the anchor:
// odd n: 0, +2, -2, +4, -4, ...; even n: +1, -1, +3, -3, ...
// Neighbors are therefore two multiples apart, one unit footprint.
func rowSlot(i, n int) float64 {
	if n%2 == 1 {
		if i == 0 {
			return 0
		}
		k := float64((i + 1) / 2 * 2)
		if i%2 == 1 {
			return k
		}
		return -k
	}
	k := float64(i/2*2 + 1)
	if i%2 == 0 {
		return k
	}
	return -k
}
