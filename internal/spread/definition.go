package spread

import (
	"errors"
	"fmt"
)

// Grid is the number of notional cells along each canvas axis
const Grid = 4

// Built-in spread names
const (
	ThreeCard   = "3 Card Simple Quick"
	CelticCross = "10 Card Celtic Cross"

	// Default is the spread preselected for a reading
	Default = CelticCross
)

var ErrInvalidDefinition = errors.New("invalid spread definition")

// Position is one dealt slot: its cell on the grid and its meaning
type Position struct {
	Column float64 `toml:"column"`
	Row    float64 `toml:"row"`
	Label  string  `toml:"label"`
}

// Definition is a named, ordered list of positions. Position i receives
// the i-th dealt card.
type Definition struct {
	Name      string     `toml:"name"`
	Positions []Position `toml:"positions"`
}

// Len returns the number of cards the spread deals
func (d Definition) Len() int {
	return len(d.Positions)
}

// Validate checks the definition is usable on the grid. Overlapping
// positions are not detected.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDefinition)
	}
	if len(d.Positions) == 0 {
		return fmt.Errorf("%w: %s has no positions", ErrInvalidDefinition, d.Name)
	}
	for i, p := range d.Positions {
		if p.Column < 0 || p.Column > Grid-1 || p.Row < 0 || p.Row > Grid-1 {
			return fmt.Errorf("%w: %s position %d (%g, %g) is off the %dx%d grid",
				ErrInvalidDefinition, d.Name, i+1, p.Column, p.Row, Grid, Grid)
		}
	}
	return nil
}

func builtins() []Definition {
	return []Definition{
		{
			Name: ThreeCard,
			Positions: []Position{
				{0, 1.5, "1. Past"},
				{1.5, 1.5, "2. Present"},
				{3, 1.5, "3. Future"},
			},
		},
		{
			Name: CelticCross,
			Positions: []Position{
				{1, 1, "1. Situation's heart, atmosphere"},
				{1, 2, "2. Crossing challenges"},
				{1, 0, "3. Crowning ideal or goal"},
				{1, 3, "4. Root foundation"},
				{0, 1.5, "5. Past influence"},
				{2, 1.5, "6. Near future"},
				{3, 3, "7. Attitude facing concerns"},
				{3, 2, "8. Environment's effects"},
				{3, 1, "9. Deep desires, fears"},
				{3, 0, "10. Culmination, outcome"},
			},
		},
	}
}
