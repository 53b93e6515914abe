package spread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogBuiltins(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, []string{ThreeCard, CelticCross}, c.Names())

	three, ok := c.Lookup(ThreeCard)
	require.True(t, ok)
	assert.Equal(t, 3, three.Len())
	assert.Equal(t, Position{Column: 1.5, Row: 1.5, Label: "2. Present"}, three.Positions[1])

	cross, ok := c.Lookup(CelticCross)
	require.True(t, ok)
	assert.Equal(t, 10, cross.Len())
	assert.Equal(t, "10. Culmination, outcome", cross.Positions[9].Label)

	_, ok = c.Lookup(Default)
	assert.True(t, ok)

	_, ok = c.Lookup("5 Card Horseshoe")
	assert.False(t, ok)
}

func TestCatalogAdd(t *testing.T) {
	c := NewCatalog()

	custom := Definition{
		Name: "2 Card Choice",
		Positions: []Position{
			{Column: 1, Row: 1, Label: "1. This path"},
			{Column: 2, Row: 1, Label: "2. That path"},
		},
	}
	require.NoError(t, c.Add(custom))
	assert.Equal(t, []string{ThreeCard, CelticCross, "2 Card Choice"}, c.Names())

	// mutating the caller's slice does not reach the catalog
	custom.Positions[0].Label = "changed"
	got, _ := c.Lookup("2 Card Choice")
	assert.Equal(t, "1. This path", got.Positions[0].Label)
}

func TestCatalogAddRejects(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"empty name", Definition{Positions: []Position{{Label: "x"}}}},
		{"no positions", Definition{Name: "empty"}},
		{"off grid column", Definition{Name: "wide", Positions: []Position{{Column: 3.5, Row: 0}}}},
		{"negative row", Definition{Name: "high", Positions: []Position{{Column: 0, Row: -1}}}},
		{"duplicate builtin", Definition{Name: CelticCross, Positions: []Position{{Column: 0, Row: 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog()
			assert.ErrorIs(t, c.Add(tt.def), ErrInvalidDefinition)
			assert.Len(t, c.Names(), 2)
		})
	}
}
