// Package spread lays dealt cards out on the reading canvas.
//
// A Definition describes where each dealt card goes on a notional 4x4
// grid. Materialize projects the front of a deck onto a definition and
// computes every card's pixel region; the resulting Spread answers
// hit-tests for points on the canvas.
package spread

import (
	"errors"
	"fmt"

	"github.com/arcanaland/querent/internal/card"
	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/layout"
)

var ErrInvalidGeometry = errors.New("cell padding leaves no room for a card")

// InsufficientCardsError reports a spread needing more cards than the
// deck holds
type InsufficientCardsError struct {
	Spread string
	Need   int
	Have   int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("spread %q needs %d cards, deck has %d", e.Spread, e.Need, e.Have)
}

// Placement is one dealt card. Card points into the deck that owns it.
type Placement struct {
	DeckIndex int
	Card      *card.Card
	Label     string
	Region    layout.Rect
}

// Spread is a materialized layout of dealt cards
type Spread struct {
	Name       string
	Placements []Placement
}

// Project maps placement i to the deck index it is dealt from: the
// front len(def.Positions) cards, in order.
func Project(def Definition, deckLen int) ([]int, error) {
	if deckLen < def.Len() {
		return nil, &InsufficientCardsError{Spread: def.Name, Need: def.Len(), Have: deckLen}
	}
	order := make([]int, def.Len())
	for i := range order {
		order[i] = i
	}
	return order, nil
}

// Region computes the canvas rectangle for a position
func Region(p Position, cell layout.Size, pad float64) layout.Rect {
	origin := layout.Point{
		X: p.Column*cell.Width + pad,
		Y: p.Row*cell.Height + pad,
	}
	return layout.Rect{
		Min: origin,
		Max: layout.Point{
			X: origin.X + cell.Width - 2*pad,
			Y: origin.Y + cell.Height - 2*pad,
		},
	}
}

// Materialize deals the front of d onto def. Each dealt card's Region is
// set. On error no card is touched.
func Materialize(d *deck.Deck, def Definition, cell layout.Size, pad float64) (*Spread, error) {
	if pad < 0 || cell.Width <= 2*pad || cell.Height <= 2*pad {
		return nil, fmt.Errorf("%w: cell %gx%g, pad %g", ErrInvalidGeometry, cell.Width, cell.Height, pad)
	}

	order, err := Project(def, d.Len())
	if err != nil {
		return nil, err
	}

	d.ClearRegions()
	s := &Spread{
		Name:       def.Name,
		Placements: make([]Placement, 0, len(order)),
	}
	for i, idx := range order {
		pos := def.Positions[i]
		c := d.Cards[idx]
		region := Region(pos, cell, pad)

		c.Place(region)
		s.Placements = append(s.Placements, Placement{
			DeckIndex: idx,
			Card:      c,
			Label:     pos.Label,
			Region:    region,
		})
	}
	return s, nil
}

// HitTest returns the index of the first placement strictly containing p
func (s *Spread) HitTest(p layout.Point) (int, bool) {
	for i, pl := range s.Placements {
		if pl.Region.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of placements
func (s *Spread) Len() int {
	return len(s.Placements)
}
