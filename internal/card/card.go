package card

import "github.com/arcanaland/querent/internal/layout"

// ReversedWord is appended to the name of a reversed card
const ReversedWord = "Reversed"

// Card represents a tarot card and its state within the current reading
type Card struct {
	Name             string // Display name (e.g., The Fool)
	Code             string // Short identifier, unique within a deck
	KeywordsUpright  string // Divinatory keywords when upright
	KeywordsReversed string // Divinatory keywords when reversed

	Reversed bool         // Toggled by shuffling
	Note     string       // Querent's note for this reading
	Region   *layout.Rect // Canvas region, nil until placed in a spread
}

// String is the card name, suffixed with ReversedWord when reversed
func (c *Card) String() string {
	if c.Reversed {
		return c.Name + " " + ReversedWord
	}
	return c.Name
}

// Keywords returns the keywords matching the card's orientation
func (c *Card) Keywords() string {
	if c.Reversed {
		return c.KeywordsReversed
	}
	return c.KeywordsUpright
}

// Place records the card's canvas region
func (c *Card) Place(r layout.Rect) {
	c.Region = &r
}
