package config

import (
	"log/slog"
	"time"

	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/layout"
	"github.com/arcanaland/querent/internal/reading"
)

// Reading builds a session configuration from the file configuration
func (c *Config) Reading(clock func() time.Time, logger *slog.Logger) (reading.Config, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return reading.Config{}, err
	}

	return reading.Config{
		Cell: layout.Size{
			Width:  c.Layout.CellWidth,
			Height: c.Layout.CellHeight,
		},
		CellPad:       c.Layout.CellPad,
		MinReversed:   c.Shuffle.MinReversed,
		MaxReversed:   c.Shuffle.MaxReversed,
		ClampReversed: c.ClampReversed(),
		IncludeNotes:  c.Export.IncludeNotes,
		Catalog:       catalog,
		Clock:         clock,
		Logger:        logger,
	}, nil
}

// ClampReversed reports whether the reversal bounds shrink to fit decks
// smaller than max_reversed. Only the default bound does; a bound the user
// changed must fit the deck.
func (c *Config) ClampReversed() bool {
	return c.Shuffle.MaxReversed == deck.DefaultMaxReversed
}

// DealPause returns the presentation pause between dealt cards
func (c *Config) DealPause() time.Duration {
	return time.Duration(c.Shuffle.DealPauseMS) * time.Millisecond
}
