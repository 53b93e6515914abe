// Package reading runs a single tarot reading: it holds the deck, the
// querent's question and the moment of the shuffle, deals the chosen
// spread, collects notes, and exports the result.
//
// A Session is single-owner and not safe for concurrent use. Calls are
// expected in the order LoadDeck, RecordQuery, Shuffle, Deal, SetNote,
// Export; each failing call leaves the session as it was.
package reading

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/layout"
	"github.com/arcanaland/querent/internal/spread"
)

// TimestampLayout formats the moment a deck is shuffled
const TimestampLayout = time.DateTime

// Config carries everything a session needs besides the deck
type Config struct {
	Cell          layout.Size
	CellPad       float64
	MinReversed   int
	MaxReversed   int
	ClampReversed bool // lower the reversal bounds to fit smaller decks
	IncludeNotes  bool // export notes as a third column
	Catalog       *spread.Catalog
	Clock         func() time.Time
	Logger        *slog.Logger
}

// DefaultConfig returns the classic 240x150 cell layout with up to 39
// reversals and the built-in spreads
func DefaultConfig() Config {
	return Config{
		Cell:          layout.Size{Width: 240, Height: 150},
		CellPad:       10,
		MinReversed:   deck.DefaultMinReversed,
		MaxReversed:   deck.DefaultMaxReversed,
		ClampReversed: true,
		Catalog:       spread.NewCatalog(),
		Clock:         time.Now,
		Logger:        slog.Default(),
	}
}

// Session is one reading
type Session struct {
	ID uuid.UUID

	cfg       Config
	deck      *deck.Deck
	spread    *spread.Spread
	query     string
	timestamp string
	exported  bool
	logger    *slog.Logger
}

// NewSession creates a session with no deck. Nil Catalog, Clock and
// Logger fields take their defaults.
func NewSession(cfg Config) *Session {
	if cfg.Catalog == nil {
		cfg.Catalog = spread.NewCatalog()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	id := uuid.New()
	return &Session{
		ID:        id,
		cfg:       cfg,
		timestamp: cfg.Clock().Format(TimestampLayout),
		logger:    cfg.Logger.With("session", id.String()),
	}
}

// LoadDeck loads the card source at path and makes it the session deck
func (s *Session) LoadDeck(path string) error {
	d, err := deck.LoadDeck(path)
	if err != nil {
		return err
	}
	return s.UseDeck(d)
}

// UseDeck makes d the session deck and drops any dealt spread. The
// configured reversal bounds must fit the deck unless ClampReversed is set.
func (s *Session) UseDeck(d *deck.Deck) error {
	minRev, maxRev := s.cfg.MinReversed, s.cfg.MaxReversed
	if s.cfg.ClampReversed {
		maxRev = min(maxRev, d.Len())
		minRev = min(minRev, maxRev)
	}
	if err := d.SetReversalRange(minRev, maxRev); err != nil {
		return &deck.LoadError{Path: d.Path, Err: err}
	}
	d.SetLogger(s.logger)

	s.deck = d
	s.spread = nil
	s.exported = false
	s.logger.Info("deck loaded", "deck", d.Name, "cards", d.Len())
	return nil
}

// RecordQuery sets the querent's question
func (s *Session) RecordQuery(text string) {
	s.query = text
}

// Shuffle stamps the reading with the current time and shuffles the deck
// seeded by the query followed by that timestamp. Any dealt spread is
// dropped; deal again before exporting.
func (s *Session) Shuffle() error {
	if s.deck == nil {
		return ErrNoDeck
	}
	s.timestamp = s.cfg.Clock().Format(TimestampLayout)
	s.deck.Shuffle(s.Seed())
	s.deck.ClearRegions()
	s.spread = nil
	s.exported = false
	s.logger.Info("deck shuffled",
		"query", s.query,
		"timestamp", s.timestamp,
		"reversed", s.deck.ReversedCount())
	return nil
}

// Seed returns the shuffle seed for the current query and timestamp
func (s *Session) Seed() string {
	return s.query + s.timestamp
}

// Deal lays the front of the deck out on the named spread. On failure the
// previous spread stays active.
func (s *Session) Deal(name string) error {
	if s.deck == nil {
		return ErrNoDeck
	}
	def, ok := s.cfg.Catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSpread, name)
	}

	sp, err := spread.Materialize(s.deck, def, s.cfg.Cell, s.cfg.CellPad)
	if err != nil {
		return err
	}

	s.spread = sp
	s.exported = false
	s.logger.Info("spread dealt", "spread", sp.Name, "cards", sp.Len())
	return nil
}

// HitTest returns the placement index under p, if any
func (s *Session) HitTest(p layout.Point) (int, bool) {
	if s.spread == nil {
		return -1, false
	}
	return s.spread.HitTest(p)
}

// SetNote records the querent's note on the card at a placement
func (s *Session) SetNote(index int, text string) error {
	if s.spread == nil {
		return ErrNoActiveSpread
	}
	if index < 0 || index >= s.spread.Len() {
		return fmt.Errorf("%w: %d of %d", ErrPlacementIndex, index+1, s.spread.Len())
	}

	pl := s.spread.Placements[index]
	pl.Card.Note = text
	s.logger.Debug("note set", "position", pl.Label, "card", pl.Card.Name)
	return nil
}

// SetNoteAt records a note on the card under p and returns its placement
func (s *Session) SetNoteAt(p layout.Point, text string) (int, error) {
	if s.spread == nil {
		return -1, ErrNoActiveSpread
	}
	index, ok := s.spread.HitTest(p)
	if !ok {
		return -1, fmt.Errorf("%w: nothing at %s", ErrPlacementIndex, p)
	}
	return index, s.SetNote(index, text)
}

// Deck returns the session deck, nil before LoadDeck
func (s *Session) Deck() *deck.Deck { return s.deck }

// Spread returns the active spread, nil before the first deal
func (s *Session) Spread() *spread.Spread { return s.spread }

// Query returns the recorded question
func (s *Session) Query() string { return s.query }

// Timestamp returns the reading's timestamp
func (s *Session) Timestamp() string { return s.timestamp }

// Catalog returns the spreads on offer
func (s *Session) Catalog() *spread.Catalog { return s.cfg.Catalog }

// Exported reports whether the current spread has been saved
func (s *Session) Exported() bool { return s.exported }
