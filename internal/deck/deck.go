package deck

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/querent/internal/card"
)

// Card source column names, matched case-sensitively
const (
	ColumnName     = "Card"
	ColumnCode     = "Code"
	ColumnUpright  = "Keyword"
	ColumnReversed = "Reversed"
)

// RequiredColumns lists the header columns every card source must carry
var RequiredColumns = []string{ColumnName, ColumnCode, ColumnUpright, ColumnReversed}

// Default reversal bounds for a shuffle
const (
	DefaultMinReversed = 0
	DefaultMaxReversed = 39
)

// BuiltinName is the name of the bundled deck
const BuiltinName = "rider-waite-smith"

//go:embed data/rider-waite-smith.csv
var builtinCSV []byte

const bom = "\ufeff"

// Deck represents an ordered tarot deck. Cards are owned by the deck;
// their order is the deal order.
type Deck struct {
	Name  string
	Path  string
	Cards []*card.Card

	// Bounds of the number of cards toggled by each shuffle
	MinReversed int
	MaxReversed int

	logger *slog.Logger
}

// LoadDeck loads a deck from a card source file
func LoadDeck(path string) (*Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	d, err := parse(file, path)
	if err != nil {
		return nil, err
	}
	d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	d.Path = path
	return d, nil
}

// Parse reads a deck from CSV with a Card, Code, Keyword, Reversed header
func Parse(r io.Reader) (*Deck, error) {
	return parse(r, "")
}

// Builtin returns a fresh copy of the bundled 78 card deck
func Builtin() (*Deck, error) {
	d, err := parse(bytes.NewReader(builtinCSV), "")
	if err != nil {
		return nil, err
	}
	d.Name = BuiltinName
	return d, nil
}

// BuiltinCSV returns the bundled deck's card source
func BuiltinCSV() []byte {
	return bytes.Clone(builtinCSV)
}

// NewReader returns a CSV reader over a card source, skipping any leading
// byte-order mark
func NewReader(r io.Reader) *csv.Reader {
	return csv.NewReader(skipBOM(r))
}

func parse(r io.Reader, path string) (*Deck, error) {
	reader := NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Err: ErrEmptyDeck}
	}
	if err != nil {
		return nil, loadErrorf(path, ErrMalformedRow, "header: %v", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var cards []*card.Card
	seen := make(map[string]int)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadErrorf(path, ErrMalformedRow, "%v", err)
		}
		line, _ := reader.FieldPos(0)

		c := &card.Card{
			Name:             strings.TrimSpace(row[cols[ColumnName]]),
			Code:             strings.TrimSpace(row[cols[ColumnCode]]),
			KeywordsUpright:  strings.TrimSpace(row[cols[ColumnUpright]]),
			KeywordsReversed: strings.TrimSpace(row[cols[ColumnReversed]]),
		}
		if c.Name == "" {
			return nil, loadErrorf(path, ErrMalformedRow, "line %d: empty %s", line, ColumnName)
		}
		if c.Code == "" {
			return nil, loadErrorf(path, ErrMalformedRow, "line %d: empty %s", line, ColumnCode)
		}
		if first, ok := seen[c.Code]; ok {
			return nil, loadErrorf(path, ErrDuplicateCode, "line %d: %s already used on line %d", line, c.Code, first)
		}
		seen[c.Code] = line

		cards = append(cards, c)
	}

	if len(cards) == 0 {
		return nil, &LoadError{Path: path, Err: ErrEmptyDeck}
	}

	return &Deck{
		Cards:       cards,
		MinReversed: DefaultMinReversed,
		MaxReversed: min(DefaultMaxReversed, len(cards)),
		logger:      slog.Default(),
	}, nil
}

// skipBOM drops a UTF-8 byte-order mark at the start of r
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(bom)); err == nil && string(prefix) == bom {
		br.Discard(len(bom))
	}
	return br
}

// columnIndex maps the required column names to their header positions
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := cols[strings.TrimSpace(h)]; !dup {
			cols[strings.TrimSpace(h)] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

// SetLogger sets the logger used for shuffle records
func (d *Deck) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	d.logger = logger
}

// SetReversalRange sets the inclusive bounds for the number of cards a
// shuffle toggles. max may not exceed the deck size.
func (d *Deck) SetReversalRange(minRev, maxRev int) error {
	if minRev < 0 || minRev > maxRev || maxRev > len(d.Cards) {
		return fmt.Errorf("%w: [%d, %d] for %d cards", ErrReversalRange, minRev, maxRev, len(d.Cards))
	}
	d.MinReversed = minRev
	d.MaxReversed = maxRev
	return nil
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.Cards)
}

// GetCard gets a card by its code
func (d *Deck) GetCard(code string) (*card.Card, error) {
	for _, c := range d.Cards {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotFound, code)
}

// ClearRegions forgets every card's placement on the canvas
func (d *Deck) ClearRegions() {
	for _, c := range d.Cards {
		c.Region = nil
	}
}

// ReversedCount returns how many cards are currently reversed
func (d *Deck) ReversedCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.Reversed {
			n++
		}
	}
	return n
}
