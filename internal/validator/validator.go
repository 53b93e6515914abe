// Package validator lints card source files. Unlike loading a deck, which
// stops at the first problem, it reports every error and warning it finds.
package validator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arcanaland/querent/internal/deck"
)

// StandardDeckSize is the number of cards in a full tarot deck
const StandardDeckSize = 78

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	// MaxReversed is a reversal bound the deck must fit; zero skips the check
	MaxReversed int

	cols  map[string]int
	cards int
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate lints the file at DeckPath. The returned error is set only when
// the file cannot be read at all.
func (v *Validator) Validate() (ValidationResults, error) {
	file, err := os.Open(v.DeckPath)
	if err != nil {
		return v.Results, fmt.Errorf("error opening card source: %w", err)
	}
	defer file.Close()

	return v.ValidateReader(file)
}

// ValidateReader lints a card source read from r
func (v *Validator) ValidateReader(r io.Reader) (ValidationResults, error) {
	reader := deck.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		v.errorf("file is empty")
		return v.Results, nil
	}
	if err != nil {
		v.errorf("header: %v", err)
		return v.Results, nil
	}

	if !v.validateHeader(header) {
		return v.Results, nil
	}
	if err := v.validateRows(reader, len(header)); err != nil {
		v.errorf("%v", err)
	}
	v.validateSize()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateHeader checks for the required columns and reports whether rows
// can be checked at all
func (v *Validator) validateHeader(header []string) bool {
	v.cols = make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := v.cols[name]; dup {
			v.warnf("column %q appears more than once; the first is used", name)
			continue
		}
		v.cols[name] = i
	}

	ok := true
	for _, name := range deck.RequiredColumns {
		if _, found := v.cols[name]; !found {
			v.errorf("missing required column %q", name)
			ok = false
		}
	}
	return ok
}

// validateRows checks every card row for required fields and unique codes
func (v *Validator) validateRows(reader *csv.Reader, width int) error {
	codes := make(map[string]int)
	names := make(map[string]int)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := reader.FieldPos(0)

		if len(row) != width {
			v.errorf("line %d: expected %d fields, found %d", line, width, len(row))
			continue
		}
		v.cards++

		field := func(col string) string {
			return strings.TrimSpace(row[v.cols[col]])
		}
		name, code := field(deck.ColumnName), field(deck.ColumnCode)

		if name == "" {
			v.errorf("line %d: empty %s", line, deck.ColumnName)
		} else if first, dup := names[name]; dup {
			v.warnf("line %d: card name %q already used on line %d", line, name, first)
		} else {
			names[name] = line
		}

		if code == "" {
			v.errorf("line %d: empty %s", line, deck.ColumnCode)
		} else if first, dup := codes[code]; dup {
			v.errorf("line %d: duplicate %s %q (first on line %d)", line, deck.ColumnCode, code, first)
		} else {
			codes[code] = line
		}

		if field(deck.ColumnUpright) == "" {
			v.warnf("line %d: %s has no %s text", line, describe(name, code), deck.ColumnUpright)
		}
		if field(deck.ColumnReversed) == "" {
			v.warnf("line %d: %s has no %s text", line, describe(name, code), deck.ColumnReversed)
		}
	}
}

func (v *Validator) validateSize() {
	switch {
	case v.cards == 0:
		v.errorf("no cards found")
		return
	case v.cards != StandardDeckSize:
		v.warnf("deck has %d cards (a standard tarot deck has %d)", v.cards, StandardDeckSize)
	}

	if v.MaxReversed > 0 && v.cards < v.MaxReversed {
		v.warnf("deck has fewer cards (%d) than the reversal maximum (%d); lower shuffle.max_reversed to read with it",
			v.cards, v.MaxReversed)
	}
}

func describe(name, code string) string {
	if name == "" {
		return fmt.Sprintf("card %q", code)
	}
	return fmt.Sprintf("%q", name)
}
