package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/arcanaland/querent/internal/spread"
)

// WrapText wraps text to a specified width. Words longer than the width are
// left whole on their own line.
func WrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) <= width:
			currentLine += " " + word
		default:
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}
	return result
}

// Table writes the spread as aligned plain text, one placement per line
func Table(w io.Writer, s *spread.Spread) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, pl := range s.Placements {
		row := []string{pl.Label, pl.Card.String(), pl.Card.Keywords()}
		if pl.Card.Note != "" {
			row = append(row, "note: "+pl.Card.Note)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
