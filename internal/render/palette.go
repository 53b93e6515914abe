package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colours used for each kind of text on the canvas
type Palette struct {
	Label    colorful.Color
	Card     colorful.Color
	Keywords colorful.Color
	Note     colorful.Color
}

// ParsePalette parses "#rrggbb" colours for labels, card names, keywords and notes
func ParsePalette(label, card, keywords, note string) (Palette, error) {
	var p Palette
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"label", label, &p.Label},
		{"card", card, &p.Card},
		{"keywords", keywords, &p.Keywords},
		{"note", note, &p.Note},
	} {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

func (p Palette) color(r role) (colorful.Color, bool) {
	switch r {
	case roleLabel:
		return p.Label, true
	case roleCard:
		return p.Card, true
	case roleKeywords:
		return p.Keywords, true
	case roleNote:
		return p.Note, true
	}
	return colorful.Color{}, false
}

// ansiForeground formats a 24-bit foreground escape for c
func ansiForeground(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

const ansiReset = "\x1b[0m"
