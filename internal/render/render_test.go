package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/querent/internal/deck"
	"github.com/arcanaland/querent/internal/layout"
	"github.com/arcanaland/querent/internal/spread"
)

var cell = layout.Size{Width: 240, Height: 150}

func threeCardSpread(t *testing.T) *spread.Spread {
	t.Helper()
	d, err := deck.Parse(strings.NewReader(
		"Card,Code,Keyword,Reversed\n" +
			"The Fool,m00,beginnings,recklessness\n" +
			"The Tower,m16,upheaval,averted disaster\n" +
			"The Sun,m19,joy,sadness\n"))
	require.NoError(t, err)
	d.Cards[1].Reversed = true

	def, ok := spread.NewCatalog().Lookup(spread.ThreeCard)
	require.True(t, ok)
	s, err := spread.Materialize(d, def, cell, 10)
	require.NoError(t, err)
	return s
}

func testPalette(t *testing.T) Palette {
	t.Helper()
	p, err := ParsePalette("#A060C0", "#F0F0F0", "#60A0A0", "#60A060")
	require.NoError(t, err)
	return p
}

func TestParsePalette(t *testing.T) {
	p := testPalette(t)
	r, g, b := p.Label.RGB255()
	assert.Equal(t, []uint8{0xA0, 0x60, 0xC0}, []uint8{r, g, b})

	_, err := ParsePalette("#A060C0", "white", "#60A0A0", "#60A060")
	assert.ErrorContains(t, err, "palette card")
}

func TestSpreadPlain(t *testing.T) {
	s := threeCardSpread(t)
	s.Placements[2].Card.Note = "warmth"

	var buf bytes.Buffer
	require.NoError(t, Spread(&buf, s, Options{Width: 96, Cell: cell}))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	for _, want := range []string{"1. Past", "The Fool", "2. Present", "The Tower Reversed", "averted", "The Sun", "warmth"} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// blank rows above the row-1.5 cards are dropped
	assert.True(t, strings.HasPrefix(strings.TrimLeft(lines[0], " "), "┌"))
	assert.True(t, strings.HasPrefix(strings.TrimLeft(lines[len(lines)-1], " "), "└"))
	assert.Equal(t, 3, strings.Count(lines[0], "┌"))
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 96)
		assert.Equal(t, l, strings.TrimRight(l, " "))
	}
}

func TestSpreadColor(t *testing.T) {
	s := threeCardSpread(t)

	var buf bytes.Buffer
	require.NoError(t, Spread(&buf, s, Options{Width: 96, Cell: cell, Color: true, Palette: testPalette(t)}))
	out := buf.String()

	assert.Contains(t, out, "\x1b[38;2;160;96;192m1. Past")
	assert.Contains(t, out, "\x1b[38;2;240;240;240mThe Fool")
	assert.Contains(t, out, "\x1b[38;2;240;240;240mThe Tower Reversed")
	assert.Contains(t, out, "\x1b[0m")
}

func TestSpreadNarrowWidthUsesMinimum(t *testing.T) {
	s := threeCardSpread(t)

	var buf bytes.Buffer
	require.NoError(t, Spread(&buf, s, Options{Width: 10, Cell: cell}))
	for _, l := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(l)), MinWidth)
	}
}

func TestCanvasClipsText(t *testing.T) {
	s := threeCardSpread(t)
	s.Placements[0].Label = strings.Repeat("x", 200)

	var buf bytes.Buffer
	require.NoError(t, Spread(&buf, s, Options{Width: 96, Cell: cell}))
	assert.NotContains(t, buf.String(), strings.Repeat("x", 30))
}

func TestTable(t *testing.T) {
	s := threeCardSpread(t)
	s.Placements[0].Card.Note = "fresh start"

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, s))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^1\. Past\s+The Fool\s+beginnings\s+note: fresh start$`, lines[0])
	assert.Regexp(t, `^2\. Present\s+The Tower Reversed\s+averted disaster$`, lines[1])
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"new beginnings, optimism, trust in life", 16, []string{"new beginnings,", "optimism, trust", "in life"}},
		{"extraordinarily long", 5, []string{"extraordinarily", "long"}},
		{"  spaced   out  ", 20, []string{"spaced out"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapText(tt.text, tt.width), tt.text)
	}
}
