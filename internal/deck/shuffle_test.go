package deck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource returns a fixed count, reverses the deck on the first
// shuffle and leaves it alone on the second.
type scriptedSource struct {
	n        int
	lo, hi   int
	shuffles int
}

func (s *scriptedSource) IntRange(lo, hi int) int {
	s.lo, s.hi = lo, hi
	return s.n
}

func (s *scriptedSource) Shuffle(n int, swap func(i, j int)) {
	s.shuffles++
	if s.shuffles == 1 {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
}

func TestShuffleKnownSeed(t *testing.T) {
	d := parseString(t, tenCards)
	require.NoError(t, d.SetReversalRange(0, 5))

	d.Shuffle("career2026-10-19 09:30:00")

	assert.Equal(t, "ICHJBDEAGF", names(d))

	var reversed []string
	for _, c := range d.Cards {
		if c.Reversed {
			reversed = append(reversed, c.Name)
		}
	}
	assert.Equal(t, []string{"I", "G", "F"}, reversed)
}

func TestShuffleDeterministic(t *testing.T) {
	seeds := []string{"", "What is ahead?2020-12-01 10:00:00", "love2026-02-14 20:15:00", "ünïcode ✨"}

	for _, seed := range seeds {
		t.Run(seed, func(t *testing.T) {
			a, err := Builtin()
			require.NoError(t, err)
			b, err := Builtin()
			require.NoError(t, err)

			a.Shuffle(seed)
			b.Shuffle(seed)

			require.Equal(t, a.Len(), b.Len())
			for i := range a.Cards {
				assert.Equal(t, a.Cards[i].Code, b.Cards[i].Code, "position %d", i)
				assert.Equal(t, a.Cards[i].Reversed, b.Cards[i].Reversed, "position %d", i)
			}
		})
	}
}

func TestShuffleDifferentSeedsDiffer(t *testing.T) {
	a, err := Builtin()
	require.NoError(t, err)
	b, err := Builtin()
	require.NoError(t, err)

	a.Shuffle("What is ahead?2020-12-01 10:00:00")
	b.Shuffle("What is ahead?2020-12-01 10:00:01")

	assert.NotEqual(t, codes(a), codes(b))
}

func TestShuffleKeepsCardSet(t *testing.T) {
	d, err := Builtin()
	require.NoError(t, err)
	before := codes(d)

	d.Shuffle("set")
	assert.ElementsMatch(t, before, codes(d))
}

func TestShuffleReversedCountWithinBounds(t *testing.T) {
	for i := range 50 {
		seed := fmt.Sprintf("query %d", i)
		d, err := Builtin()
		require.NoError(t, err)
		require.NoError(t, d.SetReversalRange(5, 20))

		d.Shuffle(seed)

		got := d.ReversedCount()
		assert.GreaterOrEqual(t, got, 5, seed)
		assert.LessOrEqual(t, got, 20, seed)
	}
}

func TestShuffleWithTogglesFrontOfFirstPermutation(t *testing.T) {
	d := parseString(t, tenCards)
	require.NoError(t, d.SetReversalRange(1, 6))
	// pre-reversed card gets toggled back upright
	d.Cards[9].Reversed = true

	src := &scriptedSource{n: 3}
	n := d.ShuffleWith(src)

	assert.Equal(t, 3, n)
	assert.Equal(t, 1, src.lo)
	assert.Equal(t, 6, src.hi)
	assert.Equal(t, 2, src.shuffles)
	assert.Equal(t, "JIHGFEDCBA", names(d))

	// J, I, H were the first three after the first permutation
	assert.False(t, d.Cards[0].Reversed, "J was reversed and flips upright")
	assert.True(t, d.Cards[1].Reversed)
	assert.True(t, d.Cards[2].Reversed)
	for _, c := range d.Cards[3:] {
		assert.False(t, c.Reversed, c.Name)
	}
}

func TestShuffleWithClampsCount(t *testing.T) {
	d := parseString(t, "Card,Code,Keyword,Reversed\nA,a,,\nB,b,,\n")
	n := d.ShuffleWith(&scriptedSource{n: 39})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, d.ReversedCount())
}

func codes(d *Deck) []string {
	out := make([]string, 0, d.Len())
	for _, c := range d.Cards {
		out = append(out, c.Code)
	}
	return out
}
