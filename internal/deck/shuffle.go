package deck

import "github.com/arcanaland/querent/internal/prng"

// Source supplies the randomness for a shuffle
type Source interface {
	// IntRange returns a uniform integer in [lo, hi]
	IntRange(lo, hi int) int
	// Shuffle permutes n elements through swap
	Shuffle(n int, swap func(i, j int))
}

// Shuffle reorders the deck and toggles reversals, fully determined by
// seed. Decks with the same cards in the same state end up identical.
func (d *Deck) Shuffle(seed string) {
	n := d.ShuffleWith(prng.NewFromString(seed))
	d.logger.Debug("deck shuffled",
		"deck", d.Name,
		"seed", seed,
		"toggled", n,
		"reversed", d.ReversedCount())
}

// ShuffleWith shuffles using src and returns the number of cards whose
// reversal was toggled.
//
// A count n is drawn from [MinReversed, MaxReversed], the deck is
// permuted, the first n cards are flipped, then the deck is permuted
// again so the flipped cards do not cluster at the front.
func (d *Deck) ShuffleWith(src Source) int {
	n := src.IntRange(d.MinReversed, d.MaxReversed)
	n = max(0, min(n, len(d.Cards)))

	swap := func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}

	src.Shuffle(len(d.Cards), swap)
	for _, c := range d.Cards[:n] {
		// a card already reversed turns upright
		c.Reversed = !c.Reversed
	}
	src.Shuffle(len(d.Cards), swap)

	return n
}
