package deck

import (
	rand "math/rand/v2"
)

const (
	// DeckSize is the number of cards in one standard deck
	DeckSize = 52

	// DefaultDecks is the number of decks in a shoe unless configured
	DefaultDecks = 6

	// MinDepth is the reshuffle threshold: a shoe with fewer cards than
	// this is replaced before the next deal, never mid-hand.
	MinDepth = 20
)

// Shoe is a shuffled multi-deck card supply dealt from the top. It has
// value semantics: Draw returns the remainder as a new Shoe so state
// snapshots holding older shoes stay valid.
type Shoe struct {
	cards []Card
	decks int
}

// NewShoe builds a shoe of numDecks full decks and shuffles it with a
// Fisher-Yates pass over the provided rng. numDecks < 1 falls back to
// DefaultDecks.
func NewShoe(rng *rand.Rand, numDecks int) Shoe {
	if numDecks < 1 {
		numDecks = DefaultDecks
	}

	cards := make([]Card, 0, numDecks*DeckSize)
	for d := 0; d < numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}

	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return Shoe{cards: cards, decks: numDecks}
}

// NewStacked builds an unshuffled shoe that deals the given cards in
// order. Test fixture for deterministic rounds.
func NewStacked(cards ...Card) Shoe {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return Shoe{cards: stacked, decks: DefaultDecks}
}

// Draw removes and returns the top card plus the remaining shoe.
//
// An empty shoe is a broken reshuffle policy upstream: callers must check
// NeedsShuffle between rounds, so drawing from nothing panics rather than
// papering over the corruption.
func (s Shoe) Draw() (Card, Shoe) {
	if len(s.cards) == 0 {
		panic("deck: draw from exhausted shoe; reshuffle policy violated")
	}
	card := s.cards[0]
	return card, Shoe{cards: s.cards[1:], decks: s.decks}
}

// Remaining returns the number of cards left in the shoe
func (s Shoe) Remaining() int {
	return len(s.cards)
}

// Decks returns the deck count the shoe was built from
func (s Shoe) Decks() int {
	return s.decks
}

// NeedsShuffle reports whether the shoe is below the minimum depth and
// must be replaced before the next deal.
func (s Shoe) NeedsShuffle() bool {
	return len(s.cards) < MinDepth
}
