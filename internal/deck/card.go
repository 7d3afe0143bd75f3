// Package deck provides playing cards and the multi-deck blackjack shoe.
package deck

import (
	"fmt"

	"github.com/google/uuid"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Numeric ranks carry their own value.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Value returns the blackjack value of the rank: face cards count 10,
// an Ace counts 11 nominally (demotion to 1 is the evaluator's job).
func (r Rank) Value() int {
	switch {
	case r >= Jack && r <= King:
		return 10
	case r == Ace:
		return 11
	default:
		return int(r)
	}
}

// Card represents a playing card. Hidden marks the dealer's hole card
// while it is face down; ID is a stable key for render/animation layers
// and carries no game meaning.
type Card struct {
	ID     string
	Suit   Suit
	Rank   Rank
	Hidden bool
}

// NewCard creates a new face-up card
func NewCard(suit Suit, rank Rank) Card {
	return Card{ID: uuid.NewString(), Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠").
// A hidden card renders as a back.
func (c Card) String() string {
	if c.Hidden {
		return "??"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the blackjack value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// FaceUp returns a copy of the card with the Hidden flag cleared
func (c Card) FaceUp() Card {
	c.Hidden = false
	return c
}

// FaceDown returns a copy of the card with the Hidden flag set
func (c Card) FaceDown() Card {
	c.Hidden = true
	return c
}

// ParseCard parses shorthand like "As", "10h", "K♦". Used mostly by tests
// to rig shoes.
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	var suit Suit
	switch s[len(s)-1:] {
	case "♠", "s", "S":
		suit = Spades
	case "♥", "h", "H":
		suit = Hearts
	case "♦", "d", "D":
		suit = Diamonds
	case "♣", "c", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", s[len(s)-1:])
	}

	var rank Rank
	switch s[:len(s)-1] {
	case "2":
		rank = Two
	case "3":
		rank = Three
	case "4":
		rank = Four
	case "5":
		rank = Five
	case "6":
		rank = Six
	case "7":
		rank = Seven
	case "8":
		rank = Eight
	case "9":
		rank = Nine
	case "10", "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid card rank: %q", s[:len(s)-1])
	}

	return NewCard(suit, rank), nil
}

// MustParseCard is ParseCard that panics on bad input, for test fixtures
func MustParseCard(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return card
}
