package game

import (
	"strings"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
)

// HandValue is the evaluated worth of a hand
type HandValue struct {
	Total  int
	IsSoft bool
	IsBust bool
}

// Evaluate computes a hand's blackjack value. Every ace starts at 11 and
// is demoted to 1 while the total exceeds 21. Cards marked hidden are
// skipped unless includeHidden is set; the engine peeks with it for the
// dealer-blackjack check without revealing the hole card to renderers.
//
// Pure function of its inputs; call it again after every card added,
// never cache across mutation.
func Evaluate(cards []deck.Card, includeHidden bool) HandValue {
	total, aces := 0, 0
	for _, c := range cards {
		if c.Hidden && !includeHidden {
			continue
		}
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	// A hand sitting exactly on 21 is reported hard: no draw could use
	// an ace's flexibility and every consumer stands on it.
	return HandValue{
		Total:  total,
		IsSoft: aces > 0 && total < 21,
		IsBust: total > 21,
	}
}

// Result is a hand's outcome, set only during resolution
type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultLoss
	ResultPush
	ResultBlackjack
	ResultDealerBlackjack
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	case ResultPush:
		return "push"
	case ResultBlackjack:
		return "blackjack"
	case ResultDealerBlackjack:
		return "dealer blackjack"
	default:
		return "unresolved"
	}
}

// Hand is one betting hand of cards. The player starts a round with one
// hand; splits can grow that to four. The dealer's hand reuses the type
// with a zero bet.
//
// Invariants the engine maintains: IsBust implies IsStand; IsDoubled
// implies exactly three cards and IsStand; IsBlackjack only ever holds on
// an original two-card hand and excludes IsDoubled.
type Hand struct {
	Cards       []deck.Card
	Bet         int
	IsActive    bool
	IsStand     bool
	IsBust      bool
	IsBlackjack bool
	IsDoubled   bool

	// Settlement, populated at resolution only
	Result Result
	Payout int
}

// Value evaluates the hand's visible cards; includeHidden additionally
// counts face-down cards.
func (h Hand) Value(includeHidden bool) HandValue {
	return Evaluate(h.Cards, includeHidden)
}

// IsPair reports whether the hand is exactly two cards of the same rank
// (the shape requirement for a split).
func (h Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// HasHidden reports whether any card is still face down
func (h Hand) HasHidden() bool {
	for _, c := range h.Cards {
		if c.Hidden {
			return true
		}
	}
	return false
}

// Played reports whether the hand no longer accepts actions
func (h Hand) Played() bool {
	return h.IsStand || h.IsBust
}

// String renders the hand like "A♠ 10♥" with hidden cards as card backs
func (h Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// clone deep-copies the hand so transitions never alias a prior
// snapshot's card slice.
func (h Hand) clone() Hand {
	out := h
	out.Cards = make([]deck.Card, len(h.Cards))
	copy(out.Cards, h.Cards)
	return out
}
