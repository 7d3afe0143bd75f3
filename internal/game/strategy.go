package game

import (
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
)

// OptimalMove returns the basic-strategy chart answer for the hand against
// the dealer's up-card, under multi-deck dealer-hits-soft-17 rules.
//
// canSplit and canDouble describe what the table currently permits; a
// chart DOUBLE degrades to HIT when doubling is unavailable, and the pair
// rows are only consulted when splitting is. The lookup is pure and is
// used to grade decisions, never to enforce them.
func OptimalMove(hand Hand, upCard deck.Card, canSplit, canDouble bool) Move {
	value := hand.Value(false)
	dealer := upCard.Value()

	if canSplit && hand.IsPair() {
		if move, ok := pairMove(hand.Cards[0].Rank, dealer); ok {
			return move
		}
	}

	if value.IsSoft {
		return softMove(value.Total, dealer, canDouble)
	}
	return hardMove(value.Total, dealer, canDouble)
}

// pairMove consults the splitting rows. The second return is false when
// the chart says to play the pair as its total instead.
func pairMove(rank deck.Rank, dealer int) (Move, bool) {
	switch rank {
	case deck.Ace, deck.Eight:
		// Always split aces and eights
		return MoveSplit, true
	case deck.Two, deck.Three, deck.Seven:
		if dealer >= 2 && dealer <= 7 {
			return MoveSplit, true
		}
	case deck.Four:
		if dealer == 5 || dealer == 6 {
			return MoveSplit, true
		}
	case deck.Six:
		if dealer >= 2 && dealer <= 6 {
			return MoveSplit, true
		}
	case deck.Nine:
		// Stand against 7, ten-values and ace
		if (dealer >= 2 && dealer <= 6) || dealer == 8 || dealer == 9 {
			return MoveSplit, true
		}
	}
	// Fives play as hard 10, tens stay a made 20
	return MoveHit, false
}

func softMove(total, dealer int, canDouble bool) Move {
	switch {
	case total >= 20:
		return MoveStand
	case total == 19:
		if canDouble && dealer == 6 {
			return MoveDouble
		}
		return MoveStand
	case total == 18:
		if canDouble && dealer >= 2 && dealer <= 6 {
			return MoveDouble
		}
		if dealer >= 2 && dealer <= 8 {
			return MoveStand
		}
		return MoveHit
	case total == 17:
		if canDouble && dealer >= 3 && dealer <= 6 {
			return MoveDouble
		}
		return MoveHit
	case total == 15 || total == 16:
		if canDouble && dealer >= 4 && dealer <= 6 {
			return MoveDouble
		}
		return MoveHit
	case total == 13 || total == 14:
		if canDouble && dealer >= 5 && dealer <= 6 {
			return MoveDouble
		}
		return MoveHit
	default:
		return MoveHit
	}
}

func hardMove(total, dealer int, canDouble bool) Move {
	switch {
	case total >= 17:
		return MoveStand
	case total >= 13:
		if dealer >= 2 && dealer <= 6 {
			return MoveStand
		}
		return MoveHit
	case total == 12:
		if dealer >= 4 && dealer <= 6 {
			return MoveStand
		}
		return MoveHit
	case total == 11:
		if canDouble {
			return MoveDouble
		}
		return MoveHit
	case total == 10:
		if canDouble && dealer >= 2 && dealer <= 9 {
			return MoveDouble
		}
		return MoveHit
	case total == 9:
		if canDouble && dealer >= 3 && dealer <= 6 {
			return MoveDouble
		}
		return MoveHit
	default:
		return MoveHit
	}
}
