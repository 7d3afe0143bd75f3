package game

import (
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
)

// Phase is the round state machine's position
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseBetting
	PhaseDealing
	PhaseInsurance
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseResolution
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhaseInsurance:
		return "insurance"
	case PhasePlayerTurn:
		return "player turn"
	case PhaseDealerTurn:
		return "dealer turn"
	case PhaseResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// NoActiveHand is the ActiveHand sentinel when no player hand is
// accepting actions.
const NoActiveHand = -1

// MaxHands caps how far a round can split
const MaxHands = 4

// Stats are the cumulative session grading counters
type Stats struct {
	Decisions int
	Correct   int
}

// Accuracy returns the fraction of graded decisions that matched the
// chart, or 0 before any decision.
func (s Stats) Accuracy() float64 {
	if s.Decisions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Decisions)
}

// Feedback is the grading of the most recent decision
type Feedback struct {
	Correct bool
	Chosen  Choice
	Optimal Choice
}

// State is the complete game snapshot. Transitions construct a new State
// rather than mutating in place, so callers may hold onto old snapshots
// (the scheduler keys its timers to them).
type State struct {
	Shoe         deck.Shoe
	Hands        []Hand
	ActiveHand   int
	Dealer       Hand
	Balance      int
	CurrentBet   int
	LastBet      int
	InsuranceBet int
	Phase        Phase
	Stats        Stats
	Feedback     *Feedback

	// RoundID tags log lines and events for the round in flight
	RoundID string

	// Generation increments on every applied (non no-op) transition;
	// the scheduler uses it to detect stale timers.
	Generation uint64
}

// Active returns the hand currently receiving input, or nil
func (s State) Active() *Hand {
	if s.ActiveHand < 0 || s.ActiveHand >= len(s.Hands) {
		return nil
	}
	return &s.Hands[s.ActiveHand]
}

// DealerUpCard returns the dealer's visible up-card. Only meaningful once
// a round has been dealt.
func (s State) DealerUpCard() deck.Card {
	if len(s.Dealer.Cards) == 0 {
		return deck.Card{}
	}
	return s.Dealer.Cards[0]
}

// Committed is the money staged or riding on unresolved hands. Together
// with Balance it is conserved between explicit bets and resolution
// credits; the conservation tests lean on this.
func (s State) Committed() int {
	total := s.CurrentBet + s.InsuranceBet
	for _, h := range s.Hands {
		if h.Result == ResultNone {
			total += h.Bet
		}
	}
	return total
}

// clone deep-copies the snapshot (hands and their card slices; the shoe
// already has value semantics).
func (s State) clone() State {
	out := s
	out.Hands = make([]Hand, len(s.Hands))
	for i, h := range s.Hands {
		out.Hands[i] = h.clone()
	}
	out.Dealer = s.Dealer.clone()
	if s.Feedback != nil {
		fb := *s.Feedback
		out.Feedback = &fb
	}
	return out
}
