package game

import "fmt"

// Move is a player decision on the active hand
type Move int

const (
	MoveHit Move = iota
	MoveStand
	MoveDouble
	MoveSplit
)

// String returns the string representation of a move
func (m Move) String() string {
	switch m {
	case MoveHit:
		return "hit"
	case MoveStand:
		return "stand"
	case MoveDouble:
		return "double"
	case MoveSplit:
		return "split"
	default:
		return "unknown"
	}
}

// Choice is the vocabulary graded decisions are reported in. It covers
// the four moves plus the insurance decisions, which are graded too.
type Choice int

const (
	ChoiceHit Choice = iota
	ChoiceStand
	ChoiceDouble
	ChoiceSplit
	ChoiceTakeInsurance
	ChoiceDeclineInsurance
)

// String returns the string representation of a choice
func (c Choice) String() string {
	switch c {
	case ChoiceHit:
		return "hit"
	case ChoiceStand:
		return "stand"
	case ChoiceDouble:
		return "double"
	case ChoiceSplit:
		return "split"
	case ChoiceTakeInsurance:
		return "take insurance"
	case ChoiceDeclineInsurance:
		return "decline insurance"
	default:
		return "unknown"
	}
}

// choice converts a move into grading vocabulary
func (m Move) choice() Choice {
	switch m {
	case MoveHit:
		return ChoiceHit
	case MoveStand:
		return ChoiceStand
	case MoveDouble:
		return ChoiceDouble
	default:
		return ChoiceSplit
	}
}

// ActionType tags the closed action vocabulary the engine accepts
type ActionType int

const (
	StartGame ActionType = iota
	ResetBankroll
	PlaceBet
	ClearBet
	Deal
	RebetAndDeal
	TakeInsurance
	DeclineInsurance
	PlayerMove
	RevealHidden
	DealerHit
	DealerStand
	NewRound
	BackToLobby
	RestartGame
)

// Action is one discrete input to the state machine. Amount is only
// meaningful for PlaceBet, Move only for PlayerMove.
type Action struct {
	Type   ActionType
	Amount int
	Move   Move
}

// String returns a loggable form of the action
func (a Action) String() string {
	switch a.Type {
	case StartGame:
		return "start game"
	case ResetBankroll:
		return "reset bankroll"
	case PlaceBet:
		return fmt.Sprintf("place bet %d", a.Amount)
	case ClearBet:
		return "clear bet"
	case Deal:
		return "deal"
	case RebetAndDeal:
		return "rebet and deal"
	case TakeInsurance:
		return "take insurance"
	case DeclineInsurance:
		return "decline insurance"
	case PlayerMove:
		return a.Move.String()
	case RevealHidden:
		return "reveal hidden"
	case DealerHit:
		return "dealer hit"
	case DealerStand:
		return "dealer stand"
	case NewRound:
		return "new round"
	case BackToLobby:
		return "back to lobby"
	case RestartGame:
		return "restart game"
	default:
		return "unknown"
	}
}

// BetAction stages amount onto the table
func BetAction(amount int) Action {
	return Action{Type: PlaceBet, Amount: amount}
}

// MoveAction plays a move on the active hand
func MoveAction(m Move) Action {
	return Action{Type: PlayerMove, Move: m}
}
