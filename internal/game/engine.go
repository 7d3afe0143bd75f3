// Package game implements the blackjack round state machine and the
// basic-strategy trainer built around it. The engine is a pure reducer:
// one Action in, a fresh State snapshot out, with illegal inputs returned
// unchanged.
package game

import (
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/randutil"
)

// Rules are the table parameters for a session
type Rules struct {
	Decks          int
	Bankroll       int
	MinBet         int
	ReshuffleDepth int
}

// DefaultRules returns the standard six-deck table
func DefaultRules() Rules {
	return Rules{
		Decks:          deck.DefaultDecks,
		Bankroll:       1000,
		MinBet:         5,
		ReshuffleDepth: deck.MinDepth,
	}
}

// Engine owns the transition logic. It holds no game state itself; the
// caller owns the one current State and feeds it back on every Apply.
// The rng is only touched when a fresh shoe is shuffled.
type Engine struct {
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger
	bus    EventBus
}

// Option configures an Engine
type Option func(*Engine)

// WithRules overrides the default table rules
func WithRules(rules Rules) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithRNG supplies the rng used for shuffles, for deterministic tests
func WithRNG(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger supplies the logger; a nil-safe default discards output
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger.WithPrefix("engine") }
}

// WithEventBus supplies the bus engine events are published on
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// NewEngine creates an engine with the given options
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:  DefaultRules(),
		rng:    randutil.New(time.Now().UnixNano()),
		logger: log.New(io.Discard),
		bus:    NewEventBus(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the table rules the engine was built with
func (e *Engine) Rules() Rules {
	return e.rules
}

// Bus returns the engine's event bus for subscribing
func (e *Engine) Bus() EventBus {
	return e.bus
}

// NewSession creates the lobby state with a full bankroll and a fresh
// shuffled shoe. One session == one State lineage.
func (e *Engine) NewSession() State {
	return State{
		Shoe:       deck.NewShoe(e.rng, e.rules.Decks),
		ActiveHand: NoActiveHand,
		Balance:    e.rules.Bankroll,
		Phase:      PhaseLobby,
	}
}

// Apply performs one transition. Actions that are illegal in the current
// phase, unaffordable, or malformed return the state unchanged; the UI is
// expected to disable them and the engine is the second line of defense.
func (e *Engine) Apply(s State, action Action) State {
	next, applied := e.apply(s, action)
	if !applied {
		e.logger.Debug("Action ignored", "action", action.String(), "phase", s.Phase.String())
		return s
	}
	next.Generation = s.Generation + 1
	e.logger.Debug("Applied action",
		"action", action.String(),
		"phase", next.Phase.String(),
		"balance", next.Balance,
		"generation", next.Generation)
	return next
}

func (e *Engine) apply(s State, action Action) (State, bool) {
	switch action.Type {
	case StartGame:
		return e.startGame(s)
	case ResetBankroll:
		return e.resetBankroll(s)
	case PlaceBet:
		return e.placeBet(s, action.Amount)
	case ClearBet:
		return e.clearBet(s)
	case Deal:
		return e.deal(s)
	case RebetAndDeal:
		return e.rebetAndDeal(s)
	case TakeInsurance:
		return e.takeInsurance(s)
	case DeclineInsurance:
		return e.declineInsurance(s)
	case PlayerMove:
		return e.playerMove(s, action.Move)
	case RevealHidden:
		return e.revealHidden(s)
	case DealerHit:
		return e.dealerHit(s)
	case DealerStand:
		return e.dealerStand(s)
	case NewRound:
		return e.newRound(s)
	case BackToLobby:
		return e.backToLobby(s)
	case RestartGame:
		return e.restartGame(s)
	default:
		return s, false
	}
}

func (e *Engine) startGame(s State) (State, bool) {
	if s.Phase != PhaseLobby {
		return s, false
	}
	next := s.clone()
	next.Phase = PhaseBetting
	next.CurrentBet = 0
	next.Hands = nil
	next.Dealer = Hand{}
	next.ActiveHand = NoActiveHand
	return next, true
}

func (e *Engine) resetBankroll(s State) (State, bool) {
	if s.Phase != PhaseLobby {
		return s, false
	}
	next := s.clone()
	next.Balance = e.rules.Bankroll
	return next, true
}

func (e *Engine) placeBet(s State, amount int) (State, bool) {
	if s.Phase != PhaseBetting || amount <= 0 || s.Balance < amount {
		return s, false
	}
	next := s.clone()
	next.Balance -= amount
	next.CurrentBet += amount
	return next, true
}

func (e *Engine) clearBet(s State) (State, bool) {
	if s.Phase != PhaseBetting || s.CurrentBet == 0 {
		return s, false
	}
	next := s.clone()
	next.Balance += next.CurrentBet
	next.CurrentBet = 0
	return next, true
}

func (e *Engine) deal(s State) (State, bool) {
	if s.Phase != PhaseBetting || s.CurrentBet < e.rules.MinBet {
		return s, false
	}

	next := s.clone()
	next.Phase = PhaseDealing
	next.Feedback = nil
	next.InsuranceBet = 0
	next.RoundID = uuid.NewString()

	// Reshuffle happens here or not at all: never mid-hand.
	shoe := next.Shoe
	if shoe.Remaining() < e.rules.ReshuffleDepth {
		shoe = deck.NewShoe(e.rng, e.rules.Decks)
		e.logger.Info("Shoe reshuffled", "decks", e.rules.Decks, "round", next.RoundID)
		e.bus.Publish(ShoeShuffledEvent{Decks: e.rules.Decks, timestamp: time.Now()})
	}

	var p1, p2, d1, d2 deck.Card
	p1, shoe = shoe.Draw()
	d1, shoe = shoe.Draw()
	p2, shoe = shoe.Draw()
	d2, shoe = shoe.Draw()
	next.Shoe = shoe

	hand := Hand{
		Cards:    []deck.Card{p1, p2},
		Bet:      next.CurrentBet,
		IsActive: true,
	}
	if hand.Value(false).Total == 21 {
		hand.IsBlackjack = true
		hand.IsStand = true
		hand.IsActive = false
	}

	next.Hands = []Hand{hand}
	next.ActiveHand = 0
	next.Dealer = Hand{Cards: []deck.Card{d1, d2.FaceDown()}}
	next.LastBet = next.CurrentBet
	next.CurrentBet = 0

	e.logger.Info("Round dealt",
		"round", next.RoundID,
		"player", hand.String(),
		"dealerUp", d1.String(),
		"bet", hand.Bet)
	e.bus.Publish(RoundStartEvent{RoundID: next.RoundID, Bet: hand.Bet, UpCard: d1, timestamp: time.Now()})

	if d1.IsAce() {
		next.Phase = PhaseInsurance
		return next, true
	}

	// Peek for a dealer natural before any player turn. The hole card
	// stays concealed in the snapshot unless it is a blackjack.
	if next.Dealer.Value(true).Total == 21 {
		return e.resolve(next), true
	}

	if hand.IsBlackjack {
		next.Phase = PhaseDealerTurn
		next.ActiveHand = NoActiveHand
		return next, true
	}

	next.Phase = PhasePlayerTurn
	return next, true
}

func (e *Engine) rebetAndDeal(s State) (State, bool) {
	if s.Phase != PhaseBetting || s.CurrentBet != 0 {
		return s, false
	}
	if s.LastBet < e.rules.MinBet || s.Balance < s.LastBet {
		return s, false
	}
	staged, ok := e.placeBet(s, s.LastBet)
	if !ok {
		return s, false
	}
	return e.deal(staged)
}

func (e *Engine) takeInsurance(s State) (State, bool) {
	if s.Phase != PhaseInsurance || len(s.Hands) != 1 {
		return s, false
	}
	cost := s.Hands[0].Bet / 2
	if s.Balance < cost {
		return s, false
	}

	next := s.clone()
	next.Balance -= cost
	next.InsuranceBet = cost

	// Insurance is never the chart play
	next = e.grade(next, ChoiceTakeInsurance, ChoiceDeclineInsurance)
	return e.settleInsurance(next), true
}

func (e *Engine) declineInsurance(s State) (State, bool) {
	if s.Phase != PhaseInsurance || len(s.Hands) != 1 {
		return s, false
	}
	next := s.clone()
	next = e.grade(next, ChoiceDeclineInsurance, ChoiceDeclineInsurance)
	return e.settleInsurance(next), true
}

// settleInsurance peeks the hole card and routes the round. Dealer
// natural: pay any insurance 2:1 and resolve immediately. No natural: the
// insurance stake is forfeited and play continues.
func (e *Engine) settleInsurance(s State) State {
	if s.Dealer.Value(true).Total == 21 {
		if s.InsuranceBet > 0 {
			s.Balance += s.InsuranceBet * 3
			e.logger.Info("Insurance paid", "round", s.RoundID, "stake", s.InsuranceBet)
		}
		s.InsuranceBet = 0
		return e.resolve(s)
	}

	if s.InsuranceBet > 0 {
		e.logger.Info("Insurance forfeited", "round", s.RoundID, "stake", s.InsuranceBet)
	}
	s.InsuranceBet = 0

	if s.Hands[0].IsBlackjack {
		// Stood natural with no dealer natural: outcome is fixed
		return e.resolve(s)
	}
	s.Phase = PhasePlayerTurn
	return s
}

func (e *Engine) playerMove(s State, move Move) (State, bool) {
	if s.Phase != PhasePlayerTurn {
		return s, false
	}
	active := s.Active()
	if active == nil || active.Played() {
		return s, false
	}

	next := s.clone()
	hand := &next.Hands[next.ActiveHand]

	// Grade before applying. Eligibility flags are shape-based; an
	// unaffordable double or split still counts as a graded decision.
	canSplit := hand.IsPair() && len(next.Hands) < MaxHands
	canDouble := len(hand.Cards) == 2
	optimal := OptimalMove(*hand, next.DealerUpCard(), canSplit, canDouble)
	next = e.grade(next, move.choice(), optimal.choice())
	hand = &next.Hands[next.ActiveHand]

	switch move {
	case MoveHit:
		var card deck.Card
		card, next.Shoe = next.Shoe.Draw()
		hand.Cards = append(hand.Cards, card)
		if hand.Value(false).IsBust {
			hand.IsBust = true
			hand.IsStand = true
		}

	case MoveStand:
		hand.IsStand = true

	case MoveDouble:
		if !canDouble || next.Balance < hand.Bet {
			return next, true // graded no-op
		}
		next.Balance -= hand.Bet
		hand.Bet *= 2
		hand.IsDoubled = true
		var card deck.Card
		card, next.Shoe = next.Shoe.Draw()
		hand.Cards = append(hand.Cards, card)
		if hand.Value(false).IsBust {
			hand.IsBust = true
		}
		hand.IsStand = true

	case MoveSplit:
		if !canSplit || next.Balance < hand.Bet {
			return next, true // graded no-op
		}
		next.Balance -= hand.Bet
		splitAces := hand.Cards[0].IsAce()

		moved := hand.Cards[1]
		var c1, c2 deck.Card
		c1, next.Shoe = next.Shoe.Draw()
		c2, next.Shoe = next.Shoe.Draw()

		hand.Cards = []deck.Card{hand.Cards[0], c1}
		second := Hand{Cards: []deck.Card{moved, c2}, Bet: hand.Bet}

		if splitAces {
			// One card each and done; no hits on split aces
			hand.IsStand = true
			second.IsStand = true
		}

		next.Hands = append(next.Hands, Hand{})
		copy(next.Hands[next.ActiveHand+2:], next.Hands[next.ActiveHand+1:])
		next.Hands[next.ActiveHand+1] = second
		hand = &next.Hands[next.ActiveHand]
	}

	if hand.Played() {
		return e.advanceHand(next), true
	}
	return next, true
}

// advanceHand moves input to the next unplayed hand, or hands the round
// to the dealer when none remain.
func (e *Engine) advanceHand(s State) State {
	s.Hands[s.ActiveHand].IsActive = false
	for i := s.ActiveHand + 1; i < len(s.Hands); i++ {
		if !s.Hands[i].Played() {
			s.ActiveHand = i
			s.Hands[i].IsActive = true
			return s
		}
	}
	s.ActiveHand = NoActiveHand
	s.Phase = PhaseDealerTurn
	return s
}

func (e *Engine) revealHidden(s State) (State, bool) {
	if s.Phase != PhaseDealerTurn || !s.Dealer.HasHidden() {
		return s, false
	}
	next := s.clone()
	for i, c := range next.Dealer.Cards {
		next.Dealer.Cards[i] = c.FaceUp()
	}
	e.bus.Publish(DealerStepEvent{
		RoundID:   next.RoundID,
		Step:      RevealHidden,
		Dealer:    next.Dealer.Value(true),
		timestamp: time.Now(),
	})
	return next, true
}

func (e *Engine) dealerHit(s State) (State, bool) {
	if s.Phase != PhaseDealerTurn || s.Dealer.HasHidden() || s.Dealer.IsStand {
		return s, false
	}
	next := s.clone()
	var card deck.Card
	card, next.Shoe = next.Shoe.Draw()
	next.Dealer.Cards = append(next.Dealer.Cards, card)
	e.bus.Publish(DealerStepEvent{
		RoundID:   next.RoundID,
		Step:      DealerHit,
		Dealer:    next.Dealer.Value(true),
		timestamp: time.Now(),
	})
	return next, true
}

func (e *Engine) dealerStand(s State) (State, bool) {
	if s.Phase != PhaseDealerTurn || s.Dealer.HasHidden() || s.Dealer.IsStand {
		return s, false
	}
	next := s.clone()
	e.bus.Publish(DealerStepEvent{
		RoundID:   next.RoundID,
		Step:      DealerStand,
		Dealer:    next.Dealer.Value(true),
		timestamp: time.Now(),
	})
	return e.resolve(next), true
}

// resolve settles every hand against the dealer's final total and credits
// the balance in one step. It is reached from DEALER_STAND, from the
// dealer-natural peek shortcuts, and from the stood-natural insurance
// path.
func (e *Engine) resolve(s State) State {
	for i, c := range s.Dealer.Cards {
		s.Dealer.Cards[i] = c.FaceUp()
	}
	value := s.Dealer.Value(true)
	s.Dealer.IsStand = true
	s.Dealer.IsBust = value.IsBust
	dealerNatural := len(s.Dealer.Cards) == 2 && value.Total == 21
	s.Dealer.IsBlackjack = dealerNatural

	credit := 0
	for i := range s.Hands {
		hand := &s.Hands[i]
		hand.IsActive = false

		switch {
		case hand.IsBust:
			hand.Result = ResultLoss
			hand.Payout = 0
		case hand.IsBlackjack && dealerNatural:
			hand.Result = ResultPush
			hand.Payout = hand.Bet
		case hand.IsBlackjack:
			// Naturals pay 3:2
			hand.Result = ResultBlackjack
			hand.Payout = hand.Bet + hand.Bet*3/2
		case dealerNatural:
			hand.Result = ResultDealerBlackjack
			hand.Payout = 0
		case s.Dealer.IsBust:
			hand.Result = ResultWin
			hand.Payout = hand.Bet * 2
		default:
			playerTotal := hand.Value(false).Total
			switch {
			case playerTotal > value.Total:
				hand.Result = ResultWin
				hand.Payout = hand.Bet * 2
			case playerTotal == value.Total:
				hand.Result = ResultPush
				hand.Payout = hand.Bet
			default:
				hand.Result = ResultLoss
				hand.Payout = 0
			}
		}
		credit += hand.Payout
	}

	s.Balance += credit
	s.ActiveHand = NoActiveHand
	s.Phase = PhaseResolution

	e.logger.Info("Round settled",
		"round", s.RoundID,
		"dealer", s.Dealer.String(),
		"dealerTotal", value.Total,
		"credit", credit,
		"balance", s.Balance)
	e.bus.Publish(RoundSettledEvent{
		RoundID:   s.RoundID,
		Hands:     s.Hands,
		Dealer:    s.Dealer,
		Balance:   s.Balance,
		timestamp: time.Now(),
	})
	return s
}

func (e *Engine) newRound(s State) (State, bool) {
	if s.Phase != PhaseResolution {
		return s, false
	}
	next := s.clone()
	next.Hands = nil
	next.Dealer = Hand{}
	next.ActiveHand = NoActiveHand
	next.CurrentBet = 0
	next.InsuranceBet = 0
	next.Feedback = nil
	next.RoundID = ""
	next.Phase = PhaseBetting
	return next, true
}

func (e *Engine) backToLobby(s State) (State, bool) {
	if s.Phase != PhaseBetting && s.Phase != PhaseResolution {
		return s, false
	}
	next := s.clone()
	next.Balance += next.CurrentBet // staged money returns on exit
	next.CurrentBet = 0
	next.Hands = nil
	next.Dealer = Hand{}
	next.ActiveHand = NoActiveHand
	next.InsuranceBet = 0
	next.Feedback = nil
	next.RoundID = ""
	next.Phase = PhaseLobby
	return next, true
}

func (e *Engine) restartGame(s State) (State, bool) {
	next := e.NewSession()
	next.Generation = s.Generation // Apply bumps it
	return next, true
}

// grade records feedback and bumps the session counters
func (e *Engine) grade(s State, chosen, optimal Choice) State {
	correct := chosen == optimal
	s.Stats.Decisions++
	if correct {
		s.Stats.Correct++
	}
	s.Feedback = &Feedback{Correct: correct, Chosen: chosen, Optimal: optimal}

	var handValue HandValue
	wasPair := false
	if active := s.Active(); active != nil {
		handValue = active.Value(false)
		wasPair = active.IsPair()
	}
	e.logger.Debug("Decision graded",
		"round", s.RoundID,
		"chosen", chosen.String(),
		"optimal", optimal.String(),
		"correct", correct)
	e.bus.Publish(DecisionGradedEvent{
		RoundID:   s.RoundID,
		HandIndex: s.ActiveHand,
		Feedback:  *s.Feedback,
		HandValue: handValue,
		WasPair:   wasPair,
		timestamp: time.Now(),
	})
	return s
}
