package game

import (
	"time"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStart     EventType = "round_start"
	EventTypeShoeShuffled   EventType = "shoe_shuffled"
	EventTypeDecisionGraded EventType = "decision_graded"
	EventTypeDealerStep     EventType = "dealer_step"
	EventTypeRoundSettled   EventType = "round_settled"
)

// GameEvent represents any event that occurs during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	HandleEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, sub := range bus.subscribers {
		sub.HandleEvent(event)
	}
}

// RoundStartEvent is published when a round is dealt
type RoundStartEvent struct {
	RoundID   string
	Bet       int
	UpCard    deck.Card
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// ShoeShuffledEvent is published when the shoe drops below the minimum
// depth and is replaced before a deal.
type ShoeShuffledEvent struct {
	Decks     int
	timestamp time.Time
}

func (e ShoeShuffledEvent) EventType() EventType { return EventTypeShoeShuffled }
func (e ShoeShuffledEvent) Timestamp() time.Time { return e.timestamp }

// DecisionGradedEvent is published for every graded decision, including
// insurance decisions and rejected-but-graded doubles and splits.
type DecisionGradedEvent struct {
	RoundID   string
	HandIndex int
	Feedback  Feedback
	HandValue HandValue
	WasPair   bool
	timestamp time.Time
}

func (e DecisionGradedEvent) EventType() EventType { return EventTypeDecisionGraded }
func (e DecisionGradedEvent) Timestamp() time.Time { return e.timestamp }

// DealerStepEvent is published for each dealer-turn step
type DealerStepEvent struct {
	RoundID   string
	Step      ActionType
	Dealer    HandValue
	timestamp time.Time
}

func (e DealerStepEvent) EventType() EventType { return EventTypeDealerStep }
func (e DealerStepEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent carries per-hand settlement once a round resolves
type RoundSettledEvent struct {
	RoundID   string
	Hands     []Hand
	Dealer    Hand
	Balance   int
	timestamp time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }
