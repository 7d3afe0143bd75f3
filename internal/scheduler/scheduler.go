// Package scheduler paces the dealer's turn. The engine only moves when
// an action is dispatched into it; during DEALER_TURN those actions come
// from here, one per tick, so the reveal and each draw land on screen as
// discrete beats.
package scheduler

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/game"
)

// DefaultStepDelay is the pause before a reveal or stand; hits take half
// again as long so the draw reads as its own beat.
const DefaultStepDelay = time.Second

// Dispatcher receives the scheduled dealer action. It runs on the clock's
// timer goroutine; implementations forward into whatever loop owns the
// game state.
type Dispatcher func(game.Action)

// DealerScheduler watches state snapshots and schedules the next dealer
// step. At most one timer is ever pending: every Observe supersedes the
// previous one, and a superseded timer that has already fired is dropped
// by a generation check before it can dispatch a stale action.
type DealerScheduler struct {
	clock    quartz.Clock
	delay    time.Duration
	logger   *log.Logger
	dispatch Dispatcher

	mu    sync.Mutex
	gen   uint64
	timer *quartz.Timer
}

// New creates a scheduler. delay is the base step delay; pass
// DefaultStepDelay unless configured otherwise.
func New(clock quartz.Clock, delay time.Duration, logger *log.Logger, dispatch Dispatcher) *DealerScheduler {
	return &DealerScheduler{
		clock:    clock,
		delay:    delay,
		logger:   logger.WithPrefix("scheduler"),
		dispatch: dispatch,
	}
}

// Observe inspects the latest snapshot, cancels any pending timer, and
// arms a new one when the snapshot is mid dealer turn. Call it after
// every applied transition.
func (s *DealerScheduler) Observe(state game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	action, ok := game.NextDealerStep(state)
	if !ok {
		return
	}

	gen := s.gen
	delay := s.delay
	if action.Type == game.DealerHit {
		delay += s.delay / 2
	}

	s.logger.Debug("Scheduling dealer step",
		"step", action.String(),
		"delay", delay,
		"generation", gen)

	s.timer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		stale := gen != s.gen
		s.mu.Unlock()
		if stale {
			s.logger.Debug("Dropping superseded dealer step", "step", action.String(), "generation", gen)
			return
		}
		s.dispatch(action)
	})
}

// Stop cancels any pending step, e.g. when the round is aborted
func (s *DealerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
