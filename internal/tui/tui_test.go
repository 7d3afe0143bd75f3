package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/game"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/randutil"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/scheduler"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/strategytrack"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	logger := log.New(io.Discard)
	engine := game.NewEngine(
		game.WithRules(game.Rules{Decks: 1, Bankroll: 100, MinBet: 5, ReshuffleDepth: 4}),
		game.WithRNG(randutil.New(1)),
	)
	sched := scheduler.New(quartz.NewMock(t), time.Second, logger, func(game.Action) {})
	model := NewModel(engine, sched, strategytrack.New(), logger)
	t.Cleanup(sched.Stop)
	return model
}

func press(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressEnter(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModelLobbyToBetting(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	require.Equal(t, game.PhaseLobby, m.State().Phase)
	assert.Contains(t, m.View(), "Bankroll")

	pressEnter(m)
	assert.Equal(t, game.PhaseBetting, m.State().Phase)
}

func TestModelChipKeysStageBets(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	pressEnter(m)

	press(m, '1')
	assert.Equal(t, 5, m.State().CurrentBet)
	assert.Equal(t, 95, m.State().Balance)

	press(m, '2')
	assert.Equal(t, 30, m.State().CurrentBet)

	press(m, 'c')
	assert.Zero(t, m.State().CurrentBet)
	assert.Equal(t, 100, m.State().Balance)
}

func TestModelDealStartsRound(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	pressEnter(m)
	press(m, '1')
	press(m, 'd')

	s := m.State()
	require.Len(t, s.Hands, 1)
	assert.Equal(t, 5, s.Hands[0].Bet)
	assert.NotEqual(t, game.PhaseBetting, s.Phase)
	assert.NotEmpty(t, m.View())
}

func TestModelIgnoresKeysFromOtherPhases(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	// Hit means nothing in the lobby
	press(m, 'h')
	assert.Equal(t, game.PhaseLobby, m.State().Phase)
	assert.Zero(t, m.State().Generation)
}

func TestModelStaleDealerStepIsIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	pressEnter(m)
	gen := m.State().Generation

	m.Update(DealerStepMsg{Action: game.Action{Type: game.DealerHit}})
	assert.Equal(t, gen, m.State().Generation, "dealer steps outside DEALER_TURN must not advance the state")
}

func TestModelRestartKey(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	pressEnter(m)
	press(m, '1')
	press(m, 'R')

	s := m.State()
	assert.Equal(t, game.PhaseLobby, s.Phase)
	assert.Equal(t, 100, s.Balance, "staged chips are not lost across a restart")
}

func TestModelQuit(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
