// Package tui renders the blackjack table and trainer panel. It is a
// consumer of engine state snapshots: keypresses become actions, the
// returned snapshot is what gets drawn, and the dealer scheduler's steps
// arrive as messages.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/game"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/scheduler"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/strategytrack"
)

// Chip denominations offered in the betting phase
var chipValues = [3]int{5, 25, 100}

// DealerStepMsg carries a scheduler-fired dealer action into the model
type DealerStepMsg struct {
	Action game.Action
}

// Model is the Bubble Tea model for the trainer
type Model struct {
	engine  *game.Engine
	sched   *scheduler.DealerScheduler
	tracker *strategytrack.Tracker
	logger  *log.Logger

	state game.State
	keys  KeyMap

	width  int
	height int

	quitting bool

	// Tail of formatted game events for the log pane
	events *eventLog
}

// eventLog collects bus events as display lines
type eventLog struct {
	lines []string
}

const eventLogDepth = 6

// HandleEvent implements game.EventSubscriber
func (l *eventLog) HandleEvent(event game.GameEvent) {
	var line string
	switch ev := event.(type) {
	case game.ShoeShuffledEvent:
		line = fmt.Sprintf("fresh %d-deck shoe", ev.Decks)
	case game.RoundStartEvent:
		line = fmt.Sprintf("dealt: bet %d, dealer shows %s", ev.Bet, ev.UpCard)
	case game.DecisionGradedEvent:
		if ev.Feedback.Correct {
			line = fmt.Sprintf("%s: correct", ev.Feedback.Chosen)
		} else {
			line = fmt.Sprintf("%s: book says %s", ev.Feedback.Chosen, ev.Feedback.Optimal)
		}
	case game.DealerStepEvent:
		switch ev.Step {
		case game.RevealHidden:
			line = fmt.Sprintf("dealer reveals, showing %d", ev.Dealer.Total)
		case game.DealerHit:
			line = fmt.Sprintf("dealer draws to %d", ev.Dealer.Total)
		case game.DealerStand:
			if ev.Dealer.IsBust {
				line = fmt.Sprintf("dealer busts with %d", ev.Dealer.Total)
			} else {
				line = fmt.Sprintf("dealer stands on %d", ev.Dealer.Total)
			}
		}
	case game.RoundSettledEvent:
		parts := make([]string, len(ev.Hands))
		for i, h := range ev.Hands {
			parts[i] = h.Result.String()
		}
		line = fmt.Sprintf("round over: %s", strings.Join(parts, ", "))
	default:
		return
	}
	l.lines = append(l.lines, line)
	if len(l.lines) > eventLogDepth {
		l.lines = l.lines[len(l.lines)-eventLogDepth:]
	}
}

// NewModel creates the TUI model and subscribes its collaborators to the
// engine's event bus.
func NewModel(engine *game.Engine, sched *scheduler.DealerScheduler, tracker *strategytrack.Tracker, logger *log.Logger) *Model {
	events := &eventLog{}
	engine.Bus().Subscribe(events)
	engine.Bus().Subscribe(tracker)

	return &Model{
		engine:  engine,
		sched:   sched,
		tracker: tracker,
		logger:  logger.WithPrefix("tui"),
		state:   engine.NewSession(),
		keys:    DefaultKeyMap(),
		events:  events,
	}
}

// State returns the current snapshot (used by tests)
func (m *Model) State() game.State {
	return m.state
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// apply pushes one action through the engine and re-arms the scheduler
// against whatever snapshot came back.
func (m *Model) apply(action game.Action) {
	next := m.engine.Apply(m.state, action)
	if next.Generation == m.state.Generation {
		return
	}
	m.state = next
	m.sched.Observe(next)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case DealerStepMsg:
		m.apply(msg.Action)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.sched.Stop()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Restart) {
		m.sched.Stop()
		m.apply(game.Action{Type: game.RestartGame})
		return
	}

	switch m.state.Phase {
	case game.PhaseLobby:
		switch {
		case key.Matches(msg, m.keys.Start):
			m.apply(game.Action{Type: game.StartGame})
		case key.Matches(msg, m.keys.ResetBR):
			m.apply(game.Action{Type: game.ResetBankroll})
		}

	case game.PhaseBetting:
		switch {
		case key.Matches(msg, m.keys.ChipSmall):
			m.apply(game.BetAction(chipValues[0]))
		case key.Matches(msg, m.keys.ChipMid):
			m.apply(game.BetAction(chipValues[1]))
		case key.Matches(msg, m.keys.ChipBig):
			m.apply(game.BetAction(chipValues[2]))
		case key.Matches(msg, m.keys.ClearBet):
			m.apply(game.Action{Type: game.ClearBet})
		case key.Matches(msg, m.keys.Rebet):
			m.apply(game.Action{Type: game.RebetAndDeal})
		case key.Matches(msg, m.keys.Deal):
			m.apply(game.Action{Type: game.Deal})
		case key.Matches(msg, m.keys.Lobby):
			m.apply(game.Action{Type: game.BackToLobby})
		}

	case game.PhaseInsurance:
		switch {
		case key.Matches(msg, m.keys.TakeIns):
			m.apply(game.Action{Type: game.TakeInsurance})
		case key.Matches(msg, m.keys.DeclineIns):
			m.apply(game.Action{Type: game.DeclineInsurance})
		}

	case game.PhasePlayerTurn:
		switch {
		case key.Matches(msg, m.keys.Hit):
			m.apply(game.MoveAction(game.MoveHit))
		case key.Matches(msg, m.keys.Stand):
			m.apply(game.MoveAction(game.MoveStand))
		case key.Matches(msg, m.keys.Double):
			m.apply(game.MoveAction(game.MoveDouble))
		case key.Matches(msg, m.keys.Split):
			m.apply(game.MoveAction(game.MoveSplit))
		}

	case game.PhaseResolution:
		switch {
		case key.Matches(msg, m.keys.NewRound):
			m.apply(game.Action{Type: game.NewRound})
		case key.Matches(msg, m.keys.Lobby):
			m.apply(game.Action{Type: game.BackToLobby})
		}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.state
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" ♠ ♥ Blackjack Trainer ♦ ♣ "))
	fmt.Fprintf(&b, "  %s\n\n", InfoStyle.Render(s.Phase.String()))

	if s.Phase == game.PhaseLobby {
		b.WriteString(m.viewLobby())
		return b.String()
	}

	b.WriteString(m.viewTable())
	b.WriteString("\n")
	b.WriteString(m.viewTrainer())
	b.WriteString("\n")
	b.WriteString(m.viewControls())
	return b.String()
}

func (m *Model) viewLobby() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bankroll: %s\n\n", ChipStyle.Render(fmt.Sprintf("%d", m.state.Balance)))
	b.WriteString(InfoStyle.Render("enter: sit down · b: reset bankroll · q: quit"))
	return b.String()
}

func (m *Model) viewTable() string {
	s := m.state
	var b strings.Builder

	b.WriteString(LabelStyle.Render("Dealer"))
	if len(s.Dealer.Cards) > 0 {
		fmt.Fprintf(&b, "  %s", renderCards(s.Dealer.Cards))
		if !s.Dealer.HasHidden() {
			fmt.Fprintf(&b, "  (%s)", totalString(s.Dealer.Value(false)))
		}
	}
	b.WriteString("\n\n")

	for i, h := range s.Hands {
		marker := "  "
		if i == s.ActiveHand {
			marker = ActiveHandStyle.Render("▶ ")
		}
		fmt.Fprintf(&b, "%s%s  (%s)  bet %d", marker, renderCards(h.Cards), totalString(h.Value(false)), h.Bet)
		switch {
		case h.Result != game.ResultNone:
			fmt.Fprintf(&b, "  %s", resultStyle(h.Result).Render(h.Result.String()))
			if h.Payout > 0 {
				fmt.Fprintf(&b, " %s", ChipStyle.Render(fmt.Sprintf("+%d", h.Payout)))
			}
		case h.IsBust:
			fmt.Fprintf(&b, "  %s", ErrorStyle.Render("bust"))
		case h.IsBlackjack:
			fmt.Fprintf(&b, "  %s", SuccessStyle.Render("blackjack!"))
		case h.IsDoubled:
			b.WriteString("  doubled")
		}
		b.WriteString("\n")
	}
	if len(s.Hands) == 0 && s.CurrentBet > 0 {
		fmt.Fprintf(&b, "  staged bet: %s\n", ChipStyle.Render(fmt.Sprintf("%d", s.CurrentBet)))
	}

	fmt.Fprintf(&b, "\nBalance %s", ChipStyle.Render(fmt.Sprintf("%d", s.Balance)))
	fmt.Fprintf(&b, "   Shoe %d cards", s.Shoe.Remaining())
	if s.InsuranceBet > 0 {
		fmt.Fprintf(&b, "   Insurance %d", s.InsuranceBet)
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewTrainer() string {
	s := m.state
	var lines []string

	if s.Feedback != nil {
		if s.Feedback.Correct {
			lines = append(lines, SuccessStyle.Render(fmt.Sprintf("✓ %s was the book play", s.Feedback.Chosen)))
		} else {
			lines = append(lines, ErrorStyle.Render(fmt.Sprintf("✗ %s — book says %s", s.Feedback.Chosen, s.Feedback.Optimal)))
		}
	}
	lines = append(lines, m.tracker.Summary())
	if len(m.events.lines) > 0 {
		lines = append(lines, InfoStyle.Render(strings.Join(m.events.lines, "\n")))
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewControls() string {
	var hints []string
	switch m.state.Phase {
	case game.PhaseBetting:
		hints = []string{"1/2/3: chip 5/25/100", "c: clear", "d: deal", "r: rebet & deal", "l: lobby"}
	case game.PhaseInsurance:
		hints = []string{"y: take insurance", "n: decline"}
	case game.PhasePlayerTurn:
		hints = []string{"h: hit", "s: stand", "d: double", "p: split"}
	case game.PhaseDealerTurn:
		hints = []string{"dealer playing..."}
	case game.PhaseResolution:
		hints = []string{"n: next round", "l: lobby"}
	}
	hints = append(hints, "R: restart", "q: quit")
	return InfoStyle.Render(strings.Join(hints, " · "))
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		switch {
		case c.Hidden:
			parts[i] = CardBackStyle.Render("🂠")
		case c.IsRed():
			parts[i] = RedCardStyle.Render(c.String())
		default:
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

func totalString(v game.HandValue) string {
	if v.IsSoft {
		return fmt.Sprintf("soft %d", v.Total)
	}
	return fmt.Sprintf("%d", v.Total)
}

func resultStyle(r game.Result) lipgloss.Style {
	switch r {
	case game.ResultWin, game.ResultBlackjack:
		return SuccessStyle
	case game.ResultPush:
		return LabelStyle
	default:
		return ErrorStyle
	}
}
