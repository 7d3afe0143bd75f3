// Package strategytrack accumulates basic-strategy accuracy for a
// session, broken down by decision category, so the trainer panel can
// show where the player's chart knowledge is weakest.
package strategytrack

import (
	"fmt"
	"strings"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/game"
)

// Category buckets a graded decision by the kind of chart row it came from
type Category int

const (
	Hard Category = iota
	Soft
	Pair
	Insurance
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	case Insurance:
		return "insurance"
	default:
		return "unknown"
	}
}

var allCategories = []Category{Hard, Soft, Pair, Insurance}

type counts struct {
	Decisions int
	Correct   int
}

func (c counts) accuracy() float64 {
	if c.Decisions == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Decisions)
}

// Tracker accumulates grading results. It is driven from the single
// goroutine that applies engine actions, so it carries no locking.
type Tracker struct {
	total      counts
	byCategory map[Category]counts

	currentStreak int
	bestStreak    int
}

// New creates an empty tracker
func New() *Tracker {
	return &Tracker{byCategory: make(map[Category]counts)}
}

// HandleEvent implements game.EventSubscriber; only graded decisions are
// of interest.
func (t *Tracker) HandleEvent(event game.GameEvent) {
	graded, ok := event.(game.DecisionGradedEvent)
	if !ok {
		return
	}
	t.Record(categorize(graded), graded.Feedback.Correct)
}

// Record adds one graded decision
func (t *Tracker) Record(cat Category, correct bool) {
	t.total.Decisions++
	c := t.byCategory[cat]
	c.Decisions++
	if correct {
		t.total.Correct++
		c.Correct++
		t.currentStreak++
		if t.currentStreak > t.bestStreak {
			t.bestStreak = t.currentStreak
		}
	} else {
		t.currentStreak = 0
	}
	t.byCategory[cat] = c
}

// Decisions returns the total graded decision count
func (t *Tracker) Decisions() int {
	return t.total.Decisions
}

// Correct returns how many decisions matched the chart
func (t *Tracker) Correct() int {
	return t.total.Correct
}

// Accuracy returns the overall hit rate, 0 before any decision
func (t *Tracker) Accuracy() float64 {
	return t.total.accuracy()
}

// CategoryAccuracy returns decisions and hit rate for one category
func (t *Tracker) CategoryAccuracy(cat Category) (decisions int, accuracy float64) {
	c := t.byCategory[cat]
	return c.Decisions, c.accuracy()
}

// Streak returns the current run of correct decisions
func (t *Tracker) Streak() int {
	return t.currentStreak
}

// BestStreak returns the longest run of correct decisions this session
func (t *Tracker) BestStreak() int {
	return t.bestStreak
}

// Summary renders a one-line-per-category report for the trainer panel
func (t *Tracker) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "overall %d/%d (%.0f%%)", t.total.Correct, t.total.Decisions, t.total.accuracy()*100)
	for _, cat := range allCategories {
		c := t.byCategory[cat]
		if c.Decisions == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %d/%d (%.0f%%)", cat, c.Correct, c.Decisions, c.accuracy()*100)
	}
	if t.bestStreak > 0 {
		fmt.Fprintf(&b, "\nstreak %d (best %d)", t.currentStreak, t.bestStreak)
	}
	return b.String()
}

func categorize(e game.DecisionGradedEvent) Category {
	switch {
	case e.Feedback.Chosen == game.ChoiceTakeInsurance || e.Feedback.Chosen == game.ChoiceDeclineInsurance:
		return Insurance
	case e.WasPair:
		return Pair
	case e.HandValue.IsSoft:
		return Soft
	default:
		return Hard
	}
}
