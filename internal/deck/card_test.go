package deck

import (
	"testing"
)

func TestRankValues(t *testing.T) {
	t.Parallel()
	cases := []struct {
		rank Rank
		want int
	}{
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
		{Ace, 11},
	}
	for _, tc := range cases {
		if got := tc.rank.Value(); got != tc.want {
			t.Errorf("%s.Value() = %d, want %d", tc.rank, got, tc.want)
		}
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()
	card := NewCard(Spades, Ace)
	if card.String() != "A♠" {
		t.Errorf("expected A♠, got %s", card.String())
	}

	hidden := card.FaceDown()
	if hidden.String() != "??" {
		t.Errorf("hidden card should render as a back, got %s", hidden.String())
	}
	if !hidden.Hidden {
		t.Error("FaceDown should set the Hidden flag")
	}
	if hidden.FaceUp().Hidden {
		t.Error("FaceUp should clear the Hidden flag")
	}
	// FaceDown returns a copy
	if card.Hidden {
		t.Error("FaceDown mutated the original card")
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		suit Suit
		rank Rank
	}{
		{"As", Spades, Ace},
		{"10h", Hearts, Ten},
		{"Th", Hearts, Ten},
		{"K♦", Diamonds, King},
		{"2c", Clubs, Two},
	}
	for _, tc := range cases {
		card, err := ParseCard(tc.in)
		if err != nil {
			t.Fatalf("ParseCard(%q) failed: %v", tc.in, err)
		}
		if card.Suit != tc.suit || card.Rank != tc.rank {
			t.Errorf("ParseCard(%q) = %s, want %s%s", tc.in, card, tc.rank, tc.suit)
		}
	}

	for _, bad := range []string{"", "A", "1s", "Ax", "11h"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestCardIDsAreUnique(t *testing.T) {
	t.Parallel()
	a := NewCard(Spades, Ace)
	b := NewCard(Spades, Ace)
	if a.ID == b.ID {
		t.Error("two cards should never share an ID")
	}
}
