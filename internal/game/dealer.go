package game

// NextDealerStep inspects a DEALER_TURN snapshot and returns the single
// action a scheduler should dispatch next: reveal the hole card first,
// then hit while the dealer is under hard 17 or on soft 17, then stand.
//
// When every player hand has already busted the dealer reveals and stands
// without drawing; the round is decided and drawing would only burn the
// shoe.
func NextDealerStep(s State) (Action, bool) {
	if s.Phase != PhaseDealerTurn {
		return Action{}, false
	}

	if s.Dealer.HasHidden() {
		return Action{Type: RevealHidden}, true
	}

	if s.Dealer.IsStand {
		return Action{}, false
	}

	value := s.Dealer.Value(true)
	if !s.allHandsBust() && !value.IsBust && (value.Total < 17 || (value.Total == 17 && value.IsSoft)) {
		return Action{Type: DealerHit}, true
	}
	return Action{Type: DealerStand}, true
}

func (s State) allHandsBust() bool {
	for _, h := range s.Hands {
		if !h.IsBust {
			return false
		}
	}
	return len(s.Hands) > 0
}
