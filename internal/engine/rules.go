package engine

// AmountToCall is the chips a seat still owes to match the street's high bet.
// Preflop the high bet is seeded by the forced blind and straddle posts in
// the log, so the big blind (or a larger straddle) falls out naturally.
func AmountToCall(s *StreetState, pos string) int64 {
	need := s.HighBet - s.Contribs[pos]
	if need < 0 {
		return 0
	}
	return need
}

// MinBetOrRaiseTo is the minimum legal to-amount for a bet or raise by the
// seat: one big blind unopened, otherwise the high bet plus the larger of the
// last raise increment and the big blind. A short all-in is always permitted,
// so the result is capped at the seat's total chips for the street.
func MinBetOrRaiseTo(s *StreetState, pos string, remaining, bigBlind int64) int64 {
	max := s.Contribs[pos] + remaining
	var min int64
	if s.HighBet == 0 {
		min = bigBlind
	} else {
		delta := s.LastRaiseDelta
		if delta < bigBlind {
			delta = bigBlind
		}
		min = s.HighBet + delta
	}
	if min > max {
		min = max
	}
	return min
}

// LegalActions computes the legal action set for a seat given its remaining
// stack. Fold is always legal; the rest follow the amount-to-call.
func LegalActions(s *StreetState, pos string, remaining int64) []ActionKind {
	out := []ActionKind{ActionFold}
	need := AmountToCall(s, pos)
	if need == 0 {
		out = append(out, ActionCheck)
		if remaining > 0 {
			out = append(out, ActionBet)
		}
		return out
	}
	if remaining >= need {
		out = append(out, ActionCall)
	}
	if remaining > need {
		out = append(out, ActionRaise)
	}
	return out
}
