package engine

// StreetState is the betting state of a single street, derived from that
// street's action log. It is never persisted and never mutated in place by
// callers: Rebuild replays a log against a fresh state, so the log is the
// only source of truth and the queue can't drift out of sync with it.
type StreetState struct {
	// Started is the seat order the street opened with, fixed for the street.
	Started []string
	// queue rotates as seats act; folded seats drop out of it.
	queue []string
	// Live is the subset of Started still in the hand this street.
	Live []string
	// HighBet is the current total amount to match.
	HighBet int64
	// LastRaiseDelta is the size of the most recent bet or raise increment,
	// used for the minimum-raise rule.
	LastRaiseDelta int64
	// Contribs maps seat position to chips committed this street.
	Contribs map[string]int64
	// acted holds seats that have acted voluntarily since the last reopen.
	acted map[string]bool
}

// NewStreetState seeds a street with the seats that start it, in acting order.
func NewStreetState(order []string) *StreetState {
	s := &StreetState{
		Started:  append([]string{}, order...),
		queue:    append([]string{}, order...),
		Live:     append([]string{}, order...),
		Contribs: make(map[string]int64, len(order)),
		acted:    make(map[string]bool, len(order)),
	}
	return s
}

// Rebuild replays a full street log in order against a fresh state. Pure:
// same log and seed order always yield the same state.
func Rebuild(order []string, log []Action) *StreetState {
	s := NewStreetState(order)
	for _, a := range log {
		s.Apply(a)
	}
	return s
}

// Apply folds one committed action into the street state.
func (s *StreetState) Apply(a Action) {
	switch a.Kind {
	case ActionFold:
		s.removeLive(a.Position)
		s.removeQueued(a.Position)
		delete(s.acted, a.Position)
		return
	case ActionCheck:
		// no chips move
	case ActionCall:
		if a.Amount > s.Contribs[a.Position] {
			s.Contribs[a.Position] = a.Amount
		}
	case ActionBet, ActionRaise:
		if a.Amount > s.HighBet {
			// The round reopens: everyone else must act again.
			s.LastRaiseDelta = a.Amount - s.HighBet
			s.HighBet = a.Amount
			s.acted = make(map[string]bool, len(s.Started))
		}
		if a.Amount > s.Contribs[a.Position] {
			s.Contribs[a.Position] = a.Amount
		}
	}
	if !a.System {
		s.acted[a.Position] = true
	}
	s.rotateToBack(a.Position)
}

// Complete reports whether the betting round is closed: one or zero seats
// left, or every live seat has voluntarily acted and matched the high bet.
func (s *StreetState) Complete() bool {
	if len(s.Live) <= 1 {
		return true
	}
	for _, pos := range s.Live {
		if !s.acted[pos] {
			return false
		}
		if s.Contribs[pos] != s.HighBet {
			return false
		}
	}
	return true
}

// Next returns the seat that must act, scanning the rotating queue from the
// front. Seats that already match the high bet and have acted are rotated to
// the back rather than removed, preserving order for a reopened round.
// Returns false once the round is complete.
func (s *StreetState) Next() (string, bool) {
	if s.Complete() {
		return "", false
	}
	for i := 0; i < len(s.queue); i++ {
		head := s.queue[0]
		if !s.isLive(head) {
			s.queue = s.queue[1:]
			continue
		}
		if s.Contribs[head] == s.HighBet && s.acted[head] {
			s.rotateToBack(head)
			continue
		}
		return head, true
	}
	return "", false
}

// Acted reports whether a seat has acted voluntarily since the last reopen.
func (s *StreetState) Acted(pos string) bool { return s.acted[pos] }

func (s *StreetState) isLive(pos string) bool {
	for _, p := range s.Live {
		if p == pos {
			return true
		}
	}
	return false
}

func (s *StreetState) removeLive(pos string) {
	out := s.Live[:0]
	for _, p := range s.Live {
		if p != pos {
			out = append(out, p)
		}
	}
	s.Live = out
}

func (s *StreetState) removeQueued(pos string) {
	out := s.queue[:0]
	for _, p := range s.queue {
		if p != pos {
			out = append(out, p)
		}
	}
	s.queue = out
}

func (s *StreetState) rotateToBack(pos string) {
	s.removeQueued(pos)
	s.queue = append(s.queue, pos)
}
