package engine

// SeatSnapshot is one seat's externally visible state.
type SeatSnapshot struct {
	Position  string   `json:"position"`
	Hero      bool     `json:"hero"`
	Active    bool     `json:"active"`
	Folded    bool     `json:"folded"`
	Stack     int64    `json:"stack"`
	Committed int64    `json:"committed"`
	Cards     []string `json:"cards,omitempty"`
}

// Snapshot is the immutable engine output recomputed after every mutation.
// The UI layer renders snapshots; it never reaches into engine internals.
type Snapshot struct {
	Street       Street         `json:"street"`
	Phase        Phase          `json:"phase"`
	PendingActor string         `json:"pending_actor,omitempty"`
	LegalActions []ActionKind   `json:"legal_actions,omitempty"`
	CallAmount   int64          `json:"call_amount"`
	MinRaiseTo   int64          `json:"min_raise_to"`
	Pot          int64          `json:"pot"`
	WaitingFor   Street         `json:"waiting_for_street,omitempty"`
	Board        []string       `json:"board"`
	Seats        []SeatSnapshot `json:"seats"`
	HandComplete bool           `json:"hand_complete"`
}

// Snapshot captures the engine's current derived state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Street:       e.street,
		Phase:        e.phase,
		PendingActor: e.pending,
		WaitingFor:   e.waitingFor,
		Pot:          e.Pot(),
		HandComplete: e.phase == PhaseHandComplete,
		Board:        []string{},
	}
	for _, street := range []Street{StreetFlop, StreetTurn, StreetRiver} {
		snap.Board = append(snap.Board, cardStrings(e.board[street])...)
	}

	st := e.currentState()
	if e.pending != "" {
		remaining := e.Remaining(e.pending)
		snap.LegalActions = LegalActions(st, e.pending, remaining)
		snap.CallAmount = AmountToCall(st, e.pending)
		snap.MinRaiseTo = MinBetOrRaiseTo(st, e.pending, remaining, e.cfg.BigBlind)
	}

	folded := make(map[string]bool)
	for _, street := range Streets {
		for _, a := range e.logs[street] {
			if a.Kind == ActionFold {
				folded[a.Position] = true
			}
		}
	}
	for _, s := range e.seats {
		snap.Seats = append(snap.Seats, SeatSnapshot{
			Position:  s.Position,
			Hero:      s.Position == e.cfg.HeroPosition,
			Active:    s.Active,
			Folded:    folded[s.Position],
			Stack:     s.Stack,
			Committed: e.Committed(s.Position),
			Cards:     cardStrings(s.Cards),
		})
	}
	return snap
}
