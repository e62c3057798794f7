package engine

type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionBet   ActionKind = "bet"
	ActionRaise ActionKind = "raise"
)

// Action is one committed entry in a street's log. Amount carries the seat's
// total chips in for this street, not a delta: bets and raises store the new
// to-amount, calls store the matched amount. System marks forced blind and
// straddle posts plus auto-folds of inactive seats; those never count as a
// voluntary act for round-closure purposes.
type Action struct {
	Position string     `json:"position"`
	Kind     ActionKind `json:"kind"`
	Amount   int64      `json:"amount,omitempty"`
	System   bool       `json:"system,omitempty"`
}

func validKind(k ActionKind) bool {
	switch k {
	case ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise:
		return true
	}
	return false
}
