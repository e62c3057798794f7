package engine

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Street string

const (
	StreetPreflop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

var Streets = []Street{StreetPreflop, StreetFlop, StreetTurn, StreetRiver}

func nextStreet(s Street) (Street, bool) {
	for i, st := range Streets {
		if st == s && i+1 < len(Streets) {
			return Streets[i+1], true
		}
	}
	return "", false
}

// BoardCardsNeeded is how many board cards a street deals.
func BoardCardsNeeded(s Street) int {
	switch s {
	case StreetFlop:
		return 3
	case StreetTurn, StreetRiver:
		return 1
	}
	return 0
}

type Phase string

const (
	PhaseAwaitingAction Phase = "awaiting_action"
	PhaseAwaitingCards  Phase = "awaiting_cards"
	PhaseHandComplete   Phase = "hand_complete"
)

// Engine is the single-hand betting-action tracker. The per-street action
// logs are the only mutable truth; street queues, the pending actor, street
// advancement, and the snapshot are all re-derived from the logs and boards
// after every mutation, so queue state can never drift from the log.
//
// The engine is not safe for concurrent use; callers serialize access
// (the session service holds a per-session lock).
type Engine struct {
	cfg   Config
	seats []*Seat
	logs  map[Street][]Action
	board map[Street][]Card
	used  map[Card]string // card -> owning position or "board"

	street     Street
	phase      Phase
	pending    string
	waitingFor Street

	// posting guards blind posting against re-entry while a reset is
	// already in flight.
	posting bool

	log zerolog.Logger
}

// New builds an engine for a hand configuration, posts the forced blinds
// (and straddle, when configured), and resolves the first actor.
func New(cfg Config) (*Engine, error) {
	e := &Engine{log: log.With().Str("component", "engine").Logger()}
	if err := e.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// Reconfigure swaps in a new hand configuration. Seat identities change with
// the table layout, so every street's log, the boards, and the card registry
// reset; blinds re-post and the first actor re-resolves.
func (e *Engine) Reconfigure(cfg Config) error {
	if AvailablePositions(cfg.TableSize) == nil {
		return ErrBadConfig
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= 0 {
		return ErrBadConfig
	}
	if !hasPosition(cfg.TableSize, cfg.HeroPosition) {
		return ErrBadConfig
	}
	e.cfg = cfg
	e.seats = buildSeats(cfg)
	e.logs = make(map[Street][]Action, len(Streets))
	e.board = make(map[Street][]Card, len(Streets))
	e.used = make(map[Card]string)
	e.postBlinds()
	e.resolve()
	return nil
}

func (e *Engine) postBlinds() {
	if e.posting {
		e.log.Warn().Msg("blind post re-entered, skipping")
		return
	}
	e.posting = true
	defer func() { e.posting = false }()

	pre := []Action{
		{Position: PosSB, Kind: ActionBet, Amount: e.cfg.SmallBlind, System: true},
		{Position: PosBB, Kind: ActionBet, Amount: e.cfg.BigBlind, System: true},
	}
	if e.cfg.straddleOn() {
		pre = append(pre, Action{
			Position: StraddlePosition(e.cfg.TableSize),
			Kind:     ActionRaise,
			Amount:   e.cfg.Straddle,
			System:   true,
		})
	}
	e.logs[StreetPreflop] = pre
}

func (e *Engine) Config() Config { return e.cfg }

// Seat returns the seat at a position, or nil.
func (e *Engine) Seat(pos string) *Seat {
	for _, s := range e.seats {
		if s.Position == pos {
			return s
		}
	}
	return nil
}

// Seats returns the seat list in table order (small blind first).
func (e *Engine) Seats() []*Seat { return e.seats }

// Log returns one street's committed action log.
func (e *Engine) Log(street Street) []Action { return e.logs[street] }

// Board returns the board cards entered for a street.
func (e *Engine) Board(street Street) []Card { return e.board[street] }

// SetSeatActive toggles whether a seat participates in the hand. Activating a
// seat that the resolver already auto-folded on the current street withdraws
// that forced fold from the log so the seat gets its turn back.
func (e *Engine) SetSeatActive(pos string, active bool) error {
	seat := e.Seat(pos)
	if seat == nil {
		return ErrUnknownSeat
	}
	seat.Active = active
	if active {
		e.logs[e.street] = withoutSystemFold(e.logs[e.street], pos)
	}
	e.resolve()
	return nil
}

func withoutSystemFold(log []Action, pos string) []Action {
	out := log[:0]
	for _, a := range log {
		if a.System && a.Kind == ActionFold && a.Position == pos {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SetSeatStack overrides one seat's starting stack.
func (e *Engine) SetSeatStack(pos string, stack int64) error {
	seat := e.Seat(pos)
	if seat == nil {
		return ErrUnknownSeat
	}
	if stack < 0 {
		return ErrBadAmount
	}
	seat.Stack = stack
	e.resolve()
	return nil
}

// SetSeatCards assigns hole cards to a seat. A card already held elsewhere is
// evicted from its prior seat; board cards are never evicted.
func (e *Engine) SetSeatCards(pos string, cards []Card) error {
	seat := e.Seat(pos)
	if seat == nil {
		return ErrUnknownSeat
	}
	if len(cards) > 2 {
		return ErrBadCard
	}
	for _, c := range cards {
		if e.used[c] == "board" {
			return ErrCardInUse
		}
	}
	for _, c := range seat.Cards {
		delete(e.used, c)
	}
	seat.Cards = nil
	for _, c := range cards {
		if owner, ok := e.used[c]; ok && owner != pos {
			e.evictSeatCard(owner, c)
		}
		e.used[c] = pos
		seat.Cards = append(seat.Cards, c)
	}
	return nil
}

func (e *Engine) evictSeatCard(owner string, c Card) {
	prev := e.Seat(owner)
	if prev == nil {
		return
	}
	out := prev.Cards[:0]
	for _, pc := range prev.Cards {
		if pc != c {
			out = append(out, pc)
		}
	}
	prev.Cards = out
	delete(e.used, c)
}

// SetBoard enters one street's board cards (flop 3, turn 1, river 1). If the
// resolver was waiting on exactly these cards it picks back up; cards entered
// ahead of betting completion simply sit until the streets catch up.
func (e *Engine) SetBoard(street Street, cards []Card) error {
	need := BoardCardsNeeded(street)
	if need == 0 || len(cards) != need {
		return ErrBoardSize
	}
	for _, c := range cards {
		if owner, ok := e.used[c]; ok && owner != "board" {
			return ErrCardInUse
		}
	}
	for _, c := range e.board[street] {
		delete(e.used, c)
	}
	for _, c := range cards {
		e.used[c] = "board"
	}
	e.board[street] = cards
	e.resolve()
	return nil
}

// Commit applies an action for the pending actor. Amount is the street-total
// to-amount for bets and raises and is ignored for the other kinds (a call
// always matches the street's high bet).
func (e *Engine) Commit(kind ActionKind, amount int64) error {
	if e.phase != PhaseAwaitingAction || e.pending == "" {
		e.log.Warn().Str("kind", string(kind)).Msg("commit with no pending action")
		return ErrNoPendingActor
	}
	if !validKind(kind) {
		return ErrIllegalAction
	}
	pos := e.pending
	st := e.currentState()
	remaining := e.Remaining(pos)

	if !kindIn(LegalActions(st, pos, remaining), kind) {
		return ErrIllegalAction
	}

	a := Action{Position: pos, Kind: kind}
	switch kind {
	case ActionCall:
		a.Amount = st.HighBet
	case ActionBet, ActionRaise:
		maxTo := st.Contribs[pos] + remaining
		minTo := MinBetOrRaiseTo(st, pos, remaining, e.cfg.BigBlind)
		if amount > maxTo {
			return ErrBadAmount
		}
		if amount < minTo && amount != maxTo {
			return ErrBadAmount
		}
		a.Amount = amount
	}
	e.logs[e.street] = append(e.logs[e.street], a)
	e.resolve()
	return nil
}

// Undo removes the last voluntary action from the current street's log.
// System auto-folds behind it are resolver-derived, not user history, so the
// scan skips over them and resolve regenerates whichever still apply. Forced
// blind and straddle posts are never undone: reaching one is a warned no-op,
// per the entry UI contract.
func (e *Engine) Undo() error {
	log := e.logs[e.street]
	last := len(log) - 1
	for last >= 0 && log[last].System && log[last].Kind == ActionFold {
		last--
	}
	if last < 0 {
		e.log.Warn().Str("street", string(e.street)).Msg("undo on empty street")
		return ErrNothingToUndo
	}
	if log[last].System {
		e.log.Warn().Str("street", string(e.street)).Str("position", log[last].Position).Msg("undo blocked on forced post")
		return ErrNothingToUndo
	}
	e.logs[e.street] = log[:last]
	e.resolve()
	return nil
}

// Replay swaps in fully reconstructed street logs (the parse reconciler's
// output) and re-resolves. The logs must already include forced posts.
func (e *Engine) Replay(logs map[Street][]Action) error {
	for _, street := range Streets {
		for _, a := range logs[street] {
			if !validKind(a.Kind) {
				return ErrIllegalAction
			}
			if e.Seat(a.Position) == nil {
				return ErrUnknownSeat
			}
		}
	}
	e.logs = make(map[Street][]Action, len(Streets))
	for _, street := range Streets {
		if len(logs[street]) > 0 {
			e.logs[street] = append([]Action{}, logs[street]...)
		}
	}
	e.resolve()
	return nil
}

// Remaining is the seat's uncommitted stack: starting stack minus its
// contributions across every street so far.
func (e *Engine) Remaining(pos string) int64 {
	seat := e.Seat(pos)
	if seat == nil {
		return 0
	}
	left := seat.Stack - e.Committed(pos)
	if left < 0 {
		return 0
	}
	return left
}

// Committed sums a seat's street-total contributions over all streets.
func (e *Engine) Committed(pos string) int64 {
	var total int64
	for _, street := range Streets {
		total += streetContribs(e.logs[street])[pos]
	}
	return total
}

// streetContribs reduces a street log to each seat's final street-total.
func streetContribs(log []Action) map[string]int64 {
	out := make(map[string]int64)
	for _, a := range log {
		if a.Amount > out[a.Position] {
			out[a.Position] = a.Amount
		}
	}
	return out
}

// Pot is the chips committed so far: each seat's maximum single contribution
// per street, plus antes for every active seat.
func (e *Engine) Pot() int64 {
	var pot int64
	for _, street := range Streets {
		for _, amt := range streetContribs(e.logs[street]) {
			pot += amt
		}
	}
	if e.cfg.Ante > 0 {
		for _, s := range e.seats {
			if s.Active {
				pot += e.cfg.Ante
			}
		}
	}
	return pot
}

func kindIn(kinds []ActionKind, k ActionKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
