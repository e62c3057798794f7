package parse

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hand-forge/internal/engine"
)

// Reconciler folds an extraction into an already-configured engine. It never
// bypasses the engine: everything it learns becomes ordinary seat updates,
// board entries, and replayed street logs, so the imported hand obeys the same
// rules as a manually entered one.
type Reconciler struct {
	log zerolog.Logger
}

func NewReconciler() *Reconciler {
	return &Reconciler{log: log.With().Str("component", "reconciler").Logger()}
}

// Apply rewrites the engine from the extraction. Details the collaborator got
// wrong degrade to warnings rather than failing the import: an unmappable
// seat drops its actions, an unparsable card group is skipped, an unknown
// bet size falls back to the minimum legal amount.
func (r *Reconciler) Apply(e *engine.Engine, ex *Extraction) ([]string, error) {
	cfg := e.Config()
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		r.log.Warn().Msg(msg)
	}

	// Every seat the text mentions joins the hand before any log is rebuilt.
	for _, pos := range r.mentionedSeats(cfg.TableSize, ex) {
		if e.Seat(pos) == nil {
			warn("no seat %s at a %d-handed table, dropping its actions", pos, cfg.TableSize)
			continue
		}
		if err := e.SetSeatActive(pos, true); err != nil {
			return warnings, err
		}
	}

	for _, p := range ex.Players {
		pos := engine.CanonicalPosition(p.Position, cfg.TableSize)
		if e.Seat(pos) == nil || len(p.Cards) == 0 {
			continue
		}
		cards, err := engine.ParseCards(p.Cards...)
		if err != nil || len(cards) != 2 {
			warn("unreadable cards for %s: %q", pos, strings.Join(p.Cards, " "))
			continue
		}
		if err := e.SetSeatCards(pos, cards); err != nil {
			warn("cards for %s rejected: %v", pos, err)
		}
	}

	for street, es := range r.streets(ex) {
		if es == nil || len(es.Cards) == 0 || engine.BoardCardsNeeded(street) == 0 {
			continue
		}
		cards, err := engine.ParseCards(es.Cards...)
		if err != nil {
			warn("unreadable %s cards: %q", street, strings.Join(es.Cards, " "))
			continue
		}
		if err := e.SetBoard(street, cards); err != nil {
			warn("%s cards rejected: %v", street, err)
		}
	}

	logs, err := r.buildLogs(e, ex, warn)
	if err != nil {
		return warnings, err
	}
	return warnings, e.Replay(logs)
}

// mentionedSeats collects every canonical position the extraction references,
// deduplicated, players first then actions in street order.
func (r *Reconciler) mentionedSeats(tableSize int, ex *Extraction) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(label string) {
		if strings.TrimSpace(label) == "" {
			return
		}
		pos := engine.CanonicalPosition(label, tableSize)
		if !seen[pos] {
			seen[pos] = true
			out = append(out, pos)
		}
	}
	for _, p := range ex.Players {
		add(p.Position)
	}
	for _, street := range engine.Streets {
		if es := r.streets(ex)[street]; es != nil {
			for _, a := range es.Actions {
				add(a.Position)
			}
		}
	}
	return out
}

func (r *Reconciler) streets(ex *Extraction) map[engine.Street]*ExtractedStreet {
	return map[engine.Street]*ExtractedStreet{
		engine.StreetPreflop: ex.Preflop,
		engine.StreetFlop:    ex.Flop,
		engine.StreetTurn:    ex.Turn,
		engine.StreetRiver:   ex.River,
	}
}

// buildLogs converts the extraction's per-street actions into street logs.
// Forced posts and folds for seats staying out of the hand come first; then
// each seat's extracted actions, kept in their own order, are interleaved
// round-robin in turn order. A running high bet resolves bare calls and
// all-in phrasings to concrete to-amounts.
func (r *Reconciler) buildLogs(e *engine.Engine, ex *Extraction, warn func(string, ...any)) (map[engine.Street][]engine.Action, error) {
	cfg := e.Config()
	logs := make(map[engine.Street][]engine.Action, len(engine.Streets))
	prior := make(map[string]int64) // chips committed on earlier streets

	for _, street := range engine.Streets {
		var streetLog []engine.Action
		var highBet, lastDelta int64
		contribs := make(map[string]int64)
		folded := make(map[string]bool)

		commit := func(a engine.Action) {
			if a.Kind == engine.ActionFold {
				folded[a.Position] = true
			}
			if a.Amount > highBet {
				lastDelta = a.Amount - highBet
				highBet = a.Amount
			}
			if a.Amount > contribs[a.Position] {
				contribs[a.Position] = a.Amount
			}
			streetLog = append(streetLog, a)
		}

		var order []string
		if street == engine.StreetPreflop {
			straddleOn := cfg.Straddle > 0 && cfg.TableSize >= 3
			order = engine.PreflopOrder(cfg.TableSize, straddleOn)
			commit(engine.Action{Position: engine.PosSB, Kind: engine.ActionBet, Amount: cfg.SmallBlind, System: true})
			commit(engine.Action{Position: engine.PosBB, Kind: engine.ActionBet, Amount: cfg.BigBlind, System: true})
			if straddleOn {
				commit(engine.Action{
					Position: engine.StraddlePosition(cfg.TableSize),
					Kind:     engine.ActionRaise,
					Amount:   cfg.Straddle,
					System:   true,
				})
			}
			// Seats the text never mentions stay out of the hand.
			for _, pos := range order {
				if seat := e.Seat(pos); seat != nil && !seat.Active {
					commit(engine.Action{Position: pos, Kind: engine.ActionFold, System: true})
				}
			}
		} else {
			order = engine.PostflopOrder(cfg.TableSize)
		}

		queues, pending := r.seatQueues(e, street, ex, warn)
		for pending > 0 {
			progressed := false
			for _, pos := range order {
				q := queues[pos]
				if len(q) == 0 {
					continue
				}
				raw := q[0]
				queues[pos] = q[1:]
				pending--
				progressed = true

				if folded[pos] {
					warn("dropping %s action %q by %s, seat already folded", street, raw.Action, pos)
					continue
				}
				kind, allIn, ok := r.mapVerb(raw.Action, highBet > contribs[pos])
				if !ok {
					warn("dropping unrecognized %s action %q by %s", street, raw.Action, pos)
					continue
				}

				a := engine.Action{Position: pos, Kind: kind}
				switch kind {
				case engine.ActionCall:
					a.Amount = highBet
				case engine.ActionBet, engine.ActionRaise:
					switch {
					case allIn || raw.Amount.AllIn:
						a.Amount = e.Seat(pos).Stack - prior[pos]
						if a.Amount < 0 {
							a.Amount = 0
						}
					case raw.Amount.Known:
						a.Amount = raw.Amount.Value
					default:
						a.Amount = minToAmount(highBet, lastDelta, cfg.BigBlind)
						warn("no amount for %s %s by %s, assuming minimum %d", street, kind, pos, a.Amount)
					}
				}
				commit(a)
			}
			if !progressed {
				break
			}
		}

		if len(streetLog) > 0 {
			logs[street] = streetLog
		}
		for pos, amt := range contribs {
			prior[pos] += amt
		}
	}
	return logs, nil
}

// seatQueues buckets one street's extracted actions per canonical seat,
// preserving each seat's own ordering, and reports the total queued.
func (r *Reconciler) seatQueues(e *engine.Engine, street engine.Street, ex *Extraction, warn func(string, ...any)) (map[string][]ExtractedAction, int) {
	queues := make(map[string][]ExtractedAction)
	total := 0
	es := r.streets(ex)[street]
	if es == nil {
		return queues, 0
	}
	tableSize := e.Config().TableSize
	for _, raw := range es.Actions {
		pos := engine.CanonicalPosition(raw.Position, tableSize)
		if e.Seat(pos) == nil {
			warn("dropping %s action for unknown seat %q", street, raw.Position)
			continue
		}
		queues[pos] = append(queues[pos], raw)
		total++
	}
	return queues, total
}

// mapVerb resolves a free-text verb to an action kind. All-in phrasings pick
// bet or raise from whether the seat currently faces a bet.
func (r *Reconciler) mapVerb(verb string, facingBet bool) (kind engine.ActionKind, allIn, ok bool) {
	v := strings.ToLower(strings.TrimSpace(verb))
	if isAllInPhrase(v) {
		if facingBet {
			return engine.ActionRaise, true, true
		}
		return engine.ActionBet, true, true
	}
	switch {
	case strings.Contains(v, "fold"), strings.Contains(v, "muck"):
		return engine.ActionFold, false, true
	case strings.Contains(v, "check"):
		return engine.ActionCheck, false, true
	case strings.Contains(v, "call"), strings.Contains(v, "limp"):
		return engine.ActionCall, false, true
	case strings.Contains(v, "raise"), strings.Contains(v, "open"), strings.Contains(v, "3bet"), strings.Contains(v, "3-bet"), strings.Contains(v, "re-raise"):
		return engine.ActionRaise, false, true
	case strings.Contains(v, "bet"), strings.Contains(v, "lead"), strings.Contains(v, "donk"):
		return engine.ActionBet, false, true
	}
	return "", false, false
}

func minToAmount(highBet, lastDelta, bigBlind int64) int64 {
	if highBet == 0 {
		return bigBlind
	}
	step := lastDelta
	if step < bigBlind {
		step = bigBlind
	}
	return highBet + step
}
