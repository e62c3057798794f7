// Package history turns a finished (or abandoned) entry session into an
// immutable hand-history record for persistence and replay.
package history

import (
	"errors"
	"time"

	"hand-forge/internal/engine"
)

var (
	ErrBadBlinds        = errors.New("bad_blinds")
	ErrMissingHeroCards = errors.New("missing_hero_cards")
	ErrHeroNotActive    = errors.New("hero_not_active")
	ErrTooFewPlayers    = errors.New("too_few_players")
)

type PlayerRecord struct {
	Position   string   `json:"position"`
	SeatNumber int      `json:"seat_number"`
	Stack      int64    `json:"stack"`
	IsHero     bool     `json:"is_hero,omitempty"`
	Cards      []string `json:"cards,omitempty"`
}

type ActionRecord struct {
	Position string `json:"position"`
	Verb     string `json:"verb"`
	Amount   int64  `json:"amount,omitempty"`
}

type StreetRecord struct {
	Street  string         `json:"street"`
	Cards   []string       `json:"cards,omitempty"`
	Actions []ActionRecord `json:"actions"`
}

// Hand is the finalized record. Built once by Assemble, never mutated.
type Hand struct {
	ID           string           `json:"id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	TableSize    int              `json:"table_size"`
	SmallBlind   int64            `json:"small_blind"`
	BigBlind     int64            `json:"big_blind"`
	Ante         int64            `json:"ante,omitempty"`
	Straddle     int64            `json:"straddle,omitempty"`
	HeroPosition string           `json:"hero_position"`
	Players      []PlayerRecord   `json:"players"`
	Streets      []StreetRecord   `json:"streets"`
	Pot          int64            `json:"pot"`
	Showdown     bool             `json:"showdown"`
	Winnings     map[string]int64 `json:"winnings,omitempty"`
	HeroNet      int64            `json:"hero_net"`
}

// Assemble validates the entry state and builds the finalized record.
// The engine is read, never written.
func Assemble(e *engine.Engine) (*Hand, error) {
	cfg := e.Config()
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= 0 {
		return nil, ErrBadBlinds
	}
	hero := e.Seat(cfg.HeroPosition)
	if hero == nil || !hero.Active {
		return nil, ErrHeroNotActive
	}
	if len(hero.Cards) != 2 {
		return nil, ErrMissingHeroCards
	}
	activeCount := 0
	for _, s := range e.Seats() {
		if s.Active {
			activeCount++
		}
	}
	if activeCount < 2 {
		return nil, ErrTooFewPlayers
	}

	h := &Hand{
		CreatedAt:    time.Now().UTC(),
		TableSize:    cfg.TableSize,
		SmallBlind:   cfg.SmallBlind,
		BigBlind:     cfg.BigBlind,
		Ante:         cfg.Ante,
		Straddle:     cfg.Straddle,
		HeroPosition: cfg.HeroPosition,
		Pot:          e.Pot(),
	}

	for i, s := range e.Seats() {
		if !s.Active {
			continue
		}
		h.Players = append(h.Players, PlayerRecord{
			Position:   s.Position,
			SeatNumber: i + 1,
			Stack:      s.Stack,
			IsHero:     s.Position == cfg.HeroPosition,
			Cards:      cardNames(s.Cards),
		})
	}

	straddler := engine.StraddlePosition(cfg.TableSize)
	for _, street := range engine.Streets {
		log := e.Log(street)
		board := e.Board(street)
		if len(log) == 0 && len(board) == 0 {
			continue
		}
		rec := StreetRecord{Street: string(street), Cards: cardNames(board), Actions: []ActionRecord{}}
		for _, a := range log {
			rec.Actions = append(rec.Actions, ActionRecord{
				Position: a.Position,
				Verb:     verbFor(a, cfg, straddler),
				Amount:   a.Amount,
			})
		}
		h.Streets = append(h.Streets, rec)
	}

	live := liveToEnd(e)
	h.Showdown = inferShowdown(e, live)
	h.Winnings = distribute(e, live, h.Showdown, h.Pot)

	heroSpent := e.Committed(cfg.HeroPosition) + cfg.Ante
	h.HeroNet = h.Winnings[cfg.HeroPosition] - heroSpent

	return h, nil
}

func verbFor(a engine.Action, cfg engine.Config, straddler string) string {
	if a.System && a.Kind != engine.ActionFold {
		switch a.Position {
		case engine.PosSB:
			return "posts small blind"
		case engine.PosBB:
			return "posts big blind"
		case straddler:
			return "posts straddle"
		}
	}
	switch a.Kind {
	case engine.ActionFold:
		return "folds"
	case engine.ActionCheck:
		return "checks"
	case engine.ActionCall:
		return "calls"
	case engine.ActionBet:
		return "bets"
	case engine.ActionRaise:
		return "raises"
	}
	return string(a.Kind)
}

// liveToEnd lists active seats that never folded on any street, table order.
func liveToEnd(e *engine.Engine) []*engine.Seat {
	folded := make(map[string]bool)
	for _, street := range engine.Streets {
		for _, a := range e.Log(street) {
			if a.Kind == engine.ActionFold {
				folded[a.Position] = true
			}
		}
	}
	var out []*engine.Seat
	for _, s := range e.Seats() {
		if s.Active && !folded[s.Position] {
			out = append(out, s)
		}
	}
	return out
}

// inferShowdown applies the recorded-behavior heuristic: two live seats with
// known hole cards, or a river that closed with everyone checking or with a
// bet answered by a call. This is an approximation, kept as-is deliberately.
func inferShowdown(e *engine.Engine, live []*engine.Seat) bool {
	if len(live) < 2 {
		return false
	}
	withCards := 0
	for _, s := range live {
		if len(s.Cards) == 2 {
			withCards++
		}
	}
	if withCards >= 2 {
		return true
	}

	river := e.Log(engine.StreetRiver)
	var voluntary []engine.Action
	for _, a := range river {
		if !a.System {
			voluntary = append(voluntary, a)
		}
	}
	if len(voluntary) == 0 {
		return false
	}
	allChecks := true
	for _, a := range voluntary {
		if a.Kind != engine.ActionCheck {
			allChecks = false
		}
	}
	if allChecks && len(voluntary) >= len(live) {
		return true
	}
	if len(voluntary) >= 2 {
		last := voluntary[len(voluntary)-1]
		prev := voluntary[len(voluntary)-2]
		if last.Kind == engine.ActionCall && (prev.Kind == engine.ActionBet || prev.Kind == engine.ActionRaise) {
			return true
		}
	}
	return false
}

// distribute splits the pot. Without a showdown the sole live seat takes it
// all; with one, seats with known cards are compared over the full board and
// ties split evenly, odd chip to the earliest table position. When hole cards
// are unknown the distribution is left empty.
func distribute(e *engine.Engine, live []*engine.Seat, showdown bool, pot int64) map[string]int64 {
	if len(live) == 1 {
		return map[string]int64{live[0].Position: pot}
	}
	if !showdown {
		return nil
	}
	board := fullBoard(e)
	if len(board) != 5 {
		return nil
	}

	type contender struct {
		pos      string
		strength Strength
	}
	var contenders []contender
	for _, s := range live {
		if len(s.Cards) != 2 {
			continue
		}
		seven := append(append([]engine.Card{}, s.Cards...), board...)
		contenders = append(contenders, contender{pos: s.Position, strength: Best7(seven)})
	}
	if len(contenders) < 2 {
		return nil
	}

	best := contenders[0].strength
	for _, c := range contenders[1:] {
		if c.strength.Beats(best) {
			best = c.strength
		}
	}
	var winners []string
	for _, c := range contenders {
		if c.strength.Ties(best) {
			winners = append(winners, c.pos)
		}
	}
	out := make(map[string]int64, len(winners))
	share := pot / int64(len(winners))
	remainder := pot - share*int64(len(winners))
	for i, pos := range winners {
		out[pos] = share
		if int64(i) < remainder {
			out[pos]++
		}
	}
	return out
}

func fullBoard(e *engine.Engine) []engine.Card {
	var out []engine.Card
	for _, street := range []engine.Street{engine.StreetFlop, engine.StreetTurn, engine.StreetRiver} {
		out = append(out, e.Board(street)...)
	}
	return out
}

func cardNames(cards []engine.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}
