package history

import (
	"errors"
	"testing"

	"hand-forge/internal/engine"
)

func headsUpEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Config{
		TableSize:      2,
		SmallBlind:     1,
		BigBlind:       2,
		HeroPosition:   engine.PosSB,
		EffectiveStack: 200,
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := e.SetSeatActive(engine.PosBB, true); err != nil {
		t.Fatalf("activate BB: %v", err)
	}
	return e
}

func commit(t *testing.T, e *engine.Engine, kind engine.ActionKind, amount int64) {
	t.Helper()
	if err := e.Commit(kind, amount); err != nil {
		t.Fatalf("commit %s: %v", kind, err)
	}
}

func setBoard(t *testing.T, e *engine.Engine, street engine.Street, s string) {
	t.Helper()
	cs, err := engine.ParseCards(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	if err := e.SetBoard(street, cs); err != nil {
		t.Fatalf("board %s: %v", street, err)
	}
}

func setCards(t *testing.T, e *engine.Engine, pos, s string) {
	t.Helper()
	cs, err := engine.ParseCards(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	if err := e.SetSeatCards(pos, cs); err != nil {
		t.Fatalf("cards %s: %v", pos, err)
	}
}

// checkDown plays call/check preflop then checks every postflop street.
func checkDown(t *testing.T, e *engine.Engine) {
	t.Helper()
	commit(t, e, engine.ActionCall, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetFlop, "2h7dTs")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetTurn, "Jc")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetRiver, "3d")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
}

func TestAssembleShowdownWinner(t *testing.T) {
	e := headsUpEngine(t)
	setCards(t, e, engine.PosSB, "AsAc")
	setCards(t, e, engine.PosBB, "KdKh")
	checkDown(t, e)

	h, err := Assemble(e)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !h.Showdown {
		t.Fatalf("expected showdown")
	}
	if h.Pot != 4 {
		t.Fatalf("pot = %d, want 4", h.Pot)
	}
	if got := h.Winnings[engine.PosSB]; got != 4 {
		t.Fatalf("hero winnings = %d, want 4", got)
	}
	if h.HeroNet != 2 {
		t.Fatalf("hero net = %d, want 2 (won 4, put in 2)", h.HeroNet)
	}
	if len(h.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(h.Players))
	}
}

func TestAssembleSplitPot(t *testing.T) {
	e := headsUpEngine(t)
	setCards(t, e, engine.PosSB, "2s3s")
	setCards(t, e, engine.PosBB, "2d3d")
	commit(t, e, engine.ActionCall, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetFlop, "5h6c7s")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetTurn, "8c")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetRiver, "9d")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)

	h, err := Assemble(e)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if h.Winnings[engine.PosSB] != 2 || h.Winnings[engine.PosBB] != 2 {
		t.Fatalf("split = %v, want 2/2", h.Winnings)
	}
	if h.HeroNet != 0 {
		t.Fatalf("hero net = %d, want 0", h.HeroNet)
	}
}

func TestAssembleFoldedPotGoesToSurvivor(t *testing.T) {
	e := headsUpEngine(t)
	setCards(t, e, engine.PosSB, "AsAc")
	commit(t, e, engine.ActionFold, 0) // hero open-folds the small blind

	h, err := Assemble(e)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if h.Showdown {
		t.Fatalf("fold-out must not be a showdown")
	}
	if got := h.Winnings[engine.PosBB]; got != 3 {
		t.Fatalf("BB winnings = %d, want 3 (both blinds)", got)
	}
	if h.HeroNet != -1 {
		t.Fatalf("hero net = %d, want -1", h.HeroNet)
	}
}

func TestAssembleBetThenCallRiverIsShowdown(t *testing.T) {
	e := headsUpEngine(t)
	setCards(t, e, engine.PosSB, "AsAc")
	commit(t, e, engine.ActionCall, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetFlop, "2h7dTs")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetTurn, "Jc")
	commit(t, e, engine.ActionCheck, 0)
	commit(t, e, engine.ActionCheck, 0)
	setBoard(t, e, engine.StreetRiver, "3d")
	commit(t, e, engine.ActionBet, 6)
	commit(t, e, engine.ActionCall, 0)

	h, err := Assemble(e)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !h.Showdown {
		t.Fatalf("bet-then-call river must infer a showdown")
	}
	// Villain cards unknown: no distribution is attempted.
	if h.Winnings != nil {
		t.Fatalf("expected no distribution, got %v", h.Winnings)
	}
}

func TestAssembleValidation(t *testing.T) {
	e := headsUpEngine(t)
	if _, err := Assemble(e); !errors.Is(err, ErrMissingHeroCards) {
		t.Fatalf("missing hero cards: err=%v", err)
	}

	solo, err := engine.New(engine.Config{
		TableSize:      6,
		SmallBlind:     1,
		BigBlind:       2,
		HeroPosition:   engine.PosBTN,
		EffectiveStack: 200,
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	setCards(t, solo, engine.PosBTN, "AsAc")
	if _, err := Assemble(solo); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("single active seat: err=%v", err)
	}
}

func TestAssembleVerbMapping(t *testing.T) {
	e := headsUpEngine(t)
	setCards(t, e, engine.PosSB, "AsAc")
	setCards(t, e, engine.PosBB, "KdKh")
	checkDown(t, e)

	h, err := Assemble(e)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	pre := h.Streets[0]
	if pre.Actions[0].Verb != "posts small blind" || pre.Actions[1].Verb != "posts big blind" {
		t.Fatalf("blind verbs = %q, %q", pre.Actions[0].Verb, pre.Actions[1].Verb)
	}
	if got := pre.Actions[2].Verb; got != "calls" {
		t.Fatalf("third preflop verb = %q, want calls", got)
	}
}
