package engine

import (
	"errors"
	"testing"
)

func sixMaxConfig() Config {
	return Config{
		TableSize:      6,
		SmallBlind:     1,
		BigBlind:       2,
		HeroPosition:   PosBTN,
		EffectiveStack: 200,
	}
}

func mustEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func mustCommit(t *testing.T, e *Engine, kind ActionKind, amount int64) {
	t.Helper()
	if err := e.Commit(kind, amount); err != nil {
		t.Fatalf("commit %s %d (pending %s): %v", kind, amount, e.Snapshot().PendingActor, err)
	}
}

func activate(t *testing.T, e *Engine, positions ...string) {
	t.Helper()
	for _, pos := range positions {
		if err := e.SetSeatActive(pos, true); err != nil {
			t.Fatalf("activate %s: %v", pos, err)
		}
	}
}

func TestSixMaxLimpedPreflop(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)

	snap := e.Snapshot()
	if snap.PendingActor != PosBTN {
		t.Fatalf("expected hero BTN to act (villains folded), got %s", snap.PendingActor)
	}
	if snap.CallAmount != 2 {
		t.Fatalf("call amount = %d, want 2", snap.CallAmount)
	}

	mustCommit(t, e, ActionCall, 0) // BTN calls 2
	if next := e.Snapshot().PendingActor; next != PosSB {
		t.Fatalf("expected SB next, got %s", next)
	}
	mustCommit(t, e, ActionCall, 0) // SB completes to 2
	if next := e.Snapshot().PendingActor; next != PosBB {
		t.Fatalf("expected BB option, got %s", next)
	}
	mustCommit(t, e, ActionCheck, 0)

	snap = e.Snapshot()
	if snap.Phase != PhaseAwaitingCards || snap.WaitingFor != StreetFlop {
		t.Fatalf("expected waiting on flop cards, got phase=%s waiting=%s", snap.Phase, snap.WaitingFor)
	}
	if snap.Pot != 6 {
		t.Fatalf("pot after limped preflop = %d, want 6", snap.Pot)
	}
}

func TestBoardCardsResumeResolution(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)
	mustCommit(t, e, ActionCall, 0)
	mustCommit(t, e, ActionCall, 0)
	mustCommit(t, e, ActionCheck, 0)

	flop, err := ParseCards("AsKd7h")
	if err != nil {
		t.Fatalf("parse flop: %v", err)
	}
	if err := e.SetBoard(StreetFlop, flop); err != nil {
		t.Fatalf("set flop: %v", err)
	}

	snap := e.Snapshot()
	if snap.Street != StreetFlop || snap.Phase != PhaseAwaitingAction {
		t.Fatalf("expected flop action, got street=%s phase=%s", snap.Street, snap.Phase)
	}
	// Postflop the small blind opens.
	if snap.PendingActor != PosSB {
		t.Fatalf("expected SB first postflop, got %s", snap.PendingActor)
	}
}

func TestHeadsUpPostflopBigBlindActsFirst(t *testing.T) {
	e := mustEngine(t, Config{
		TableSize:      2,
		SmallBlind:     1,
		BigBlind:       2,
		HeroPosition:   PosSB,
		EffectiveStack: 200,
	})
	activate(t, e, PosBB)
	mustCommit(t, e, ActionCall, 0)  // SB (button) completes
	mustCommit(t, e, ActionCheck, 0) // BB

	flop, err := ParseCards("2c9dQh")
	if err != nil {
		t.Fatalf("parse flop: %v", err)
	}
	if err := e.SetBoard(StreetFlop, flop); err != nil {
		t.Fatalf("set flop: %v", err)
	}

	snap := e.Snapshot()
	if snap.Street != StreetFlop || snap.PendingActor != PosBB {
		t.Fatalf("expected BB first on the flop, got street=%s pending=%s", snap.Street, snap.PendingActor)
	}
}

func TestFoldToOneEndsHand(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)
	mustCommit(t, e, ActionRaise, 6) // BTN raises to 6
	mustCommit(t, e, ActionFold, 0)  // SB
	mustCommit(t, e, ActionFold, 0)  // BB

	snap := e.Snapshot()
	if !snap.HandComplete {
		t.Fatalf("expected hand complete, phase=%s", snap.Phase)
	}
	if snap.Pot != 9 {
		t.Fatalf("pot = %d, want 9 (blinds + raise)", snap.Pot)
	}
}

func TestStraddledPreflopOrder(t *testing.T) {
	cfg := sixMaxConfig()
	cfg.Straddle = 4
	e := mustEngine(t, cfg)
	activate(t, e, PosSB, PosBB, PosUTG, PosMP)

	// MP opens: UTG is pulled out of the opening sequence to post the
	// straddle and acts after the blinds.
	if got := e.Snapshot().PendingActor; got != PosMP {
		t.Fatalf("expected MP to open a straddled pot, got %s", got)
	}
	if got := e.Snapshot().CallAmount; got != 4 {
		t.Fatalf("call amount over straddle = %d, want 4", got)
	}

	mustCommit(t, e, ActionCall, 0) // MP (CO inactive, auto-folds)
	mustCommit(t, e, ActionCall, 0) // BTN
	mustCommit(t, e, ActionFold, 0) // SB
	mustCommit(t, e, ActionFold, 0) // BB
	// The straddler still gets its option.
	if got := e.Snapshot().PendingActor; got != PosUTG {
		t.Fatalf("expected straddler option, got %s", got)
	}
	mustCommit(t, e, ActionCheck, 0)

	snap := e.Snapshot()
	if snap.Phase != PhaseAwaitingCards || snap.WaitingFor != StreetFlop {
		t.Fatalf("expected flop wait, got phase=%s waiting=%s", snap.Phase, snap.WaitingFor)
	}
}

func TestUndoRemovesOnlyVoluntaryTail(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)
	mustCommit(t, e, ActionCall, 0) // BTN

	if err := e.Undo(); err != nil {
		t.Fatalf("undo voluntary call: %v", err)
	}
	if got := e.Snapshot().PendingActor; got != PosBTN {
		t.Fatalf("expected BTN pending after undo, got %s", got)
	}
	// Behind the auto-folds only forced posts remain; undo must refuse.
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo on forced posts: err=%v", err)
	}
	if got := e.Snapshot().PendingActor; got != PosBTN {
		t.Fatalf("engine state must be untouched, pending=%s", got)
	}
}

func TestUndoSkipsResolverFoldsBehindAction(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	mustCommit(t, e, ActionRaise, 6) // BTN; SB and BB auto-fold behind it

	if got := e.Snapshot().Phase; got != PhaseHandComplete {
		t.Fatalf("expected completed hand, phase=%s", got)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo raise behind auto-folds: %v", err)
	}
	snap := e.Snapshot()
	if snap.PendingActor != PosBTN || snap.Phase != PhaseAwaitingAction {
		t.Fatalf("expected BTN back to act, pending=%s phase=%s", snap.PendingActor, snap.Phase)
	}
	if snap.Pot != 3 {
		t.Fatalf("pot = %d after undo, want blinds only", snap.Pot)
	}
}

func TestCommitValidatesAmounts(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)

	if err := e.Commit(ActionRaise, 3); !errors.Is(err, ErrBadAmount) {
		t.Fatalf("raise below minimum: err=%v", err)
	}
	if err := e.Commit(ActionRaise, 500); !errors.Is(err, ErrBadAmount) {
		t.Fatalf("raise beyond stack: err=%v", err)
	}
	if err := e.Commit(ActionCheck, 0); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("check facing the blind: err=%v", err)
	}
	// All-in below the theoretical minimum is legal.
	if err := e.Commit(ActionRaise, 200); err != nil {
		t.Fatalf("all-in raise: %v", err)
	}
}

func TestCommitWithoutPendingActor(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)
	mustCommit(t, e, ActionFold, 0) // BTN
	mustCommit(t, e, ActionFold, 0) // SB; BB wins, hand over

	if !e.Snapshot().HandComplete {
		t.Fatalf("expected hand complete")
	}
	if err := e.Commit(ActionCheck, 0); !errors.Is(err, ErrNoPendingActor) {
		t.Fatalf("commit after hand end: err=%v", err)
	}
}

func TestCardUniquenessEvictsPriorHolder(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	as, _ := ParseCard("As")
	kd, _ := ParseCard("Kd")
	qh, _ := ParseCard("Qh")

	if err := e.SetSeatCards(PosUTG, []Card{as, kd}); err != nil {
		t.Fatalf("assign UTG: %v", err)
	}
	if err := e.SetSeatCards(PosMP, []Card{as, qh}); err != nil {
		t.Fatalf("assign MP: %v", err)
	}
	utg := e.Seat(PosUTG)
	if len(utg.Cards) != 1 || utg.Cards[0] != kd {
		t.Fatalf("expected As evicted from UTG, cards=%v", utg.Cards)
	}

	// Board never evicts a held card.
	flop, _ := ParseCards("QhJsTc")
	if err := e.SetBoard(StreetFlop, flop); !errors.Is(err, ErrCardInUse) {
		t.Fatalf("board over held card: err=%v", err)
	}
}

func TestReconfigureResetsStreets(t *testing.T) {
	e := mustEngine(t, sixMaxConfig())
	activate(t, e, PosSB, PosBB)
	mustCommit(t, e, ActionCall, 0)

	cfg := sixMaxConfig()
	cfg.TableSize = 9
	cfg.HeroPosition = PosCO
	if err := e.Reconfigure(cfg); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}

	if got := len(e.Seats()); got != 9 {
		t.Fatalf("seat count = %d, want 9", got)
	}
	// Only the forced posts survive a reset.
	for _, a := range e.Log(StreetPreflop) {
		if !a.System {
			t.Fatalf("voluntary action survived reconfigure: %+v", a)
		}
	}
}

func TestEffectiveStackInBigBlinds(t *testing.T) {
	cfg := sixMaxConfig()
	cfg.EffectiveStack = 100
	cfg.StackInBigBlinds = true
	e := mustEngine(t, cfg)
	if got := e.Seat(PosBTN).Stack; got != 200 {
		t.Fatalf("stack = %d, want 200 (100bb at bb=2)", got)
	}
}
