package engine

import (
	"reflect"
	"testing"
)

func TestAvailablePositionsStableAndUnique(t *testing.T) {
	for size := 2; size <= 9; size++ {
		first := AvailablePositions(size)
		if len(first) != size {
			t.Fatalf("size %d: got %d positions", size, len(first))
		}
		seen := make(map[string]bool)
		for _, pos := range first {
			if seen[pos] {
				t.Fatalf("size %d: duplicate position %s", size, pos)
			}
			seen[pos] = true
		}
		if again := AvailablePositions(size); !reflect.DeepEqual(first, again) {
			t.Fatalf("size %d: position list not stable: %v vs %v", size, first, again)
		}
	}
	if AvailablePositions(10) != nil || AvailablePositions(1) != nil {
		t.Fatalf("unsupported sizes must return nil")
	}
}

func TestPreflopOrderStartsAfterBigBlind(t *testing.T) {
	got := PreflopOrder(6, false)
	want := []string{PosUTG, PosMP, PosCO, PosBTN, PosSB, PosBB}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	// Heads-up: small blind opens.
	got = PreflopOrder(2, false)
	want = []string{PosSB, PosBB}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("heads-up got %v want %v", got, want)
	}
}

func TestPostflopOrderHeadsUpBigBlindFirst(t *testing.T) {
	got := PostflopOrder(2)
	want := []string{PosBB, PosSB}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("heads-up got %v want %v", got, want)
	}

	got = PostflopOrder(6)
	want = []string{PosSB, PosBB, PosUTG, PosMP, PosCO, PosBTN}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("six-max got %v want %v", got, want)
	}
}

func TestPreflopOrderWithStraddleMovesStraddlerLast(t *testing.T) {
	got := PreflopOrder(6, true)
	want := []string{PosMP, PosCO, PosBTN, PosSB, PosBB, PosUTG}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if StraddlePosition(6) != PosUTG {
		t.Fatalf("expected UTG straddler, got %s", StraddlePosition(6))
	}
}

func TestCanonicalPositionAliases(t *testing.T) {
	cases := []struct {
		label string
		size  int
		want  string
	}{
		{"button", 6, PosBTN},
		{"Dealer", 9, PosBTN},
		{"small blind", 6, PosSB},
		{"bb", 2, PosBB},
		{"under the gun", 9, PosUTG},
		{"hijack", 9, PosHJ},
		{"hijack", 6, PosMP}, // no HJ seat at 6-max
		{"cutoff", 5, PosCO},
		{"lojack", 9, PosLJ},
		{"utg+1", 8, PosUTG1},
		{"hijak", 9, PosHJ}, // fuzzy
	}
	for _, tc := range cases {
		if got := CanonicalPosition(tc.label, tc.size); got != tc.want {
			t.Fatalf("CanonicalPosition(%q, %d) = %q, want %q", tc.label, tc.size, got, tc.want)
		}
	}
}

func TestCanonicalPositionFallsBackToLiteral(t *testing.T) {
	if got := CanonicalPosition("zzqq", 6); got != "ZZQQ" {
		t.Fatalf("unmappable label must uppercase, got %q", got)
	}
}
