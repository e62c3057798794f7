package engine

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Canonical position labels.
const (
	PosBTN  = "BTN"
	PosSB   = "SB"
	PosBB   = "BB"
	PosUTG  = "UTG"
	PosUTG1 = "UTG1"
	PosMP   = "MP"
	PosLJ   = "LJ"
	PosHJ   = "HJ"
	PosCO   = "CO"
)

// tablePositions lists each table size's seats in clockwise order starting
// from the small blind. Postflop action follows this order directly; preflop
// action starts after the big blind.
var tablePositions = map[int][]string{
	2: {PosSB, PosBB},
	3: {PosSB, PosBB, PosBTN},
	4: {PosSB, PosBB, PosUTG, PosBTN},
	5: {PosSB, PosBB, PosUTG, PosCO, PosBTN},
	6: {PosSB, PosBB, PosUTG, PosMP, PosCO, PosBTN},
	7: {PosSB, PosBB, PosUTG, PosMP, PosHJ, PosCO, PosBTN},
	8: {PosSB, PosBB, PosUTG, PosUTG1, PosMP, PosHJ, PosCO, PosBTN},
	9: {PosSB, PosBB, PosUTG, PosUTG1, PosMP, PosLJ, PosHJ, PosCO, PosBTN},
}

// AvailablePositions returns the fixed, order-stable seat list for a table
// size, or nil when the size is unsupported.
func AvailablePositions(tableSize int) []string {
	order, ok := tablePositions[tableSize]
	if !ok {
		return nil
	}
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// PreflopOrder rotates the table order so action opens with the first seat
// after the big blind. Heads-up this degenerates to SB then BB, which is the
// correct preflop order. With a straddle on, the straddler is pulled out of
// the opening sequence and appended last so the post happens after the blinds.
func PreflopOrder(tableSize int, straddle bool) []string {
	order := AvailablePositions(tableSize)
	if order == nil {
		return nil
	}
	rotated := append(append([]string{}, order[2:]...), order[:2]...)
	if !straddle || tableSize < 3 {
		return rotated
	}
	straddler := StraddlePosition(tableSize)
	out := make([]string, 0, len(rotated))
	for _, p := range rotated {
		if p != straddler {
			out = append(out, p)
		}
	}
	return append(out, straddler)
}

// PostflopOrder is the table order itself: small blind first, button last.
// Heads-up the small blind is the button, so the big blind acts first.
func PostflopOrder(tableSize int) []string {
	if tableSize == 2 {
		return []string{PosBB, PosSB}
	}
	return AvailablePositions(tableSize)
}

// StraddlePosition is the seat after the big blind (UTG where one exists,
// the button at three-handed).
func StraddlePosition(tableSize int) string {
	order := tablePositions[tableSize]
	if len(order) < 3 {
		return ""
	}
	return order[2]
}

// positionAliases maps free-text labels to canonical positions. Size-dependent
// labels (hijack at tables too short to seat one) resolve through
// CanonicalPosition, which checks membership before falling back.
var positionAliases = map[string]string{
	"btn": PosBTN, "button": PosBTN, "dealer": PosBTN, "d": PosBTN,
	"sb": PosSB, "small blind": PosSB, "smallblind": PosSB, "small": PosSB,
	"bb": PosBB, "big blind": PosBB, "bigblind": PosBB, "big": PosBB,
	"utg": PosUTG, "under the gun": PosUTG, "underthegun": PosUTG,
	"utg1": PosUTG1, "utg+1": PosUTG1, "utg +1": PosUTG1,
	"mp": PosMP, "middle": PosMP, "middle position": PosMP, "mp1": PosMP,
	"lj": PosLJ, "lojack": PosLJ, "lo jack": PosLJ,
	"hj": PosHJ, "hijack": PosHJ, "hi jack": PosHJ,
	"co": PosCO, "cutoff": PosCO, "cut off": PosCO,
}

// Labels that shift meaning with table size: a "hijack" at a 6-max table is
// the seat two off the button, which that layout calls MP.
var positionFallbacks = map[string][]string{
	PosHJ:   {PosMP, PosCO},
	PosLJ:   {PosMP, PosHJ},
	PosUTG1: {PosUTG, PosMP},
	PosMP:   {PosUTG, PosCO},
	PosUTG:  {PosBTN},
}

// CanonicalPosition maps a free-text position label onto a seat present at the
// given table size. Lookup order: exact alias, fuzzy alias match, then the
// uppercased literal so an unmappable label degrades instead of failing.
func CanonicalPosition(label string, tableSize int) string {
	key := strings.ToLower(strings.TrimSpace(label))
	canon, ok := positionAliases[key]
	if !ok {
		keys := make([]string, 0, len(positionAliases))
		for k := range positionAliases {
			keys = append(keys, k)
		}
		matches := fuzzy.RankFindNormalizedFold(key, keys)
		if len(matches) > 0 {
			best := matches[0]
			for _, m := range matches[1:] {
				if m.Distance < best.Distance {
					best = m
				}
			}
			canon = positionAliases[best.Target]
			ok = true
		}
	}
	if !ok {
		return strings.ToUpper(strings.TrimSpace(label))
	}
	if hasPosition(tableSize, canon) {
		return canon
	}
	for _, alt := range positionFallbacks[canon] {
		if hasPosition(tableSize, alt) {
			return alt
		}
	}
	return canon
}

func hasPosition(tableSize int, pos string) bool {
	for _, p := range tablePositions[tableSize] {
		if p == pos {
			return true
		}
	}
	return false
}
