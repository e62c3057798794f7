package history

import (
	"sort"

	"hand-forge/internal/engine"
)

// Strength classes: 8 straight flush, 7 quads, 6 full house, 5 flush,
// 4 straight, 3 trips, 2 two pair, 1 pair, 0 high card.
type Strength struct {
	Class    int
	Tiebreak []int
}

func (s Strength) Beats(o Strength) bool {
	if s.Class != o.Class {
		return s.Class > o.Class
	}
	for i := 0; i < len(s.Tiebreak) && i < len(o.Tiebreak); i++ {
		if s.Tiebreak[i] != o.Tiebreak[i] {
			return s.Tiebreak[i] > o.Tiebreak[i]
		}
	}
	return false
}

func (s Strength) Ties(o Strength) bool {
	return !s.Beats(o) && !o.Beats(s)
}

// Best7 evaluates the best five-card hand out of seven cards.
func Best7(cards []engine.Card) Strength {
	best := Strength{Class: -1}
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			for c := b + 1; c < 7; c++ {
				for d := c + 1; d < 7; d++ {
					for e := d + 1; e < 7; e++ {
						s := rank5([]engine.Card{cards[a], cards[b], cards[c], cards[d], cards[e]})
						if s.Beats(best) {
							best = s
						}
					}
				}
			}
		}
	}
	return best
}

func rank5(cards []engine.Card) Strength {
	counts := map[int]int{}
	suits := map[engine.Suit]int{}
	ranks := make([]int, 0, 5)
	for _, c := range cards {
		counts[int(c.Rank)]++
		suits[c.Suit]++
		ranks = append(ranks, int(c.Rank))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := false
	for _, n := range suits {
		if n == 5 {
			flush = true
		}
	}
	straight, high := straightHigh(ranks)
	if flush && straight {
		return Strength{Class: 8, Tiebreak: []int{high}}
	}

	type group struct{ rank, n int }
	groups := make([]group, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, group{rank: r, n: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].n != groups[j].n {
			return groups[i].n > groups[j].n
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case groups[0].n == 4:
		return Strength{Class: 7, Tiebreak: []int{groups[0].rank, bestExcluding(ranks, groups[0].rank)}}
	case groups[0].n == 3 && groups[1].n >= 2:
		return Strength{Class: 6, Tiebreak: []int{groups[0].rank, groups[1].rank}}
	case flush:
		return Strength{Class: 5, Tiebreak: ranks}
	case straight:
		return Strength{Class: 4, Tiebreak: []int{high}}
	case groups[0].n == 3:
		return Strength{Class: 3, Tiebreak: append([]int{groups[0].rank}, kickers(ranks, 2, groups[0].rank)...)}
	case groups[0].n == 2 && groups[1].n == 2:
		return Strength{Class: 2, Tiebreak: []int{groups[0].rank, groups[1].rank, bestExcluding(ranks, groups[0].rank, groups[1].rank)}}
	case groups[0].n == 2:
		return Strength{Class: 1, Tiebreak: append([]int{groups[0].rank}, kickers(ranks, 3, groups[0].rank)...)}
	}
	return Strength{Class: 0, Tiebreak: ranks}
}

func straightHigh(ranks []int) (bool, int) {
	uniq := make([]int, 0, len(ranks))
	seen := map[int]bool{}
	for _, r := range ranks {
		if !seen[r] {
			seen[r] = true
			uniq = append(uniq, r)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(uniq)))
	if len(uniq) < 5 {
		return false, 0
	}
	for i := 0; i <= len(uniq)-5; i++ {
		if uniq[i]-uniq[i+4] == 4 {
			return true, uniq[i]
		}
	}
	// Wheel: A-2-3-4-5.
	if seen[14] && seen[5] && seen[4] && seen[3] && seen[2] {
		return true, 5
	}
	return false, 0
}

func bestExcluding(ranks []int, exclude ...int) int {
	for _, r := range ranks {
		skip := false
		for _, e := range exclude {
			if r == e {
				skip = true
			}
		}
		if !skip {
			return r
		}
	}
	return 0
}

func kickers(ranks []int, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for _, r := range ranks {
		skip := false
		for _, e := range exclude {
			if r == e {
				skip = true
			}
		}
		if skip {
			continue
		}
		out = append(out, r)
		if len(out) == n {
			break
		}
	}
	return out
}
