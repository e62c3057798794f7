package engine

// resolve re-derives the whole engine position from the street logs and the
// entered boards: which street action is on, who acts next, or whether the
// hand is finished or stalled waiting on board cards. It is run after every
// mutation and always starts from preflop, so the derived state can never
// disagree with the logs.
func (e *Engine) resolve() {
	e.pending = ""
	e.waitingFor = ""
	street := StreetPreflop

	for {
		e.street = street
		if len(e.logs[street]) == 0 && street == StreetPreflop {
			// Blinds haven't posted; the street hasn't started.
			return
		}
		st := e.currentState()

		if !st.Complete() {
			next, ok := st.Next()
			if !ok {
				return
			}
			if seat := e.Seat(next); seat != nil && !seat.Active {
				// Inactive seats never prompt: fold them and keep scanning.
				e.logs[street] = append(e.logs[street], Action{Position: next, Kind: ActionFold, System: true})
				continue
			}
			e.phase = PhaseAwaitingAction
			e.pending = next
			return
		}

		if len(st.Live) <= 1 {
			e.phase = PhaseHandComplete
			return
		}
		following, ok := nextStreet(street)
		if !ok {
			// River closed with live seats: the hand is over.
			e.phase = PhaseHandComplete
			return
		}
		if len(e.board[following]) < BoardCardsNeeded(following) {
			e.phase = PhaseAwaitingCards
			e.waitingFor = following
			return
		}
		street = following
	}
}

// currentState rebuilds the action street's queue from its log.
func (e *Engine) currentState() *StreetState {
	return Rebuild(e.seedOrder(e.street), e.logs[e.street])
}

// seedOrder is the seat set and order a street's queue starts from. Preflop
// that is every table position in preflop order (straddle-adjusted);
// postflop it is the seats that survived all prior streets, small blind
// first.
func (e *Engine) seedOrder(street Street) []string {
	if street == StreetPreflop {
		return PreflopOrder(e.cfg.TableSize, e.cfg.straddleOn())
	}
	folded := make(map[string]bool)
	for _, prior := range Streets {
		if prior == street {
			break
		}
		for _, a := range e.logs[prior] {
			if a.Kind == ActionFold {
				folded[a.Position] = true
			}
		}
	}
	order := PostflopOrder(e.cfg.TableSize)
	out := make([]string, 0, len(order))
	for _, pos := range order {
		if !folded[pos] {
			out = append(out, pos)
		}
	}
	return out
}

// LiveSeats is the current street's live seat set.
func (e *Engine) LiveSeats() []string {
	return e.currentState().Live
}
