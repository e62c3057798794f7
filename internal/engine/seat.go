package engine

// Seat is one table position in the hand being entered.
type Seat struct {
	Position string
	// Active seats participate in the hand; inactive seats are auto-folded
	// by the resolver when their turn comes up.
	Active bool
	// Stack is the seat's starting stack for the hand. Remaining chips
	// during entry are derived as Stack minus committed contributions.
	Stack int64
	Cards []Card
}

// Config describes the hand being entered. Changing table size, hero
// position, or the effective-stack parameters regenerates the seat list and
// resets all streets (seat identities changed underneath the logs).
type Config struct {
	TableSize    int
	SmallBlind   int64
	BigBlind     int64
	Ante         int64
	Straddle     int64
	HeroPosition string
	// EffectiveStack is the default starting stack per seat, read either as
	// chips or as big-blind units.
	EffectiveStack   int64
	StackInBigBlinds bool
}

func (c Config) startingStack() int64 {
	if c.StackInBigBlinds {
		return c.EffectiveStack * c.BigBlind
	}
	return c.EffectiveStack
}

func (c Config) straddleOn() bool { return c.Straddle > 0 && c.TableSize >= 3 }

// buildSeats derives the seat list for a config: hero active, everyone else
// defaulted inactive, all at the effective stack.
func buildSeats(cfg Config) []*Seat {
	order := AvailablePositions(cfg.TableSize)
	seats := make([]*Seat, 0, len(order))
	for _, pos := range order {
		seats = append(seats, &Seat{
			Position: pos,
			Active:   pos == cfg.HeroPosition,
			Stack:    cfg.startingStack(),
		})
	}
	return seats
}
