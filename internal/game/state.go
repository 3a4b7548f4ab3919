package game

const (
	BoardCap    = 6 // creatures a player may have on their side
	MaxHandSize = 8
	MaxMana     = 12
)

// Snapshot is everything the referee sends for one turn.
type Snapshot struct {
	Turn         int // 1-based index assigned by the reader, 0 if unknown
	Me           PlayerState
	Opponent     PlayerState
	OpponentHand int

	// OpponentActions are the raw lines describing what the opponent
	// did last turn. Newer referees send them; older ones do not.
	OpponentActions []string

	Cards []CardInstance
}

// IsDraft reports whether this turn is a draft pick. The referee signals
// the draft phase by giving the player no mana.
func (s Snapshot) IsDraft() bool {
	return s.Me.Mana == 0
}

// HandCreatures returns the creatures in my hand, in snapshot order.
func HandCreatures(cards []CardInstance) []CardInstance {
	return filterCards(cards, func(c CardInstance) bool {
		return c.Location == LocationHand && c.IsCreature()
	})
}

// HandItems returns my hand cards of the given item type, in snapshot order.
// A non-item type matches nothing.
func HandItems(cards []CardInstance, t CardType) []CardInstance {
	return filterCards(cards, func(c CardInstance) bool {
		return c.Location == LocationHand && c.Type.IsItem() && c.Type == t
	})
}

// MyCreatures returns the creatures on my side of the board.
func MyCreatures(cards []CardInstance) []CardInstance {
	return filterCards(cards, func(c CardInstance) bool {
		return c.Location == LocationMySide && c.IsCreature()
	})
}

// OpponentCreatures returns the creatures on the opponent's side.
func OpponentCreatures(cards []CardInstance) []CardInstance {
	return filterCards(cards, func(c CardInstance) bool {
		return c.Location == LocationOpponentSide && c.IsCreature()
	})
}

// OpponentGuards returns the opponent's creatures that carry Guard.
func OpponentGuards(cards []CardInstance) []CardInstance {
	return filterCards(OpponentCreatures(cards), func(c CardInstance) bool {
		return c.Abilities.Has(AbilityGuard)
	})
}

// filterCards copies matching cards into a fresh slice so callers may
// reorder the result without touching the snapshot.
func filterCards(cards []CardInstance, keep func(CardInstance) bool) []CardInstance {
	var result []CardInstance
	for _, c := range cards {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result
}
