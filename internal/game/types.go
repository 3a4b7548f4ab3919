package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// Location is where a card sits in the snapshot, as sent by the referee.
type Location int

const (
	LocationOpponentSide Location = -1
	LocationHand         Location = 0
	LocationMySide       Location = 1
)

func (l Location) String() string {
	switch l {
	case LocationOpponentSide:
		return "Opponent Side"
	case LocationHand:
		return "Hand"
	case LocationMySide:
		return "My Side"
	default:
		return "Unknown"
	}
}

type CardType int

const (
	CardTypeCreature CardType = iota
	CardTypeGreenItem
	CardTypeRedItem
	CardTypeBlueItem
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeCreature:
		return "Creature"
	case CardTypeGreenItem:
		return "Green Item"
	case CardTypeRedItem:
		return "Red Item"
	case CardTypeBlueItem:
		return "Blue Item"
	default:
		return "Unknown"
	}
}

// IsItem reports whether the type is one of the three item colours.
func (ct CardType) IsItem() bool {
	return ct == CardTypeGreenItem || ct == CardTypeRedItem || ct == CardTypeBlueItem
}

// Ability is a set of creature keywords.
type Ability uint8

const (
	AbilityBreakthrough Ability = 1 << iota
	AbilityCharge
	AbilityDrain
	AbilityGuard
	AbilityLethal
	AbilityWard

	AbilityNone Ability = 0
)

// abilityLetters is the fixed display order used by the referee.
var abilityLetters = [...]struct {
	flag   Ability
	letter byte
}{
	{AbilityBreakthrough, 'B'},
	{AbilityCharge, 'C'},
	{AbilityDrain, 'D'},
	{AbilityGuard, 'G'},
	{AbilityLethal, 'L'},
	{AbilityWard, 'W'},
}

// AbilityFromLetter maps a single keyword letter to its flag.
func AbilityFromLetter(letter byte) (Ability, bool) {
	for _, al := range abilityLetters {
		if al.letter == letter {
			return al.flag, true
		}
	}
	return AbilityNone, false
}

// Has reports whether every flag in want is present.
func (a Ability) Has(want Ability) bool {
	return a&want == want
}

// String renders the six-character form, e.g. "BC-G--".
func (a Ability) String() string {
	var sb strings.Builder
	for _, al := range abilityLetters {
		if a.Has(al.flag) {
			sb.WriteByte(al.letter)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// --- Snapshot model (rebuilt from scratch every turn) ---

// PlayerState is one player's resources for the current turn.
type PlayerState struct {
	Health int
	Mana   int
	Deck   int
	Runes  int
}

// CardInstance is a card visible in the current turn's snapshot.
type CardInstance struct {
	Number    int // catalogue number
	ID        int // instance ID, unique within a snapshot
	Location  Location
	Type      CardType
	Cost      int
	Attack    int
	Defense   int
	Abilities Ability

	MyHealthChange       int
	OpponentHealthChange int
	CardDraw             int
}

func (c CardInstance) String() string {
	return fmt.Sprintf("#%d", c.ID)
}

// DisplayString returns a human-readable description for the trace log.
func (c CardInstance) DisplayString() string {
	if c.IsCreature() {
		return fmt.Sprintf("#%d (cost %d, %d/%d %s)", c.ID, c.Cost, c.Attack, c.Defense, c.Abilities)
	}
	return fmt.Sprintf("#%d (%s, cost %d)", c.ID, c.Type, c.Cost)
}

// IsCreature reports whether the card is a creature.
func (c CardInstance) IsCreature() bool {
	return c.Type == CardTypeCreature
}
