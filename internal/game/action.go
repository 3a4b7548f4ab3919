package game

import (
	"fmt"
	"strings"
)

// NoTarget is the protocol's target ID for "the opponent" or "no target".
const NoTarget = -1

type ActionType int

const (
	ActionPass ActionType = iota
	ActionPick
	ActionSummon
	ActionAttackCreature
	ActionAttackFace
	ActionUseItem
	ActionUseItemOnCreature
)

func (a ActionType) String() string {
	switch a {
	case ActionPass:
		return "Pass"
	case ActionPick:
		return "Pick"
	case ActionSummon:
		return "Summon"
	case ActionAttackCreature:
		return "Attack Creature"
	case ActionAttackFace:
		return "Attack Face"
	case ActionUseItem:
		return "Use Item"
	case ActionUseItemOnCreature:
		return "Use Item On Creature"
	default:
		return "Unknown"
	}
}

// Action is one protocol command. Card holds the acting instance ID (or the
// offer index for Pick); Target holds the target instance ID or NoTarget.
type Action struct {
	Type   ActionType
	Card   int
	Target int
}

func Pass() Action {
	return Action{Type: ActionPass, Target: NoTarget}
}

func Pick(index int) Action {
	return Action{Type: ActionPick, Card: index, Target: NoTarget}
}

func Summon(creatureID int) Action {
	return Action{Type: ActionSummon, Card: creatureID, Target: NoTarget}
}

func AttackCreature(attackerID, targetID int) Action {
	return Action{Type: ActionAttackCreature, Card: attackerID, Target: targetID}
}

func AttackFace(attackerID int) Action {
	return Action{Type: ActionAttackFace, Card: attackerID, Target: NoTarget}
}

func UseItem(itemID int) Action {
	return Action{Type: ActionUseItem, Card: itemID, Target: NoTarget}
}

func UseItemOnCreature(itemID, targetID int) Action {
	return Action{Type: ActionUseItemOnCreature, Card: itemID, Target: targetID}
}

// IsAttack reports whether the action spends the acting creature's attack.
func (a Action) IsAttack() bool {
	return a.Type == ActionAttackCreature || a.Type == ActionAttackFace
}

// String renders the action as a single protocol command.
func (a Action) String() string {
	switch a.Type {
	case ActionPass:
		return "PASS"
	case ActionPick:
		return fmt.Sprintf("PICK %d", a.Card)
	case ActionSummon:
		return fmt.Sprintf("SUMMON %d", a.Card)
	case ActionAttackCreature:
		return fmt.Sprintf("ATTACK %d %d", a.Card, a.Target)
	case ActionAttackFace:
		return fmt.Sprintf("ATTACK %d %d", a.Card, NoTarget)
	case ActionUseItem:
		return fmt.Sprintf("USE %d %d", a.Card, NoTarget)
	case ActionUseItemOnCreature:
		return fmt.Sprintf("USE %d %d", a.Card, a.Target)
	default:
		return "PASS"
	}
}

// JoinActions renders a battle turn as one output line. An empty turn is
// sent as an explicit PASS so the referee always receives a command.
func JoinActions(actions []Action) string {
	if len(actions) == 0 {
		return Pass().String()
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ";")
}
