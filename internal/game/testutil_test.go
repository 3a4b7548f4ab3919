package game

import (
	"testing"

	"github.com/peterkuimelis/duelbot/internal/log"
)

// handCreature builds a creature in my hand.
func handCreature(id, cost, atk, def int, abilities Ability) CardInstance {
	return CardInstance{ID: id, Location: LocationHand, Type: CardTypeCreature, Cost: cost, Attack: atk, Defense: def, Abilities: abilities}
}

// boardCreature builds a creature already on my side.
func boardCreature(id, atk, def int, abilities Ability) CardInstance {
	return CardInstance{ID: id, Location: LocationMySide, Type: CardTypeCreature, Attack: atk, Defense: def, Abilities: abilities}
}

// enemyCreature builds a creature on the opponent's side.
func enemyCreature(id, atk, def int, abilities Ability) CardInstance {
	return CardInstance{ID: id, Location: LocationOpponentSide, Type: CardTypeCreature, Attack: atk, Defense: def, Abilities: abilities}
}

// handItem builds an item card in my hand.
func handItem(id int, t CardType, cost int) CardInstance {
	return CardInstance{ID: id, Location: LocationHand, Type: t, Cost: cost}
}

// draftOffer builds a draft offer whose score is attack - cost.
func draftOffer(id, cost, atk int) CardInstance {
	return CardInstance{ID: id, Location: LocationHand, Type: CardTypeCreature, Cost: cost, Attack: atk}
}

// planWithLog runs the battle planner with a memory logger and dumps the
// trace when the test fails.
func planWithLog(t *testing.T, mana int, cards []CardInstance) ([]Action, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	p := NewPlanner(PlannerConfig{Logger: logger})
	actions := p.PlanBattle(PlayerState{Health: 30, Mana: mana}, PlayerState{Health: 30}, cards)
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("planner trace:\n%s", log.FormatAll(logger.Events()))
		}
	})
	return actions, logger
}

// assertLine checks the rendered output line of a battle turn.
func assertLine(t *testing.T, actions []Action, want string) {
	t.Helper()
	if got := JoinActions(actions); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// attackersOf returns the acting creature of every attack action.
func attackersOf(actions []Action) []int {
	var ids []int
	for _, a := range actions {
		if a.IsAttack() {
			ids = append(ids, a.Card)
		}
	}
	return ids
}
