package game

import (
	"fmt"
	"sort"

	"github.com/peterkuimelis/duelbot/internal/log"
)

// PlanBattle plans a battle turn with a default planner.
func PlanBattle(me, opponent PlayerState, cards []CardInstance) []Action {
	return NewPlanner(PlannerConfig{}).PlanBattle(me, opponent, cards)
}

// PlanBattle returns the ordered actions for one battle turn: summons,
// then attacks on enemy guards, then face attacks, then blue items.
// The opponent's state is accepted but not consulted yet.
func (p *Planner) PlanBattle(me, opponent PlayerState, cards []CardInstance) []Action {
	return p.planBattle(0, me, cards)
}

// battleTurn is the scratch state of a single planBattle call.
type battleTurn struct {
	p       *Planner
	turn    int
	mana    int            // working budget, starts at my mana
	board   int            // creatures on my side, including this turn's summons
	pool    []CardInstance // creatures that may still attack
	actions []Action
}

func (p *Planner) planBattle(turn int, me PlayerState, cards []CardInstance) []Action {
	onBoard := MyCreatures(cards)
	bt := &battleTurn{
		p:     p,
		turn:  turn,
		mana:  me.Mana,
		board: len(onBoard),
		pool:  onBoard,
	}
	p.logger.Log(log.NewTurnStartEvent(turn, "Battle", me.Mana, len(HandCreatures(cards)), len(onBoard)))

	bt.summonPhase(cards)
	bt.guardPhase(cards)
	bt.facePhase()
	bt.itemPhase(cards)

	if len(bt.actions) == 0 {
		p.logger.Log(log.NewPassEvent(turn, "Battle"))
	}
	return bt.actions
}

func (bt *battleTurn) emit(a Action) {
	bt.actions = append(bt.actions, a)
}

// summonPhase plays hand creatures strongest attack first while mana and
// board space last. Charge creatures join the attacker pool.
func (bt *battleTurn) summonPhase(cards []CardInstance) {
	hand := HandCreatures(cards)
	sort.SliceStable(hand, func(i, j int) bool {
		return hand[i].Attack > hand[j].Attack
	})

	for _, c := range hand {
		if c.Cost > bt.mana {
			bt.p.logger.Log(log.NewSummonSkippedEvent(bt.turn, c.ID, c.DisplayString(),
				fmt.Sprintf("needs %d mana, %d left", c.Cost, bt.mana)))
			continue
		}
		if bt.board >= bt.p.boardCap {
			bt.p.logger.Log(log.NewSummonSkippedEvent(bt.turn, c.ID, c.DisplayString(),
				fmt.Sprintf("board full (%d/%d)", bt.board, bt.p.boardCap)))
			continue
		}

		bt.mana -= c.Cost
		bt.board++
		bt.emit(Summon(c.ID))
		bt.p.logger.Log(log.NewSummonEvent(bt.turn, c.ID, c.DisplayString(), c.Cost, bt.mana, bt.board))

		if c.Abilities.Has(AbilityCharge) {
			bt.pool = append(bt.pool, c)
		}
	}
}

// guardPhase sends attackers into enemy guards, toughest guard first and
// hardest hitter first, until each guard's defense is used up.
func (bt *battleTurn) guardPhase(cards []CardInstance) {
	guards := OpponentGuards(cards)
	sort.SliceStable(guards, func(i, j int) bool {
		return guards[i].Defense > guards[j].Defense
	})

	for _, g := range guards {
		remaining := g.Defense
		for remaining > 0 {
			attacker, ok := bt.takeStrongest()
			if !ok {
				bt.p.logger.Log(log.NewGuardUnclearedEvent(bt.turn, g.ID, g.DisplayString(), remaining))
				break
			}
			remaining -= attacker.Attack
			bt.emit(AttackCreature(attacker.ID, g.ID))
			bt.p.logger.Log(log.NewGuardAttackEvent(bt.turn, attacker.ID, g.ID,
				attacker.DisplayString(), g.DisplayString(), max(remaining, 0)))
		}
	}
}

// takeStrongest removes and returns the pool creature with the highest
// attack. Ties go to the creature that entered the pool first.
func (bt *battleTurn) takeStrongest() (CardInstance, bool) {
	if len(bt.pool) == 0 {
		return CardInstance{}, false
	}
	best := 0
	for i := 1; i < len(bt.pool); i++ {
		if bt.pool[i].Attack > bt.pool[best].Attack {
			best = i
		}
	}
	c := bt.pool[best]
	bt.pool = append(bt.pool[:best], bt.pool[best+1:]...)
	return c, true
}

// facePhase sends every creature still in the pool at the opponent.
func (bt *battleTurn) facePhase() {
	for _, c := range bt.pool {
		bt.emit(AttackFace(c.ID))
		bt.p.logger.Log(log.NewFaceAttackEvent(bt.turn, c.ID, c.DisplayString(), c.Attack))
	}
	bt.pool = nil
}

// itemPhase uses blue items from hand with whatever mana is left. Only
// untargeted use is planned.
func (bt *battleTurn) itemPhase(cards []CardInstance) {
	for _, item := range HandItems(cards, CardTypeBlueItem) {
		if item.Cost > bt.mana {
			bt.p.logger.Log(log.NewItemSkippedEvent(bt.turn, item.ID, item.DisplayString(),
				fmt.Sprintf("needs %d mana, %d left", item.Cost, bt.mana)))
			continue
		}
		bt.mana -= item.Cost
		bt.emit(UseItem(item.ID))
		bt.p.logger.Log(log.NewUseItemEvent(bt.turn, item.ID, item.DisplayString(), item.Cost, bt.mana))
	}
}
