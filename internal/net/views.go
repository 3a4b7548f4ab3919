package net

import (
	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/log"
)

// BuildSnapshotView converts a snapshot to its JSON view.
func BuildSnapshotView(s game.Snapshot) *SnapshotView {
	sv := &SnapshotView{
		Turn:            s.Turn,
		Phase:           "battle",
		Me:              playerView(s.Me),
		Opponent:        playerView(s.Opponent),
		OpponentHand:    s.OpponentHand,
		OpponentActions: s.OpponentActions,
		Cards:           make([]CardView, 0, len(s.Cards)),
	}
	if s.IsDraft() {
		sv.Phase = "draft"
	}
	for _, c := range s.Cards {
		sv.Cards = append(sv.Cards, CardView{
			Number:               c.Number,
			ID:                   c.ID,
			Location:             c.Location.String(),
			Type:                 c.Type.String(),
			Cost:                 c.Cost,
			Attack:               c.Attack,
			Defense:              c.Defense,
			Abilities:            c.Abilities.String(),
			MyHealthChange:       c.MyHealthChange,
			OpponentHealthChange: c.OpponentHealthChange,
			CardDraw:             c.CardDraw,
		})
	}
	return sv
}

func playerView(p game.PlayerState) PlayerView {
	return PlayerView{Health: p.Health, Mana: p.Mana, Deck: p.Deck, Runes: p.Runes}
}

// BuildDecisionView converts a decision to its JSON view.
func BuildDecisionView(d game.Decision) *DecisionView {
	dv := &DecisionView{
		Turn:    d.Turn,
		Draft:   d.Draft,
		Line:    d.Line(),
		Actions: make([]ActionView, 0, len(d.Actions)),
	}
	for _, a := range d.Actions {
		dv.Actions = append(dv.Actions, ActionView{
			Type:   a.Type.String(),
			Card:   a.Card,
			Target: a.Target,
			Desc:   a.String(),
		})
	}
	return dv
}

// BuildEventViews converts planner trace events to their JSON views.
func BuildEventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Phase:   e.Phase,
			Type:    e.Type.String(),
			Card:    e.Card,
			Target:  e.Target,
			Details: e.Details,
		})
	}
	return views
}
