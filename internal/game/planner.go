package game

import (
	"github.com/peterkuimelis/duelbot/internal/log"
)

// PlannerConfig holds configuration for creating a new planner.
type PlannerConfig struct {
	BoardCap int // creatures allowed on my side (0 = BoardCap)
	Logger   log.EventLogger
}

// Planner decides one turn at a time. It holds no per-turn state, so a
// single planner can be shared across turns and connections as long as its
// logger tolerates that.
type Planner struct {
	boardCap int
	logger   log.EventLogger
}

// NewPlanner creates a planner from the given config.
func NewPlanner(cfg PlannerConfig) *Planner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NopLogger{}
	}
	boardCap := cfg.BoardCap
	if boardCap <= 0 {
		boardCap = BoardCap
	}
	return &Planner{
		boardCap: boardCap,
		logger:   logger,
	}
}

// BoardCap returns the board-size limit the planner summons against.
func (p *Planner) BoardCap() int {
	return p.boardCap
}

// Decision is the planner's answer for one turn.
type Decision struct {
	Turn    int
	Draft   bool
	Actions []Action
}

// Line renders the decision as the single output line for the referee.
func (d Decision) Line() string {
	return JoinActions(d.Actions)
}

// Decide dispatches the snapshot to the draft evaluator or the battle
// planner depending on the phase.
func (p *Planner) Decide(s Snapshot) Decision {
	if s.IsDraft() {
		return Decision{
			Turn:    s.Turn,
			Draft:   true,
			Actions: []Action{p.Draft(s.Turn, s.Cards)},
		}
	}
	return Decision{
		Turn:    s.Turn,
		Actions: p.planBattle(s.Turn, s.Me, s.Cards),
	}
}

// Decide decides a turn with a default planner.
func Decide(s Snapshot) Decision {
	return NewPlanner(PlannerConfig{}).Decide(s)
}
