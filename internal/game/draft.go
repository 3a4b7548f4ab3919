package game

import (
	"github.com/peterkuimelis/duelbot/internal/log"
)

// DraftScore rates how much a card is worth taking during the draft.
func DraftScore(c CardInstance) int {
	return c.Attack + c.MyHealthChange - c.OpponentHealthChange - c.Cost
}

// EvaluateDraft returns the index of the best offered card. Ties keep the
// earliest offer. Panics if offers is empty.
func EvaluateDraft(offers []CardInstance) int {
	if len(offers) == 0 {
		panic("draft: no cards offered")
	}
	best := 0
	bestScore := DraftScore(offers[0])
	for i := 1; i < len(offers); i++ {
		if score := DraftScore(offers[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// DraftPick wraps the best offer's index into a Pick action.
func DraftPick(offers []CardInstance) Action {
	return Pick(EvaluateDraft(offers))
}

// Draft picks one of the offered cards and records the scores it saw.
func (p *Planner) Draft(turn int, offers []CardInstance) Action {
	idx := EvaluateDraft(offers)
	for i, c := range offers {
		p.logger.Log(log.NewDraftScoreEvent(turn, i, c.ID, DraftScore(c)))
	}
	p.logger.Log(log.NewDraftPickEvent(turn, idx, DraftScore(offers[idx])))
	return Pick(idx)
}
