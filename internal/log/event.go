package log

// EventType enumerates the decisions the planner records.
type EventType int

const (
	EventTurnStart EventType = iota
	EventDraftScore
	EventDraftPick
	EventSummon
	EventSummonSkipped
	EventGuardAttack
	EventGuardUncleared
	EventFaceAttack
	EventUseItem
	EventItemSkipped
	EventPass
)

func (e EventType) String() string {
	switch e {
	case EventTurnStart:
		return "TurnStart"
	case EventDraftScore:
		return "DraftScore"
	case EventDraftPick:
		return "DraftPick"
	case EventSummon:
		return "Summon"
	case EventSummonSkipped:
		return "SummonSkipped"
	case EventGuardAttack:
		return "GuardAttack"
	case EventGuardUncleared:
		return "GuardUncleared"
	case EventFaceAttack:
		return "FaceAttack"
	case EventUseItem:
		return "UseItem"
	case EventItemSkipped:
		return "ItemSkipped"
	case EventPass:
		return "Pass"
	default:
		return "Unknown"
	}
}

// GameEvent is a single step of a turn decision.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn the decision belongs to (0 if unknown)
	Phase   string    // planning phase, e.g. "Summon" or "Guards"
	Type    EventType // event type
	Card    int       // acting card instance ID (or offer index for drafts)
	Target  int       // target instance ID, -1 for none
	Details string    // human-readable detail string
}
