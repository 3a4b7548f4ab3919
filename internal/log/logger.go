package log

import (
	"fmt"
	"io"
	"strings"
)

const noTarget = -1

// EventLogger is the interface for logging planner events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- NopLogger: discards everything ---

type NopLogger struct{}

func (NopLogger) Log(GameEvent) {}

func (NopLogger) Events() []GameEvent { return nil }

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Reset drops all recorded events.
func (l *MemoryLogger) Reset() {
	l.events = nil
	l.seq = 0
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

// TextLogger only writes; it does not keep events around, so a long
// running bot does not grow without bound.
type TextLogger struct {
	w   io.Writer
	seq int
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	fmt.Fprintln(l.w, FormatEvent(event))
}

func (l *TextLogger) Events() []GameEvent {
	return nil
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-2d %-7s| %s", e.Turn, e.Phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnStartEvent(turn int, phase string, mana, handCount, boardCount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventTurnStart,
		Card:    noTarget,
		Target:  noTarget,
		Details: fmt.Sprintf("=== Turn %d: %d mana, %d in hand, %d on board ===", turn, mana, handCount, boardCount),
	}
}

func NewDraftScoreEvent(turn int, index, cardID, score int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draft",
		Type:    EventDraftScore,
		Card:    index,
		Target:  noTarget,
		Details: fmt.Sprintf("offer %d (#%d) scores %d", index, cardID, score),
	}
}

func NewDraftPickEvent(turn int, index, score int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Draft",
		Type:    EventDraftPick,
		Card:    index,
		Target:  noTarget,
		Details: fmt.Sprintf("picks offer %d (score %d)", index, score),
	}
}

func NewSummonEvent(turn int, cardID int, card string, cost, manaLeft, board int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Summon",
		Type:    EventSummon,
		Card:    cardID,
		Target:  noTarget,
		Details: fmt.Sprintf("summons %s for %d mana (%d left, %d on board)", card, cost, manaLeft, board),
	}
}

func NewSummonSkippedEvent(turn int, cardID int, card string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Summon",
		Type:    EventSummonSkipped,
		Card:    cardID,
		Target:  noTarget,
		Details: fmt.Sprintf("skips %s (%s)", card, reason),
	}
}

func NewGuardAttackEvent(turn int, attackerID, guardID int, attacker, guard string, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Guards",
		Type:    EventGuardAttack,
		Card:    attackerID,
		Target:  guardID,
		Details: fmt.Sprintf("%s → %s (guard defense left %d)", attacker, guard, remaining),
	}
}

func NewGuardUnclearedEvent(turn int, guardID int, guard string, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Guards",
		Type:    EventGuardUncleared,
		Card:    noTarget,
		Target:  guardID,
		Details: fmt.Sprintf("no attackers left for %s (defense left %d)", guard, remaining),
	}
}

func NewFaceAttackEvent(turn int, attackerID int, attacker string, atk int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Face",
		Type:    EventFaceAttack,
		Card:    attackerID,
		Target:  noTarget,
		Details: fmt.Sprintf("%s attacks the opponent for %d", attacker, atk),
	}
}

func NewUseItemEvent(turn int, itemID int, item string, cost, manaLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Items",
		Type:    EventUseItem,
		Card:    itemID,
		Target:  noTarget,
		Details: fmt.Sprintf("uses %s for %d mana (%d left)", item, cost, manaLeft),
	}
}

func NewItemSkippedEvent(turn int, itemID int, item string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Items",
		Type:    EventItemSkipped,
		Card:    itemID,
		Target:  noTarget,
		Details: fmt.Sprintf("skips %s (%s)", item, reason),
	}
}

func NewPassEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPass,
		Card:    noTarget,
		Target:  noTarget,
		Details: "nothing to do, passing",
	}
}
