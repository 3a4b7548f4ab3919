package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewSummonEvent(2, 5, "#5", 3, 1, 2))
	l.Log(NewFaceAttackEvent(2, 5, "#5", 4))
	l.Log(NewSummonEvent(2, 6, "#6", 1, 0, 3))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("Event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}
	if n := len(l.EventsOfType(EventSummon)); n != 2 {
		t.Errorf("Expected 2 summon events, got %d", n)
	}
	if l.LastEvent().Card != 6 {
		t.Errorf("Expected last event for #6, got %+v", l.LastEvent())
	}

	l.Reset()
	if len(l.Events()) != 0 || l.LastEvent() != (GameEvent{}) {
		t.Error("Expected empty logger after reset")
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewTurnStartEvent(7, "Battle", 4, 3, 1))
	l.Log(NewGuardAttackEvent(7, 2, 9, "#2", "#9", 0))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "T7  Battle ") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "#2 → #9") {
		t.Errorf("Unexpected second line: %q", lines[1])
	}
	if l.Events() != nil {
		t.Error("TextLogger should not retain events")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventGuardUncleared.String() != "GuardUncleared" {
		t.Errorf("Unexpected name %q", EventGuardUncleared.String())
	}
	if EventType(99).String() != "Unknown" {
		t.Errorf("Expected Unknown for out of range type")
	}
}
