package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/bot"
	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/log"
	duelnet "github.com/peterkuimelis/duelbot/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Match    string                `json:"match,omitempty"`
	Snapshot *duelnet.SnapshotView `json:"snapshot,omitempty"`
	Decision *duelnet.DecisionView `json:"decision,omitempty"`
	Scores   []int                 `json:"scores,omitempty"` // draft scores per offer
	Events   []duelnet.EventView   `json:"events"`
}

// MatchSession numbers the turns of one match played through the decide
// tool and keeps the planner trace until it is drained.
type MatchSession struct {
	ID string

	mu      sync.Mutex
	planner *game.Planner
	trace   *log.MemoryLogger
	logger  *zap.Logger
	turn    int
	pending int // trace events not yet returned by a tool
}

// NewMatchSession starts a fresh match.
func NewMatchSession(cfg game.PlannerConfig, logger *zap.Logger) *MatchSession {
	trace := log.NewMemoryLogger()
	cfg.Logger = trace
	id := uuid.NewString()
	return &MatchSession{
		ID:      id,
		planner: game.NewPlanner(cfg),
		trace:   trace,
		logger:  logger.With(zap.String("match", id)),
	}
}

// Decide plays the next turn of the match. The snapshot's turn number is
// replaced by the match's own count.
func (m *MatchSession) Decide(s game.Snapshot) (game.Decision, []log.GameEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turn++
	s.Turn = m.turn
	d := bot.Step(s, m.planner, m.logger)
	m.logger.Debug("turn decided", zap.Int("turn", d.Turn), zap.String("actions", d.Line()))
	return d, m.drainLocked()
}

// Turn returns the number of turns played.
func (m *MatchSession) Turn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

// DrainEvents returns trace events not yet handed out.
func (m *MatchSession) DrainEvents() []log.GameEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drainLocked()
}

func (m *MatchSession) drainLocked() []log.GameEvent {
	all := m.trace.Events()
	events := append([]log.GameEvent(nil), all[m.pending:]...)
	m.pending = len(all)
	return events
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	if resp.Events == nil {
		resp.Events = []duelnet.EventView{}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
