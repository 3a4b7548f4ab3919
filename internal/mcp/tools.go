package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/config"
	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/log"
	duelnet "github.com/peterkuimelis/duelbot/internal/net"
	"github.com/peterkuimelis/duelbot/internal/proto"
)

var (
	// cfg and logger are set by main before the server starts.
	cfg    = config.Default()
	logger = zap.NewNop()

	// activeMatch is the match played through decide (one per stdio process).
	mu          sync.Mutex
	activeMatch *MatchSession
)

// SetConfig sets the planner settings used by every tool.
func SetConfig(c config.Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// SetLogger sets the process logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// RegisterTools adds all decision tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(draftPickTool(), handleDraftPick)
	s.AddTool(planBattleTool(), handlePlanBattle)
	s.AddTool(decideTool(), handleDecide)
	s.AddTool(newMatchTool(), handleNewMatch)
	s.AddTool(getTraceTool(), handleGetTrace)
}

// --- Tool definitions ---

const snapshotHelp = "Turn snapshot in the referee's text format: two player lines " +
	"(health mana deck runes), the opponent hand line, any opponent action lines, " +
	"the card count and one line per card."

func draftPickTool() mcp.Tool {
	return mcp.NewTool("draft_pick",
		mcp.WithDescription("Score the three offered cards of a draft turn and return the PICK answer. "+
			"Does not advance the match."),
		mcp.WithString("snapshot", mcp.Required(), mcp.Description(snapshotHelp)),
	)
}

func planBattleTool() mcp.Tool {
	return mcp.NewTool("plan_battle",
		mcp.WithDescription("Plan the summons, attacks and item uses of a battle turn. "+
			"Does not advance the match."),
		mcp.WithString("snapshot", mcp.Required(), mcp.Description(snapshotHelp)),
	)
}

func decideTool() mcp.Tool {
	return mcp.NewTool("decide",
		mcp.WithDescription("Play the next turn of the current match, draft or battle, and return the answer line "+
			"with the planner trace. Starts a match if none is running."),
		mcp.WithString("snapshot", mcp.Required(), mcp.Description(snapshotHelp)),
	)
}

func newMatchTool() mcp.Tool {
	return mcp.NewTool("new_match",
		mcp.WithDescription("Discard the current match and start counting turns from 1 again."),
	)
}

func getTraceTool() mcp.Tool {
	return mcp.NewTool("get_trace",
		mcp.WithDescription("Return planner trace events of the current match not yet returned. Read-only."),
	)
}

// --- Tool handlers ---

func handleDraftPick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := snapshotArg(request)
	if errResult != nil {
		return errResult, nil
	}
	if !s.IsDraft() {
		return mcp.NewToolResultErrorf("Snapshot is a battle turn (mana %d). Use plan_battle or decide.", s.Me.Mana), nil
	}
	if len(s.Cards) == 0 {
		return mcp.NewToolResultError("Draft snapshot offers no cards."), nil
	}

	trace := log.NewMemoryLogger()
	p := newPlanner(trace)
	a := p.Draft(s.Turn, s.Cards)

	scores := make([]int, len(s.Cards))
	for i, c := range s.Cards {
		scores[i] = game.DraftScore(c)
	}
	resp := &ToolResponse{
		Snapshot: duelnet.BuildSnapshotView(s),
		Decision: duelnet.BuildDecisionView(game.Decision{Turn: s.Turn, Draft: true, Actions: []game.Action{a}}),
		Scores:   scores,
		Events:   duelnet.BuildEventViews(trace.Events()),
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePlanBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := snapshotArg(request)
	if errResult != nil {
		return errResult, nil
	}
	if s.IsDraft() {
		return mcp.NewToolResultError("Snapshot is a draft turn (mana 0). Use draft_pick or decide."), nil
	}

	trace := log.NewMemoryLogger()
	p := newPlanner(trace)
	actions := p.PlanBattle(s.Me, s.Opponent, s.Cards)

	resp := &ToolResponse{
		Snapshot: duelnet.BuildSnapshotView(s),
		Decision: duelnet.BuildDecisionView(game.Decision{Turn: s.Turn, Actions: actions}),
		Events:   duelnet.BuildEventViews(trace.Events()),
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleDecide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, errResult := snapshotArg(request)
	if errResult != nil {
		return errResult, nil
	}

	m := currentMatch()
	d, events := m.Decide(s)
	s.Turn = d.Turn

	resp := &ToolResponse{
		Match:    m.ID,
		Snapshot: duelnet.BuildSnapshotView(s),
		Decision: duelnet.BuildDecisionView(d),
		Events:   duelnet.BuildEventViews(events),
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleNewMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	activeMatch = NewMatchSession(cfg.PlannerConfig(nil), logger)
	m := activeMatch
	logger.Info("match started", zap.String("match", m.ID))
	mu.Unlock()

	return mcp.NewToolResultText(respondJSON(&ToolResponse{Match: m.ID})), nil
}

func handleGetTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	m := activeMatch
	mu.Unlock()
	if m == nil {
		return mcp.NewToolResultError("No match is running. Use decide or new_match first."), nil
	}

	resp := &ToolResponse{
		Match:  m.ID,
		Events: duelnet.BuildEventViews(m.DrainEvents()),
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// --- Helpers ---

// snapshotArg parses the snapshot argument, or returns the tool error to
// send back.
func snapshotArg(request mcp.CallToolRequest) (game.Snapshot, *mcp.CallToolResult) {
	text := request.GetString("snapshot", "")
	if text == "" {
		return game.Snapshot{}, mcp.NewToolResultError("snapshot is required")
	}
	s, err := proto.ParseSnapshot(text)
	if err != nil {
		return game.Snapshot{}, mcp.NewToolResultErrorf("Invalid snapshot: %v", err)
	}
	return s, nil
}

func newPlanner(trace log.EventLogger) *game.Planner {
	mu.Lock()
	defer mu.Unlock()
	return game.NewPlanner(cfg.PlannerConfig(trace))
}

func currentMatch() *MatchSession {
	mu.Lock()
	defer mu.Unlock()
	if activeMatch == nil {
		activeMatch = NewMatchSession(cfg.PlannerConfig(nil), logger)
		logger.Info("match started", zap.String("match", activeMatch.ID))
	}
	return activeMatch
}
