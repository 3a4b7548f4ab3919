package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/duelbot/internal/config"
	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/log"
	"github.com/peterkuimelis/duelbot/internal/proto"
)

const draftTurn = `30 0 0 25
30 0 0 25
0
3
1 -1 0 0 2 1 1 ------ 0 0 0
2 -1 0 0 1 4 1 ------ 0 0 0
3 -1 0 0 3 4 1 ------ 0 0 0
`

const battleTurn = `30 5 20 20
30 5 20 20
5 1
SUMMON 9
4
1 1 0 0 3 2 2 ------ 0 0 0
2 2 0 0 2 5 1 -C---- 0 0 0
3 3 0 0 4 1 3 ------ 0 0 0
4 9 -1 0 2 1 2 ---G-- 0 0 0
`

func parse(t *testing.T, text string) game.Snapshot {
	t.Helper()
	s, err := proto.ParseSnapshot(text)
	require.NoError(t, err)
	return s
}

func startServer(t *testing.T, cfg config.Config) (*Server, context.CancelFunc, <-chan error) {
	t.Helper()
	cfg.Serve.Addr = "127.0.0.1:0"
	srv := &Server{Config: cfg}
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	return srv, cancel, done
}

func TestServerReplay(t *testing.T) {
	srv, cancel, done := startServer(t, config.Default())
	defer cancel()

	turns := []game.Snapshot{parse(t, draftTurn), parse(t, battleTurn)}
	answers, err := Replay(context.Background(), srv.Addr().String(), turns)
	require.NoError(t, err)
	assert.Equal(t, []string{"PICK 1", "SUMMON 2;SUMMON 1;ATTACK 2 9"}, answers)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServerConnectionsAreIndependent(t *testing.T) {
	cfg := config.Default()
	cfg.Planner.BoardCap = 1
	srv, cancel, _ := startServer(t, cfg)
	defer cancel()

	turn := []game.Snapshot{parse(t, battleTurn)}
	for i := 0; i < 3; i++ {
		answers, err := Replay(context.Background(), srv.Addr().String(), turn)
		require.NoError(t, err)
		assert.Equal(t, []string{"SUMMON 2;ATTACK 2 9"}, answers)
	}
}

func TestServerTrace(t *testing.T) {
	var trace bytes.Buffer
	cfg := config.Default()
	cfg.Log.Trace = true
	cfg.Serve.Addr = "127.0.0.1:0"
	srv := &Server{Config: cfg, TraceOut: &trace}
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	_, err := Replay(context.Background(), srv.Addr().String(), []game.Snapshot{parse(t, draftTurn)})
	require.NoError(t, err)
	cancel()
	require.NoError(t, <-done)

	assert.Contains(t, trace.String(), "T1")
}

// flakyListener hands out one connection, then fails every Accept.
type flakyListener struct {
	conn net.Conn
	used bool
}

func (l *flakyListener) Accept() (net.Conn, error) {
	if !l.used {
		l.used = true
		return l.conn, nil
	}
	return nil, errors.New("too many open files")
}

func (l *flakyListener) Close() error   { return nil }
func (l *flakyListener) Addr() net.Addr { return l.conn.LocalAddr() }

func TestServeWaitsForMatchesWhenAcceptFails(t *testing.T) {
	serverSide, referee := net.Pipe()
	srv := &Server{Config: config.Default()}

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), &flakyListener{conn: serverSide}) }()

	select {
	case err := <-done:
		t.Fatalf("Serve returned with a match still open: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, referee.Close())
	select {
	case err := <-done:
		assert.ErrorContains(t, err, "accept")
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the match ended")
	}
}

func TestReplayNoServer(t *testing.T) {
	_, err := Replay(context.Background(), "127.0.0.1:1", nil)
	assert.ErrorContains(t, err, "connect")
}

func TestBuildViews(t *testing.T) {
	s := parse(t, battleTurn)
	sv := BuildSnapshotView(s)
	assert.Equal(t, "battle", sv.Phase)
	assert.Equal(t, []string{"SUMMON 9"}, sv.OpponentActions)
	require.Len(t, sv.Cards, 4)
	assert.Equal(t, "-C----", sv.Cards[1].Abilities)
	assert.Equal(t, "Opponent Side", sv.Cards[3].Location)

	mem := log.NewMemoryLogger()
	d := game.NewPlanner(game.PlannerConfig{Logger: mem}).Decide(s)
	dv := BuildDecisionView(d)
	assert.Equal(t, "SUMMON 2;SUMMON 1;ATTACK 2 9", dv.Line)
	require.Len(t, dv.Actions, 3)
	assert.Equal(t, ActionView{Type: "Attack Creature", Card: 2, Target: 9, Desc: "ATTACK 2 9"}, dv.Actions[2])

	ev := BuildEventViews(mem.Events())
	require.Len(t, ev, len(mem.Events()))
	assert.Equal(t, 1, ev[0].Seq)

	data, err := json.Marshal(ServerMessage{Type: "decision", Decision: dv})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"line":"SUMMON 2;SUMMON 1;ATTACK 2 9"`)
	assert.NotContains(t, string(data), `"error"`)
}

func TestEmptyDecisionViewHasActionsArray(t *testing.T) {
	data, err := json.Marshal(BuildDecisionView(game.Decision{Turn: 4}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"actions":[]`)
	assert.Contains(t, string(data), `"line":"PASS"`)
}
