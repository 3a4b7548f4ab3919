package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/bot"
	"github.com/peterkuimelis/duelbot/internal/config"
	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/log"
	duelnet "github.com/peterkuimelis/duelbot/internal/net"
	"github.com/peterkuimelis/duelbot/internal/proto"
)

const maxSnapshotBytes = 1 << 20

// DecideRequest is the JSON body of POST /api/decide. A text/plain body
// is taken as the snapshot itself.
type DecideRequest struct {
	Snapshot string `json:"snapshot"`
}

// DecideResponse is returned by POST /api/decide.
type DecideResponse struct {
	Snapshot *duelnet.SnapshotView `json:"snapshot"`
	Decision *duelnet.DecisionView `json:"decision"`
	Events   []duelnet.EventView   `json:"events"`
}

// Server is the duelbot HTTP front end.
type Server struct {
	cfg    config.Config
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok\n")
	})

	// API endpoints
	s.mux.HandleFunc("POST /api/decide", s.handleDecide)
	s.mux.HandleFunc("GET /api/config", s.handleConfig)

	// One match per WebSocket connection
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP tags every request with an id and logs it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", id)
	s.logger.Debug("request", zap.String("id", id), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	s.mux.ServeHTTP(w, r)
}

func (s *Server) newPlanner(trace log.EventLogger) *game.Planner {
	return game.NewPlanner(s.cfg.PlannerConfig(trace))
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req DecideRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		text = req.Snapshot
	}

	snap, err := proto.ParseSnapshot(text)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty snapshot")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trace := log.NewMemoryLogger()
	d := bot.Step(snap, s.newPlanner(trace), s.logger)

	writeJSON(w, http.StatusOK, DecideResponse{
		Snapshot: duelnet.BuildSnapshotView(snap),
		Decision: duelnet.BuildDecisionView(d),
		Events:   duelnet.BuildEventViews(trace.Events()),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	data, err := s.cfg.Marshal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not render config")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	logger := s.logger.With(zap.String("match", uuid.NewString()))
	logger.Info("websocket match started")

	trace := log.NewMemoryLogger()
	planner := s.newPlanner(trace)
	turn := 0

	for {
		var msg duelnet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				logger.Info("websocket match finished", zap.Int("turns", turn))
			} else {
				logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		reply := s.playTurn(msg, &turn, planner, trace, logger)
		if err := wsjson.Write(ctx, wsConn, reply); err != nil {
			logger.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

// playTurn answers one WebSocket message. Bad messages get an error reply
// and do not advance the turn count.
func (s *Server) playTurn(msg duelnet.ClientMessage, turn *int, planner *game.Planner, trace *log.MemoryLogger, logger *zap.Logger) duelnet.ServerMessage {
	if msg.Type != "turn" {
		return duelnet.ServerMessage{Type: "error", Error: "expected a turn message, got " + msg.Type}
	}
	snap, err := proto.ParseSnapshot(msg.Snapshot)
	if err != nil {
		return duelnet.ServerMessage{Type: "error", Error: err.Error()}
	}

	*turn++
	snap.Turn = *turn
	trace.Reset()
	d := bot.Step(snap, planner, logger)
	logger.Debug("turn decided", zap.Int("turn", d.Turn), zap.String("actions", d.Line()))

	return duelnet.ServerMessage{
		Type:     "decision",
		Decision: duelnet.BuildDecisionView(d),
		Events:   duelnet.BuildEventViews(trace.Events()),
	}
}

// ListenAndServe starts the HTTP server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	stop := context.AfterFunc(ctx, func() { srv.Shutdown(context.Background()) })
	defer stop()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
