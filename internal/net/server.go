package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/bot"
	"github.com/peterkuimelis/duelbot/internal/config"
	"github.com/peterkuimelis/duelbot/internal/game"
)

// Server answers referee connections over TCP. Each connection is a
// separate match speaking the line protocol and gets its own planner.
type Server struct {
	Config   config.Config
	Logger   *zap.Logger
	TraceOut io.Writer // destination for planner traces when enabled

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// Listen binds the configured address. Addr is valid afterwards.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Config.Serve.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run listens (if needed) and serves until ctx is cancelled. Open matches
// are cancelled too and Run waits for them before returning.
func (s *Server) Run(ctx context.Context) error {
	if s.Addr() == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	return s.Serve(ctx, ln)
}

// Serve accepts matches on ln until ctx is cancelled or Accept fails. It
// always waits for open matches before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.TraceOut == nil {
		s.TraceOut = io.Discard
	}
	defer ln.Close()

	s.Logger.Info("waiting for referee connections", zap.String("addr", ln.Addr().String()))

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()

	context.AfterFunc(ctx, func() { conn.Close() })

	logger := s.Logger.With(
		zap.String("session", uuid.NewString()),
		zap.String("remote", conn.RemoteAddr().String()),
	)
	logger.Info("match started")

	planner := game.NewPlanner(s.Config.PlannerConfig(config.TraceLogger(s.Config.Log, s.TraceOut)))
	err := bot.Run(ctx, conn, conn, bot.Options{
		Planner:    planner,
		Logger:     logger,
		TurnBudget: s.Config.TurnBudget,
	})
	switch {
	case err == nil:
		logger.Info("match finished")
	case ctx.Err() != nil || errors.Is(err, net.ErrClosed):
		logger.Info("match interrupted")
	default:
		logger.Warn("match aborted", zap.Error(err))
	}
}
