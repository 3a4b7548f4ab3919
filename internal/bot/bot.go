// Package bot runs the per-turn loop: read a snapshot, decide, answer.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/proto"
)

// Options configures a Run.
type Options struct {
	Planner    *game.Planner
	Logger     *zap.Logger
	TurnBudget time.Duration // 0 disables the slow-turn warning
}

// Run answers turns from r on w until the input ends, the context is
// cancelled, or a read or write fails. A clean end of input returns nil.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	if opts.Planner == nil {
		opts.Planner = game.NewPlanner(game.PlannerConfig{})
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	reader := proto.NewReader(r)
	writer := proto.NewWriter(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s, err := readTurn(ctx, reader)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			opts.Logger.Debug("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read turn: %w", err)
		}

		start := time.Now()
		d := Step(s, opts.Planner, opts.Logger)
		elapsed := time.Since(start)

		if err := writer.WriteDecision(d); err != nil {
			return fmt.Errorf("write turn %d: %w", s.Turn, err)
		}

		fields := []zap.Field{
			zap.Int("turn", d.Turn),
			zap.Bool("draft", d.Draft),
			zap.String("actions", d.Line()),
			zap.Duration("elapsed", elapsed),
		}
		if opts.TurnBudget > 0 && elapsed > opts.TurnBudget {
			opts.Logger.Warn("turn over budget", append(fields, zap.Duration("budget", opts.TurnBudget))...)
		} else {
			opts.Logger.Debug("turn decided", fields...)
		}
	}
}

type readResult struct {
	s   game.Snapshot
	err error
}

// readTurn reads the next snapshot but gives up as soon as ctx is done.
// The abandoned read finishes in the background once r is closed.
func readTurn(ctx context.Context, reader *proto.Reader) (game.Snapshot, error) {
	ch := make(chan readResult, 1)
	go func() {
		s, err := reader.ReadSnapshot()
		ch <- readResult{s, err}
	}()
	select {
	case res := <-ch:
		return res.s, res.err
	case <-ctx.Done():
		return game.Snapshot{}, ctx.Err()
	}
}

// Step decides one snapshot. A draft turn with nothing offered passes
// instead of reaching the draft evaluator.
func Step(s game.Snapshot, p *game.Planner, logger *zap.Logger) game.Decision {
	if s.IsDraft() && len(s.Cards) == 0 {
		logger.Warn("draft turn without offers, passing", zap.Int("turn", s.Turn))
		return game.Decision{Turn: s.Turn, Draft: true}
	}
	return p.Decide(s)
}
