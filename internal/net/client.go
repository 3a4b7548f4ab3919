package net

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/peterkuimelis/duelbot/internal/game"
	"github.com/peterkuimelis/duelbot/internal/proto"
)

// Replay plays recorded snapshots against a bot server at addr, acting as
// the referee. It returns the answer line for each turn in order.
func Replay(ctx context.Context, addr string, turns []game.Snapshot) ([]string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	w := proto.NewWriter(conn)
	replies := bufio.NewReader(conn)
	answers := make([]string, 0, len(turns))

	for _, s := range turns {
		if err := w.WriteSnapshot(s); err != nil {
			return answers, fmt.Errorf("send turn %d: %w", s.Turn, err)
		}
		line, err := replies.ReadString('\n')
		if err != nil {
			if ctx.Err() != nil {
				return answers, ctx.Err()
			}
			return answers, fmt.Errorf("read answer for turn %d: %w", s.Turn, err)
		}
		answers = append(answers, strings.TrimRight(line, "\r\n"))
	}
	return answers, nil
}
