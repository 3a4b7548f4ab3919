package proto

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/duelbot/internal/game"
)

// Writer sends one decision line per turn.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteDecision writes the decision line and flushes so the referee sees
// it before its timeout.
func (w *Writer) WriteDecision(d game.Decision) error {
	if _, err := fmt.Fprintln(w.w, d.Line()); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteSnapshot encodes a snapshot in the referee's format. Used to feed
// recorded turns to a remote bot.
func (w *Writer) WriteSnapshot(s game.Snapshot) error {
	if _, err := io.WriteString(w.w, FormatSnapshot(s)); err != nil {
		return err
	}
	return w.w.Flush()
}

// FormatSnapshot renders a snapshot as the referee would send it.
func FormatSnapshot(s game.Snapshot) string {
	var sb strings.Builder
	for _, p := range []game.PlayerState{s.Me, s.Opponent} {
		fmt.Fprintf(&sb, "%d %d %d %d\n", p.Health, p.Mana, p.Deck, p.Runes)
	}
	if len(s.OpponentActions) > 0 {
		fmt.Fprintf(&sb, "%d %d\n", s.OpponentHand, len(s.OpponentActions))
		for _, a := range s.OpponentActions {
			sb.WriteString(a)
			sb.WriteByte('\n')
		}
	} else {
		fmt.Fprintf(&sb, "%d\n", s.OpponentHand)
	}
	fmt.Fprintf(&sb, "%d\n", len(s.Cards))
	for _, c := range s.Cards {
		fmt.Fprintf(&sb, "%d %d %d %d %d %d %d %s %d %d %d\n",
			c.Number, c.ID, int(c.Location), int(c.Type), c.Cost, c.Attack, c.Defense,
			c.Abilities, c.MyHealthChange, c.OpponentHealthChange, c.CardDraw)
	}
	return sb.String()
}
