// Package proto reads turn snapshots from the referee's text protocol and
// writes the bot's answers back.
package proto

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/duelbot/internal/game"
)

// ErrMalformed is wrapped by every error caused by bad input.
var ErrMalformed = errors.New("malformed input")

const (
	playerFields = 4
	cardFields   = 11
)

// Reader decodes one snapshot per turn.
type Reader struct {
	sc   *bufio.Scanner
	line int
	turn int
}

// NewReader creates a reader over the referee's output.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Reader{sc: sc}
}

// ParseSnapshot decodes a single snapshot from text.
func ParseSnapshot(text string) (game.Snapshot, error) {
	return NewReader(strings.NewReader(text)).ReadSnapshot()
}

// ReadSnapshot reads the next turn. It returns io.EOF when the input ends
// cleanly between turns.
func (r *Reader) ReadSnapshot() (game.Snapshot, error) {
	var s game.Snapshot

	fields, err := r.next()
	if err == io.EOF {
		return s, io.EOF
	}
	if err != nil {
		return s, err
	}
	if s.Me, err = r.player(fields); err != nil {
		return s, err
	}

	if fields, err = r.required("opponent"); err != nil {
		return s, err
	}
	if s.Opponent, err = r.player(fields); err != nil {
		return s, err
	}

	// "<opponentHand>" or "<opponentHand> <opponentActions>"
	if fields, err = r.required("opponent hand"); err != nil {
		return s, err
	}
	counts, err := r.ints(fields, 1, 2)
	if err != nil {
		return s, err
	}
	s.OpponentHand = counts[0]
	if len(counts) == 2 {
		for i := 0; i < counts[1]; i++ {
			if !r.sc.Scan() {
				return s, r.unexpectedEOF("opponent actions")
			}
			r.line++
			s.OpponentActions = append(s.OpponentActions, strings.TrimSpace(r.sc.Text()))
		}
	}

	if fields, err = r.required("card count"); err != nil {
		return s, err
	}
	count, err := r.ints(fields, 1, 1)
	if err != nil {
		return s, err
	}
	if count[0] < 0 {
		return s, r.malformed("negative card count %d", count[0])
	}

	s.Cards = make([]game.CardInstance, 0, count[0])
	seen := make(map[int]bool, count[0])
	for i := 0; i < count[0]; i++ {
		if fields, err = r.required("card"); err != nil {
			return s, err
		}
		c, err := r.card(fields)
		if err != nil {
			return s, err
		}
		// Draft offers all carry instance ID -1, so only battle IDs are unique.
		if c.ID >= 0 {
			if seen[c.ID] {
				return s, r.malformed("duplicate instance id %d", c.ID)
			}
			seen[c.ID] = true
		}
		s.Cards = append(s.Cards, c)
	}

	r.turn++
	s.Turn = r.turn
	return s, nil
}

// next returns the fields of the next non-blank line.
func (r *Reader) next() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		fields := strings.Fields(r.sc.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}
	return nil, io.EOF
}

// required is next, but running out of input is an error.
func (r *Reader) required(what string) ([]string, error) {
	fields, err := r.next()
	if err == io.EOF {
		return nil, r.unexpectedEOF(what)
	}
	return fields, err
}

func (r *Reader) player(fields []string) (game.PlayerState, error) {
	v, err := r.ints(fields, playerFields, playerFields)
	if err != nil {
		return game.PlayerState{}, err
	}
	return game.PlayerState{Health: v[0], Mana: v[1], Deck: v[2], Runes: v[3]}, nil
}

func (r *Reader) card(fields []string) (game.CardInstance, error) {
	if len(fields) != cardFields {
		return game.CardInstance{}, r.malformed("card has %d fields, want %d", len(fields), cardFields)
	}
	abilities, err := ParseAbilities(fields[7])
	if err != nil {
		return game.CardInstance{}, fmt.Errorf("line %d: %w", r.line, err)
	}
	numeric := append(append([]string{}, fields[:7]...), fields[8:]...)
	v, err := r.ints(numeric, len(numeric), len(numeric))
	if err != nil {
		return game.CardInstance{}, err
	}

	c := game.CardInstance{
		Number:               v[0],
		ID:                   v[1],
		Location:             game.Location(v[2]),
		Type:                 game.CardType(v[3]),
		Cost:                 v[4],
		Attack:               v[5],
		Defense:              v[6],
		Abilities:            abilities,
		MyHealthChange:       v[7],
		OpponentHealthChange: v[8],
		CardDraw:             v[9],
	}
	switch c.Location {
	case game.LocationHand, game.LocationMySide, game.LocationOpponentSide:
	default:
		return c, r.malformed("unknown location %d", v[2])
	}
	if c.Type < game.CardTypeCreature || c.Type > game.CardTypeBlueItem {
		return c, r.malformed("unknown card type %d", v[3])
	}
	return c, nil
}

func (r *Reader) ints(fields []string, min, max int) ([]int, error) {
	if len(fields) < min || len(fields) > max {
		if min == max {
			return nil, r.malformed("got %d fields, want %d", len(fields), min)
		}
		return nil, r.malformed("got %d fields, want %d-%d", len(fields), min, max)
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, r.malformed("field %d: %q is not an integer", i+1, f)
		}
		out[i] = n
	}
	return out, nil
}

func (r *Reader) malformed(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", r.line, fmt.Sprintf(format, args...), ErrMalformed)
}

func (r *Reader) unexpectedEOF(what string) error {
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("line %d: reading %s: %w", r.line, what, err)
	}
	return fmt.Errorf("line %d: reading %s: %w", r.line, what, io.ErrUnexpectedEOF)
}
