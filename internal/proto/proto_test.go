package proto

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/duelbot/internal/game"
)

const draftTurn = `30 0 0 25
30 0 0 25
0
3
116 -1 0 0 12 8 8 BCDGLW 0 0 0
68 -1 0 0 6 7 5 ---G-- 0 0 0
151 -1 0 3 5 0 -99 BCDGLW 0 0 0
`

const battleTurn = `28 5 20 20
30 4 21 25
4 2
SUMMON 12
ATTACK 12 -1
5
3 12 1 0 1 2 1 ------ 0 0 0
17 14 0 0 2 5 1 -C---- 0 0 0
42 15 0 3 2 0 0 ------ 0 0 0
80 16 -1 0 3 1 4 ---G-- 0 0 0
9 18 0 0 4 1 3 ------ 0 0 0
`

func TestReadDraftSnapshot(t *testing.T) {
	s, err := ParseSnapshot(draftTurn)
	require.NoError(t, err)

	assert.True(t, s.IsDraft())
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, game.PlayerState{Health: 30, Mana: 0, Deck: 0, Runes: 25}, s.Me)
	assert.Equal(t, 0, s.OpponentHand)
	assert.Empty(t, s.OpponentActions)
	require.Len(t, s.Cards, 3)

	c := s.Cards[1]
	assert.Equal(t, 68, c.Number)
	assert.Equal(t, -1, c.ID)
	assert.Equal(t, game.CardTypeCreature, c.Type)
	assert.Equal(t, game.AbilityGuard, c.Abilities)
	assert.Equal(t, game.CardTypeBlueItem, s.Cards[2].Type)
	assert.Equal(t, -99, s.Cards[2].Defense)
}

func TestReadBattleSnapshot(t *testing.T) {
	s, err := ParseSnapshot(battleTurn)
	require.NoError(t, err)

	assert.False(t, s.IsDraft())
	assert.Equal(t, 4, s.OpponentHand)
	assert.Equal(t, []string{"SUMMON 12", "ATTACK 12 -1"}, s.OpponentActions)
	require.Len(t, s.Cards, 5)
	assert.Equal(t, game.LocationMySide, s.Cards[0].Location)
	assert.Equal(t, game.LocationOpponentSide, s.Cards[3].Location)
	assert.True(t, s.Cards[1].Abilities.Has(game.AbilityCharge))

	// #14 leaves 3 mana, too little for #18 but enough for the blue item.
	d := game.Decide(s)
	assert.Equal(t, "SUMMON 14;ATTACK 14 16;ATTACK 12 -1;USE 15 -1", d.Line())
}

func TestReadSeveralTurnsThenEOF(t *testing.T) {
	r := NewReader(strings.NewReader(draftTurn + "\n" + battleTurn))

	first, err := r.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Turn)

	second, err := r.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Turn)

	_, err = r.ReadSnapshot()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short player line", "30 1 2\n", ErrMalformed},
		{"non-numeric health", "x 1 2 3\n30 1 2 3\n0\n0\n", ErrMalformed},
		{"truncated after players", "30 1 2 3\n30 1 2 3\n", io.ErrUnexpectedEOF},
		{"missing cards", "30 1 2 3\n30 1 2 3\n0\n2\n1 1 0 0 1 1 1 ------ 0 0 0\n", io.ErrUnexpectedEOF},
		{"short card", "30 1 2 3\n30 1 2 3\n0\n1\n1 1 0 0 1 1 1 ------ 0 0\n", ErrMalformed},
		{"bad ability", "30 1 2 3\n30 1 2 3\n0\n1\n1 1 0 0 1 1 1 --X--- 0 0 0\n", ErrMalformed},
		{"bad location", "30 1 2 3\n30 1 2 3\n0\n1\n1 1 2 0 1 1 1 ------ 0 0 0\n", ErrMalformed},
		{"bad type", "30 1 2 3\n30 1 2 3\n0\n1\n1 1 0 7 1 1 1 ------ 0 0 0\n", ErrMalformed},
		{"duplicate id", "30 1 2 3\n30 1 2 3\n0\n2\n1 4 0 0 1 1 1 ------ 0 0 0\n2 4 1 0 1 1 1 ------ 0 0 0\n", ErrMalformed},
		{"negative count", "30 1 2 3\n30 1 2 3\n0\n-1\n", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), "line ")
		})
	}
}

func TestParseAbilities(t *testing.T) {
	a, err := ParseAbilities("BCDGLW")
	require.NoError(t, err)
	assert.Equal(t, "BCDGLW", a.String())

	a, err = ParseAbilities("G")
	require.NoError(t, err)
	assert.Equal(t, game.AbilityGuard, a)

	a, err = ParseAbilities("------")
	require.NoError(t, err)
	assert.Equal(t, game.AbilityNone, a)

	_, err = ParseAbilities("B?")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFormatSnapshotRoundTrip(t *testing.T) {
	for _, input := range []string{draftTurn, battleTurn} {
		s, err := ParseSnapshot(input)
		require.NoError(t, err)
		assert.Equal(t, input, FormatSnapshot(s))
	}
}

func TestWriteDecision(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteDecision(game.Decision{Draft: true, Actions: []game.Action{game.Pick(2)}}))
	require.NoError(t, w.WriteDecision(game.Decision{}))
	require.NoError(t, w.WriteDecision(game.Decision{Actions: []game.Action{game.Summon(3), game.AttackFace(3)}}))

	assert.Equal(t, "PICK 2\nPASS\nSUMMON 3;ATTACK 3 -1\n", buf.String())
}
