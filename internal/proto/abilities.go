package proto

import (
	"fmt"

	"github.com/peterkuimelis/duelbot/internal/game"
)

// ParseAbilities decodes the referee's keyword token, e.g. "BC-G--".
// Letters are matched wherever they appear; '-' marks an absent keyword.
func ParseAbilities(token string) (game.Ability, error) {
	var a game.Ability
	for i := 0; i < len(token); i++ {
		if token[i] == '-' {
			continue
		}
		flag, ok := game.AbilityFromLetter(token[i])
		if !ok {
			return game.AbilityNone, fmt.Errorf("abilities %q: unknown keyword %q: %w", token, token[i], ErrMalformed)
		}
		a |= flag
	}
	return a, nil
}
