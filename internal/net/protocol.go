package net

// JSON views shared by the MCP tools and the web front end.

// --- Snapshot views ---

// SnapshotView is one turn's input as JSON.
type SnapshotView struct {
	Turn            int        `json:"turn"`
	Phase           string     `json:"phase"` // "draft" or "battle"
	Me              PlayerView `json:"me"`
	Opponent        PlayerView `json:"opponent"`
	OpponentHand    int        `json:"opponent_hand"`
	OpponentActions []string   `json:"opponent_actions,omitempty"`
	Cards           []CardView `json:"cards"`
}

// PlayerView is one player's public resources.
type PlayerView struct {
	Health int `json:"health"`
	Mana   int `json:"mana"`
	Deck   int `json:"deck"`
	Runes  int `json:"runes"`
}

// CardView describes a card instance.
type CardView struct {
	Number               int    `json:"number"`
	ID                   int    `json:"id"`
	Location             string `json:"location"`
	Type                 string `json:"type"`
	Cost                 int    `json:"cost"`
	Attack               int    `json:"attack"`
	Defense              int    `json:"defense"`
	Abilities            string `json:"abilities"`
	MyHealthChange       int    `json:"my_health_change,omitempty"`
	OpponentHealthChange int    `json:"opponent_health_change,omitempty"`
	CardDraw             int    `json:"card_draw,omitempty"`
}

// --- Decision views ---

// DecisionView is the bot's answer for one turn.
type DecisionView struct {
	Turn    int          `json:"turn"`
	Draft   bool         `json:"draft"`
	Line    string       `json:"line"` // protocol text, e.g. "SUMMON 3;ATTACK 3 -1"
	Actions []ActionView `json:"actions"`
}

// ActionView is a single action inside a decision.
type ActionView struct {
	Type   string `json:"type"`
	Card   int    `json:"card"`
	Target int    `json:"target"`
	Desc   string `json:"desc"`
}

// EventView is a planner trace event.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Card    int    `json:"card"`
	Target  int    `json:"target"`
	Details string `json:"details"`
}

// --- WebSocket messages ---

// ClientMessage is sent by a WebSocket client, one per turn.
type ClientMessage struct {
	Type string `json:"type"` // "turn"

	// Referee-format snapshot text.
	Snapshot string `json:"snapshot"`
}

// ServerMessage answers a ClientMessage.
type ServerMessage struct {
	Type string `json:"type"` // "decision" or "error"

	// For "decision"
	Decision *DecisionView `json:"decision,omitempty"`
	Events   []EventView   `json:"events,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}
