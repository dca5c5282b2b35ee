// internal/game/types.go
//
// Core type definitions for a hosted bowling session.
// Defines:
//   - State: coarse lifecycle of a session (playing/finished).
//   - Session: one player's game as held by the server.
//   - Progress: the snapshot returned after every throw.

package game

import (
	"time"

	"github.com/robalobadob/bowling/internal/bowling"
)

// State is the coarse lifecycle of a session.
type State string

const (
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// Session holds the state of a single player's game.
type Session struct {
	ID        string        // Unique session identifier (uuid).
	Player    string        // Display name chosen when the game started.
	StartedAt time.Time     // UTC start time.
	Game      *bowling.Game // Scoring core; owned by this session.
}

// Progress is what a driver needs to decide what to prompt for next.
type Progress struct {
	GameID    string          `json:"gameId"`
	Continues bool            `json:"continues"`           // same turn expects another ball
	Turn      int             `json:"turn"`                // 0 once finished
	NextThrow int             `json:"nextThrow"`           // 0 once finished
	Score     int             `json:"score"`               // provisional until finished
	State     State           `json:"state"`
	Frames    []bowling.Frame `json:"frames,omitempty"`
}
