// internal/game/engine.go
//
// Session engine for hosted games.
// Responsibilities:
//   - Create new sessions with a fresh ten-turn game.
//   - Rebuild a session from a persisted throw log.
//   - Apply throws and report progress snapshots.
//
// Notes:
//   - Errors from the scoring core are returned unchanged so callers can
//     match them with errors.Is.
//   - A Session is not safe for concurrent use; the HTTP layer serialises
//     throws per session.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/bowling/internal/bowling"
)

const defaultPlayer = "player"

// New constructs a new session for player.
// If player is empty, a generic name is used.
func New(player string) *Session {
	player = strings.TrimSpace(player)
	if player == "" {
		player = defaultPlayer
	}
	return &Session{
		ID:        uuid.NewString(),
		Player:    player,
		StartedAt: time.Now().UTC(),
		Game:      bowling.NewGame(),
	}
}

// Restore rebuilds a session from its persisted throw log.
func Restore(id, player string, started time.Time, pins []int) (*Session, error) {
	g, err := bowling.Replay(pins)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}
	return &Session{ID: id, Player: player, StartedAt: started, Game: g}, nil
}

// ApplyThrow records one ball and returns the resulting progress.
//
// Validation rules (enforced by the core):
//   - pins must be within 0..10 and not exceed the pins left standing.
//   - the game must not be finished.
func (s *Session) ApplyThrow(pins int) (Progress, error) {
	continues, err := s.Game.RecordThrow(pins)
	if err != nil {
		return s.Snapshot(), err
	}
	p := s.Snapshot()
	p.Continues = continues
	return p, nil
}

// Snapshot reports the current progress without mutating the game.
func (s *Session) Snapshot() Progress {
	return Progress{
		GameID:    s.ID,
		Continues: s.Game.NextThrowNumber() > 1,
		Turn:      s.Game.CurrentTurnNumber(),
		NextThrow: s.Game.NextThrowNumber(),
		Score:     s.Game.Score(),
		State:     s.State(),
		Frames:    s.Game.Frames(),
	}
}

// State reports the coarse lifecycle state.
func (s *Session) State() State {
	if s.Game.IsComplete() {
		return StateFinished
	}
	return StatePlaying
}

// Finished reports whether the game is over.
func (s *Session) Finished() bool { return s.Game.IsComplete() }
