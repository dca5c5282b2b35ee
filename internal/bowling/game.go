// internal/bowling/game.go
//
// Game owns the ten turns of one player's game, routes each ball to the
// active turn and computes the score on demand.
//
// Notes:
//   - Turns live in a fixed array; lookahead reads neighbours by index.
//   - Score is recomputed from the recorded throws on every call.
//   - Balls not yet thrown count as 0, so mid-game scores are provisional.

package bowling

import "fmt"

// TurnCount is the number of turns in a game.
const TurnCount = 10

// Game tracks a single player's throws across ten turns.
type Game struct {
	turns   [TurnCount]*Turn
	current int
}

// NewGame returns a game with ten empty turns and the cursor on turn 1.
func NewGame() *Game {
	g := &Game{}
	for i := range g.turns {
		g.turns[i] = newTurn(i+1, i == TurnCount-1)
	}
	return g
}

// Replay builds a game from a throw log, stopping at the first rejected ball.
func Replay(pins []int) (*Game, error) {
	g := NewGame()
	for i, p := range pins {
		if _, err := g.RecordThrow(p); err != nil {
			return nil, fmt.Errorf("throw %d: %w", i+1, err)
		}
	}
	return g, nil
}

// RecordThrow routes one ball to the current turn. It returns true while the
// same turn expects another ball and false once the turn has ended.
func (g *Game) RecordThrow(pins int) (bool, error) {
	if g.IsComplete() {
		return false, ErrGameAlreadyComplete
	}
	continues, err := g.turns[g.current].AddThrow(pins)
	if err != nil {
		return false, err
	}
	if !continues && g.current < TurnCount-1 {
		g.current++
	}
	return continues, nil
}

// IsComplete reports whether the tenth turn is closed.
func (g *Game) IsComplete() bool {
	return g.turns[TurnCount-1].IsComplete()
}

// CurrentTurnNumber is the active turn (1..10), or 0 once the game is over.
func (g *Game) CurrentTurnNumber() int {
	if g.IsComplete() {
		return 0
	}
	return g.turns[g.current].Number()
}

// NextThrowNumber is the next ball of the active turn (1..3), or 0 once the
// game is over.
func (g *Game) NextThrowNumber() int {
	if g.IsComplete() {
		return 0
	}
	return g.turns[g.current].NextThrowNumber()
}

// Turn returns the turn at index i (0-based).
func (g *Game) Turn(i int) *Turn { return g.turns[i] }

// Throws returns every recorded pin count in the order thrown.
func (g *Game) Throws() []int {
	var out []int
	for _, t := range g.turns {
		for _, th := range t.throws {
			out = append(out, th.pins)
		}
	}
	return out
}

// Score sums every turn's contribution.
func (g *Game) Score() int {
	total := 0
	for i := range g.turns {
		total += g.contribution(i)
	}
	return total
}

// contribution is turn i's pins plus its strike or spare bonus.
func (g *Game) contribution(i int) int {
	t := g.turns[i]
	score := t.RawPinTotal()
	if t.final {
		return score
	}
	next := g.turns[i+1]
	switch {
	case t.IsSpare():
		score += next.pinsAt(0)
	case t.IsStrike():
		if next.IsStrike() && i < TurnCount-2 {
			score += next.RawPinTotal() + g.turns[i+2].pinsAt(0)
		} else {
			score += next.pinsAt(0) + next.pinsAt(1)
		}
	}
	return score
}

// decided reports whether turn i's contribution can no longer change.
func (g *Game) decided(i int) bool {
	t := g.turns[i]
	if !t.IsComplete() {
		return false
	}
	if t.final {
		return true
	}
	next := g.turns[i+1]
	switch {
	case t.IsSpare():
		return len(next.throws) >= 1
	case t.IsStrike():
		if next.IsStrike() && i < TurnCount-2 {
			return len(g.turns[i+2].throws) >= 1
		}
		return len(next.throws) >= 2
	}
	return true
}
