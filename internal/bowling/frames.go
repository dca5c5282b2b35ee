// internal/bowling/frames.go
//
// Per-turn breakdown of a game for score sheets and API responses.
// A frame is Decided once its turn is complete and every ball its bonus
// looks ahead to has been thrown.

package bowling

// Frame is a read-only view of one turn for score sheets.
type Frame struct {
	Number  int   `json:"number"`
	Pins    []int `json:"pins"`
	Strike  bool  `json:"strike"`
	Spare   bool  `json:"spare"`
	Score   int   `json:"score"`   // this turn's contribution
	Running int   `json:"running"` // cumulative through this turn
	Decided bool  `json:"decided"` // false while a ball it depends on is missing
}

// Frames breaks the current score down turn by turn. The last Running value
// always equals Score().
func (g *Game) Frames() []Frame {
	out := make([]Frame, TurnCount)
	running := 0
	for i, t := range g.turns {
		pins := make([]int, len(t.throws))
		for j, th := range t.throws {
			pins[j] = th.pins
		}
		score := g.contribution(i)
		running += score
		out[i] = Frame{
			Number:  t.number,
			Pins:    pins,
			Strike:  t.IsStrike(),
			Spare:   t.IsSpare(),
			Score:   score,
			Running: running,
			Decided: g.decided(i),
		}
	}
	return out
}
