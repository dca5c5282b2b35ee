// internal/bowling/turn.go
//
// Turn (a frame) owns up to three throws and decides when it is over.
// Turns 1–9 close after a strike or after two balls. Turn 10 grants a bonus
// ball after a strike or a spare; the bonus balls are scored as part of the
// turn itself, never as lookahead.

package bowling

import "fmt"

// Turn holds the throws of one frame.
type Turn struct {
	number int
	final  bool
	throws []Throw
}

func newTurn(number int, final bool) *Turn {
	balls := 2
	if final {
		balls = 3
	}
	return &Turn{number: number, final: final, throws: make([]Throw, 0, balls)}
}

// Number is the 1-based turn number.
func (t *Turn) Number() int { return t.number }

// IsFinal reports whether this is the tenth turn.
func (t *Turn) IsFinal() bool { return t.final }

// Throws returns a copy of the recorded throws.
func (t *Turn) Throws() []Throw {
	out := make([]Throw, len(t.throws))
	copy(out, t.throws)
	return out
}

// AddThrow records the next ball and reports whether the turn expects another.
// A rejected ball leaves the turn untouched.
func (t *Turn) AddThrow(pins int) (bool, error) {
	if t.IsComplete() {
		return false, fmt.Errorf("turn %d: %w", t.number, ErrTurnAlreadyComplete)
	}
	th, err := NewThrow(pins, len(t.throws)+1)
	if err != nil {
		return false, err
	}
	if standing := t.standing(); pins > standing {
		return false, fmt.Errorf("%w: %d with %d pins standing in turn %d",
			ErrInvalidPinCount, pins, standing, t.number)
	}
	t.throws = append(t.throws, th)
	return !t.IsComplete(), nil
}

// standing is the number of pins a ball may knock down. Only the second
// ball after a non-strike first ball is limited by the rack; every other ball
// (the first, and the tenth turn's bonus balls) faces a full rack.
func (t *Turn) standing() int {
	if len(t.throws) == 1 && !t.IsStrike() {
		return MaxPins - t.throws[0].pins
	}
	return MaxPins
}

// IsComplete reports whether the turn has satisfied its completion rule.
func (t *Turn) IsComplete() bool {
	n := len(t.throws)
	if !t.final {
		return n == 2 || (n == 1 && t.IsStrike())
	}
	if n < 2 {
		return false
	}
	if t.IsStrike() || t.IsSpare() {
		return n == 3
	}
	return true
}

// IsStrike reports whether the first ball knocked down the full rack.
func (t *Turn) IsStrike() bool {
	return len(t.throws) > 0 && t.throws[0].pins == MaxPins
}

// IsSpare reports whether the first two balls cleared the rack without a strike.
func (t *Turn) IsSpare() bool {
	return len(t.throws) >= 2 && !t.IsStrike() &&
		t.throws[0].pins+t.throws[1].pins == MaxPins
}

// RawPinTotal sums every recorded ball, bonus balls included.
func (t *Turn) RawPinTotal() int {
	total := 0
	for _, th := range t.throws {
		total += th.pins
	}
	return total
}

// NextThrowNumber is the sequence number of the next ball, or 0 once complete.
func (t *Turn) NextThrowNumber() int {
	if t.IsComplete() {
		return 0
	}
	return len(t.throws) + 1
}

// pinsAt returns the pins of the i-th recorded ball, or 0 if not yet thrown.
func (t *Turn) pinsAt(i int) int {
	if i < len(t.throws) {
		return t.throws[i].pins
	}
	return 0
}
