// internal/bowling/throw.go
//
// Throw is the leaf of the scoring model: one ball, the pins it knocked down,
// and its 1-based position within its turn.

package bowling

import (
	"errors"
	"fmt"
)

// MaxPins is the number of pins in a full rack.
const MaxPins = 10

// Errors returned by the scoring core. All are sentinels so callers can
// compare with errors.Is; wrapped variants add context.
//
// ErrInvalidPinCount covers a ball outside [0, MaxPins] and also a second
// ball that knocks down more pins than were left standing after a non-strike
// first ball.
var (
	ErrInvalidPinCount     = errors.New("invalid pin count")
	ErrTurnAlreadyComplete = errors.New("turn already complete")
	ErrGameAlreadyComplete = errors.New("game already complete")
)

// Throw is an immutable record of a single ball.
type Throw struct {
	pins int
	seq  int
}

// NewThrow validates pins against [0, MaxPins] and builds a Throw.
func NewThrow(pins, seq int) (Throw, error) {
	if pins < 0 || pins > MaxPins {
		return Throw{}, fmt.Errorf("%w: %d", ErrInvalidPinCount, pins)
	}
	return Throw{pins: pins, seq: seq}, nil
}

// Pins returns the number of pins knocked down.
func (t Throw) Pins() int { return t.pins }

// Seq returns the throw's position within its turn, starting at 1.
func (t Throw) Seq() int { return t.seq }

func (t Throw) String() string {
	return fmt.Sprintf("throw %d: %d pins", t.seq, t.pins)
}
