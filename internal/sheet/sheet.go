// internal/sheet/sheet.go
//
// Score-sheet notation for bowling games.
//
// Responsibilities:
//   - Parse a sheet ("X 7/ 9- X81") or a plain pin list ("10, 7, 3") into
//     the pin counts a bowling.Game expects.
//   - Format a game's frames back into sheet notation.
//
// Notation:
//   X (or x)  strike
//   /         spare: the rest of the rack
//   - or 0    gutter ball
//   1–9       pins knocked down
// Spaces and '|' separate frames and are otherwise ignored.
//
// A string that contains a comma, or whose whitespace separated fields are
// all plain pin counts 0–10, is read as a list of integers instead
// ("10 7 2" is a strike then 7 and 2). Notation such as "81 72" has fields
// above 10 and stays notation; single-digit lists read the same either way.

package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/bowling/internal/bowling"
)

// ErrBadNotation is returned for symbols that are not valid at their position.
var ErrBadNotation = errors.New("bad sheet notation")

// Parse converts a sheet into pin counts. Each ball is checked by replaying it
// into a game, so core errors (too many pins, too many balls) are returned
// wrapped.
func Parse(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") || isPinList(s) {
		return parseList(s)
	}
	g := bowling.NewGame()
	var pins []int
	for i, r := range s {
		var p int
		switch {
		case r == ' ' || r == '\t' || r == '|':
			continue
		case r == 'X' || r == 'x':
			p = bowling.MaxPins
		case r == '-':
			p = 0
		case r >= '0' && r <= '9':
			p = int(r - '0')
		case r == '/':
			var ok bool
			if p, ok = spareBall(g); !ok {
				return nil, fmt.Errorf("%w: '/' at offset %d", ErrBadNotation, i)
			}
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrBadNotation, r, i)
		}
		if _, err := g.RecordThrow(p); err != nil {
			return nil, fmt.Errorf("ball %d: %w", len(pins)+1, err)
		}
		pins = append(pins, p)
	}
	return pins, nil
}

// spareBall returns the pins a '/' stands for in the current turn.
func spareBall(g *bowling.Game) (int, bool) {
	n := g.CurrentTurnNumber()
	if n == 0 {
		return 0, false
	}
	throws := g.Turn(n - 1).Throws()
	switch {
	case len(throws) == 1 && throws[0].Pins() < bowling.MaxPins:
	case len(throws) == 2 && throws[0].Pins() == bowling.MaxPins && throws[1].Pins() < bowling.MaxPins:
	default:
		return 0, false
	}
	return bowling.MaxPins - throws[len(throws)-1].Pins(), true
}

func listFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// isPinList reports whether every field is a pin count written the plain way
// ("0" to "10", no signs or leading zeros).
func isPinList(s string) bool {
	fields := listFields(s)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > bowling.MaxPins || strconv.Itoa(n) != f {
			return false
		}
	}
	return true
}

func parseList(s string) ([]int, error) {
	fields := listFields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadNotation, f)
		}
		out = append(out, n)
	}
	if _, err := bowling.Replay(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Format renders frames as sheet notation, one space between frames.
// Frames with no balls yet are omitted.
func Format(frames []bowling.Frame) string {
	parts := make([]string, 0, len(frames))
	for _, f := range frames {
		if len(f.Pins) == 0 {
			break
		}
		if f.Number == bowling.TurnCount {
			parts = append(parts, formatFinal(f.Pins))
			continue
		}
		parts = append(parts, formatRegular(f))
	}
	return strings.Join(parts, " ")
}

func formatRegular(f bowling.Frame) string {
	if f.Strike {
		return "X"
	}
	out := mark(f.Pins[0])
	if len(f.Pins) > 1 {
		if f.Spare {
			out += "/"
		} else {
			out += mark(f.Pins[1])
		}
	}
	return out
}

// formatFinal marks each ball of the tenth turn against the rack it faced.
func formatFinal(pins []int) string {
	var b strings.Builder
	fresh := true // the ball faces a full rack
	for i, p := range pins {
		if !fresh && pins[i-1]+p == bowling.MaxPins {
			b.WriteString("/")
			fresh = true
			continue
		}
		b.WriteString(mark(p))
		fresh = !fresh || p == bowling.MaxPins
	}
	return b.String()
}

func mark(p int) string {
	switch p {
	case bowling.MaxPins:
		return "X"
	case 0:
		return "-"
	}
	return strconv.Itoa(p)
}
