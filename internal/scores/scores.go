// internal/scores/scores.go
//
// Helpers shared by the scores store: date keys, the throw-log encoding used
// in the games table, and strike/spare counts for result rows.

// Package scores persists hosted games and finished results and serves the
// per-day leaderboard.
package scores

import (
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/bowling/internal/bowling"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// EncodeThrows stores a throw log as a comma-separated list.
func EncodeThrows(pins []int) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// DecodeThrows parses a log written by EncodeThrows.
func DecodeThrows(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// Marks counts strikes and spares in a game's frames.
func Marks(frames []bowling.Frame) (strikes, spares int) {
	for _, f := range frames {
		switch {
		case f.Strike:
			strikes++
		case f.Spare:
			spares++
		}
	}
	return strikes, spares
}
