package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bowling/internal/bowling"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  []int
	}{
		{name: "strike and open", sheet: "X 72", want: []int{10, 7, 2}},
		{name: "spare", sheet: "7/ 54", want: []int{7, 3, 5, 4}},
		{name: "gutters", sheet: "-- 0-", want: []int{0, 0, 0, 0}},
		{name: "lowercase strike and bars", sheet: "x|x|9/", want: []int{10, 10, 9, 1}},
		{name: "gutter then spare", sheet: "-/", want: []int{0, 10}},
		{name: "comma list", sheet: "10, 7, 2", want: []int{10, 7, 2}},
		{name: "space list", sheet: "10 7 2", want: []int{10, 7, 2}},
		{name: "lone ten is a strike", sheet: "10", want: []int{10}},
		{name: "two-digit frames stay notation", sheet: "81 72", want: []int{8, 1, 7, 2}},
		{name: "single digits read the same", sheet: "5 4 3", want: []int{5, 4, 3}},
		{name: "leading zero stays notation", sheet: "09", want: []int{0, 9}},
		{name: "tenth strike then spare", sheet: "-- -- -- -- -- -- -- -- -- X7/",
			want: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 7, 3}},
		{name: "empty", sheet: "   ", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.sheet)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  error
	}{
		{name: "spare as first ball", sheet: "/", want: ErrBadNotation},
		{name: "spare after strike", sheet: "X /", want: ErrBadNotation},
		{name: "unknown symbol", sheet: "7?", want: ErrBadNotation},
		{name: "bad list entry", sheet: "10, seven", want: ErrBadNotation},
		{name: "too many pins", sheet: "78", want: bowling.ErrInvalidPinCount},
		{name: "list out of range", sheet: "11, 0", want: bowling.ErrInvalidPinCount},
		{name: "ball after the game", sheet: "X X X X X X X X X XXX X", want: bowling.ErrGameAlreadyComplete},
		{name: "double spare in tenth", sheet: "-- -- -- -- -- -- -- -- -- 5//", want: ErrBadNotation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.sheet)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		pins []int
		want string
	}{
		{name: "in progress", pins: []int{10, 7, 3, 9}, want: "X 7/ 9"},
		{name: "gutter and spare", pins: []int{0, 10, 0, 0}, want: "-/ --"},
		{name: "nothing thrown", pins: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := bowling.Replay(tt.pins)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(g.Frames()))
		})
	}
}

func TestFormat_RoundTripsSamples(t *testing.T) {
	list, err := Samples()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	for _, s := range list {
		t.Run(s.Name, func(t *testing.T) {
			pins, err := Parse(s.Sheet)
			require.NoError(t, err)
			g, err := bowling.Replay(pins)
			require.NoError(t, err)
			assert.True(t, g.IsComplete())
			assert.Equal(t, s.Sheet, Format(g.Frames()))

			score, err := s.Check()
			require.NoError(t, err)
			assert.Equal(t, s.Score, score)
		})
	}
}

func TestSample_CheckMismatch(t *testing.T) {
	s := Sample{Name: "wrong", Sheet: "X X X X X X X X X XXX", Score: 299}
	got, err := s.Check()
	assert.Error(t, err)
	assert.Equal(t, 300, got)
}
