package bowling

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestGame_Frames(t *testing.T) {
	g := NewGame()
	rollAll(t, g, 10, 7, 3, 9, 0, 10, 0, 8)

	want := []Frame{
		{Number: 1, Pins: []int{10}, Strike: true, Score: 20, Running: 20, Decided: true},
		{Number: 2, Pins: []int{7, 3}, Spare: true, Score: 19, Running: 39, Decided: true},
		{Number: 3, Pins: []int{9, 0}, Score: 9, Running: 48, Decided: true},
		{Number: 4, Pins: []int{10}, Strike: true, Score: 18, Running: 66, Decided: true},
		{Number: 5, Pins: []int{0, 8}, Score: 8, Running: 74, Decided: true},
		{Number: 6, Pins: []int{}, Running: 74},
		{Number: 7, Pins: []int{}, Running: 74},
		{Number: 8, Pins: []int{}, Running: 74},
		{Number: 9, Pins: []int{}, Running: 74},
		{Number: 10, Pins: []int{}, Running: 74},
	}
	if diff := cmp.Diff(want, g.Frames()); diff != "" {
		t.Errorf("Frames() mismatch (-want +got):\n%s", diff)
	}
}

func TestGame_FramesUndecided(t *testing.T) {
	g := NewGame()
	rollAll(t, g, 10, 10)

	frames := g.Frames()
	assert.False(t, frames[0].Decided, "double strike waits for turn 3")
	assert.False(t, frames[1].Decided)
	assert.Equal(t, 20, frames[0].Score)

	rollAll(t, g, 4)
	frames = g.Frames()
	assert.True(t, frames[0].Decided)
	assert.Equal(t, 24, frames[0].Score)
	assert.False(t, frames[1].Decided, "strike needs two balls")
	assert.False(t, frames[2].Decided)

	rollAll(t, g, 2)
	frames = g.Frames()
	assert.True(t, frames[1].Decided)
	assert.True(t, frames[2].Decided)
	assert.Equal(t, 16, frames[1].Score)
}

func TestGame_FramesRunningMatchesScore(t *testing.T) {
	g := NewGame()
	for _, p := range []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10} {
		rollAll(t, g, p)
		frames := g.Frames()
		assert.Equal(t, g.Score(), frames[TurnCount-1].Running)
	}
	frames := g.Frames()
	for i, f := range frames {
		assert.Equal(t, 30*(i+1), f.Running)
		assert.True(t, f.Decided)
	}
}
