package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/bowling/internal/bowling"
)

func TestNew(t *testing.T) {
	s := New("  ada ")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "ada", s.Player)
	assert.Equal(t, StatePlaying, s.State())
	assert.False(t, s.StartedAt.IsZero())

	anon := New("")
	assert.Equal(t, defaultPlayer, anon.Player)
	assert.NotEqual(t, s.ID, anon.ID)
}

func TestSession_ApplyThrow(t *testing.T) {
	s := New("ada")

	p, err := s.ApplyThrow(7)
	require.NoError(t, err)
	assert.True(t, p.Continues)
	assert.Equal(t, 1, p.Turn)
	assert.Equal(t, 2, p.NextThrow)
	assert.Equal(t, 7, p.Score)
	assert.Equal(t, s.ID, p.GameID)

	p, err = s.ApplyThrow(3)
	require.NoError(t, err)
	assert.False(t, p.Continues)
	assert.Equal(t, 2, p.Turn)
	assert.Equal(t, 1, p.NextThrow)
	assert.Len(t, p.Frames, bowling.TurnCount)
	assert.True(t, p.Frames[0].Spare)

	p, err = s.ApplyThrow(11)
	assert.ErrorIs(t, err, bowling.ErrInvalidPinCount)
	assert.Equal(t, 10, p.Score, "rejected ball leaves the score alone")

	_, err = s.ApplyThrow(8)
	require.NoError(t, err)
	p, err = s.ApplyThrow(3)
	assert.ErrorIs(t, err, bowling.ErrInvalidPinCount, "only two pins left standing")
	assert.Equal(t, 2, p.NextThrow)
	assert.Equal(t, 26, p.Score)
}

func TestSession_PlayToFinish(t *testing.T) {
	s := New("ada")
	var p Progress
	var err error
	for i := 0; i < 12; i++ {
		p, err = s.ApplyThrow(10)
		require.NoError(t, err)
	}
	assert.Equal(t, StateFinished, p.State)
	assert.Equal(t, 300, p.Score)
	assert.Equal(t, 0, p.Turn)
	assert.Equal(t, 0, p.NextThrow)
	assert.True(t, s.Finished())

	_, err = s.ApplyThrow(0)
	assert.ErrorIs(t, err, bowling.ErrGameAlreadyComplete)
}

func TestRestore(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, err := Restore("abc", "ada", started, []int{10, 10, 5, 4})
	require.NoError(t, err)
	assert.Equal(t, 53, s.Snapshot().Score)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, started, s.StartedAt)
	assert.Equal(t, 4, s.Snapshot().Turn)

	_, err = Restore("bad", "ada", started, []int{3, 9})
	assert.ErrorIs(t, err, bowling.ErrInvalidPinCount)
}
