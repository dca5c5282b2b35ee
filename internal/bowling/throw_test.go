package bowling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThrow(t *testing.T) {
	for n := -5; n <= 15; n++ {
		th, err := NewThrow(n, 1)
		if n < 0 || n > MaxPins {
			assert.ErrorIs(t, err, ErrInvalidPinCount, "pins=%d", n)
			continue
		}
		require.NoError(t, err, "pins=%d", n)
		assert.Equal(t, n, th.Pins())
		assert.Equal(t, 1, th.Seq())
	}
}
