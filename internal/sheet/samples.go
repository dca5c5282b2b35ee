// internal/sheet/samples.go
//
// Embedded sample games.
// Data is lazily decoded once via sync.Once from assets/samples.yaml.

package sheet

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/bowling/assets"
	"github.com/robalobadob/bowling/internal/bowling"
)

// Sample is a named game with its known final score.
type Sample struct {
	Name  string `yaml:"name" json:"name"`
	Sheet string `yaml:"sheet" json:"sheet"`
	Score int    `yaml:"score" json:"score"`
}

var (
	samplesOnce    sync.Once
	samples        []Sample
	samplesInitErr error
)

func initSamples() {
	raw, err := assets.SamplesYAML()
	if err != nil {
		samplesInitErr = err
		return
	}
	if err := yaml.Unmarshal(raw, &samples); err != nil {
		samplesInitErr = fmt.Errorf("decode samples: %w", err)
	}
}

// Samples returns the embedded sample games.
func Samples() ([]Sample, error) {
	samplesOnce.Do(initSamples)
	return samples, samplesInitErr
}

// Check replays the sample's sheet and compares the result with its score.
func (s Sample) Check() (int, error) {
	pins, err := Parse(s.Sheet)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.Name, err)
	}
	g, err := bowling.Replay(pins)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.Name, err)
	}
	if got := g.Score(); got != s.Score {
		return got, fmt.Errorf("%s: scored %d, want %d", s.Name, got, s.Score)
	}
	return s.Score, nil
}
