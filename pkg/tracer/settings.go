// Package tracer bakes direct and indirect light into lightmap charts and light probes.
package tracer

import (
	"errors"
	"fmt"
	"runtime"
)

// MaxBounces caps the number of indirect bounces
const MaxBounces = 8

// ErrInvalidSettings is returned by Settings.Validate
var ErrInvalidSettings = errors.New("invalid tracing settings")

// Settings configures a bake
type Settings struct {
	// NumTasks is the number of parallel partitions; 0 means one per CPU
	NumTasks int `yaml:"numTasks"`
	// Seed is the base of every per-element random stream
	Seed int64 `yaml:"seed"`

	NumDirectSamples        int `yaml:"numDirectSamples"`
	NumIndirectChartSamples int `yaml:"numIndirectChartSamples"`
	NumIndirectProbeSamples int `yaml:"numIndirectProbeSamples"`
	NumBounces              int `yaml:"numBounces"`

	// RayPositionOffset pushes ray origins off surfaces to avoid self intersection
	RayPositionOffset float64 `yaml:"rayPositionOffset"`
	// ShadowLeakBias lifts the preprocessing probe rays off the surface
	ShadowLeakBias float64 `yaml:"shadowLeakBias"`
	// ShadowLeakOffset is how far behind a back face a leaking texel is moved
	ShadowLeakOffset float64 `yaml:"shadowLeakOffset"`
}

// DefaultSettings returns settings suitable for a preview bake
func DefaultSettings() Settings {
	return Settings{
		NumTasks:                runtime.NumCPU(),
		Seed:                    1,
		NumDirectSamples:        10,
		NumIndirectChartSamples: 10,
		NumIndirectProbeSamples: 64,
		NumBounces:              2,
		RayPositionOffset:       0.001,
		ShadowLeakBias:          0.001,
		ShadowLeakOffset:        0.001,
	}
}

// Validate checks that the settings can be used for a bake
func (s Settings) Validate() error {
	switch {
	case s.NumTasks < 0:
		return fmt.Errorf("%w: numTasks must not be negative, got %d", ErrInvalidSettings, s.NumTasks)
	case s.NumDirectSamples < 1:
		return fmt.Errorf("%w: numDirectSamples must be at least 1, got %d", ErrInvalidSettings, s.NumDirectSamples)
	case s.NumIndirectChartSamples < 1:
		return fmt.Errorf("%w: numIndirectChartSamples must be at least 1, got %d", ErrInvalidSettings, s.NumIndirectChartSamples)
	case s.NumIndirectProbeSamples < 1:
		return fmt.Errorf("%w: numIndirectProbeSamples must be at least 1, got %d", ErrInvalidSettings, s.NumIndirectProbeSamples)
	case s.NumBounces < 1 || s.NumBounces > MaxBounces:
		return fmt.Errorf("%w: numBounces must be in [1, %d], got %d", ErrInvalidSettings, MaxBounces, s.NumBounces)
	case s.RayPositionOffset < 0 || s.ShadowLeakBias < 0 || s.ShadowLeakOffset < 0:
		return fmt.Errorf("%w: offsets must not be negative", ErrInvalidSettings)
	}
	return nil
}
