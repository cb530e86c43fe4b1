package tracer

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelFor_CoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		n, numTasks int
	}{
		{0, 4},
		{1, 4},
		{10, 1},
		{10, 3},
		{10, 10},
		{10, 32},
		{1000, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d,tasks=%d", tt.n, tt.numTasks), func(t *testing.T) {
			counts := make([]atomic.Int32, tt.n)
			parallelFor(tt.n, tt.numTasks, func(from, to int) {
				for i := from; i < to; i++ {
					counts[i].Add(1)
				}
			})
			for i := range counts {
				assert.Equal(t, int32(1), counts[i].Load(), "index %d", i)
			}
		})
	}
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
	assert.NoError(t, testSettings().Validate())

	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"Negative tasks", func(s *Settings) { s.NumTasks = -1 }},
		{"No direct samples", func(s *Settings) { s.NumDirectSamples = 0 }},
		{"No chart samples", func(s *Settings) { s.NumIndirectChartSamples = 0 }},
		{"No probe samples", func(s *Settings) { s.NumIndirectProbeSamples = 0 }},
		{"No bounces", func(s *Settings) { s.NumBounces = 0 }},
		{"Too many bounces", func(s *Settings) { s.NumBounces = MaxBounces + 1 }},
		{"Negative offset", func(s *Settings) { s.RayPositionOffset = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.modify(&settings)
			err := settings.Validate()
			assert.True(t, errors.Is(err, ErrInvalidSettings), "unexpected error %v", err)
		})
	}
}
