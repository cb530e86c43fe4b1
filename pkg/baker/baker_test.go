package baker

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/log"
	"github.com/df07/go-lightmap-baker/pkg/scene"
	"github.com/df07/go-lightmap-baker/pkg/tracer"
)

func init() {
	log.SetSink(io.Discard)
}

func testSettings() tracer.Settings {
	settings := tracer.DefaultSettings()
	settings.NumTasks = 2
	settings.NumDirectSamples = 1
	settings.NumIndirectChartSamples = 2
	settings.NumIndirectProbeSamples = 4
	return settings
}

// cancelLogger cancels a bake once the named stage has completed
type cancelLogger struct {
	log.Logger
	stage  string
	cancel context.CancelFunc
}

func (l *cancelLogger) Debugf(format string, v ...interface{}) {
	if len(v) >= 2 && v[1] == l.stage && strings.Contains(format, "completed") {
		l.cancel()
	}
}

func TestBake_QuadScene(t *testing.T) {
	s := scene.NewQuadScene(2, 2)

	result, err := Bake(context.Background(), InputFromScene(s), testSettings())
	require.NoError(t, err)

	require.Len(t, result.Direct, 1)
	require.Len(t, result.Indirect, 1)
	for i := range result.Direct[0].DirectLight {
		assert.InDelta(t, 1.0, result.Direct[0].DirectLight[i].X, 1e-12)
		// Open sky: every indirect path escapes
		assert.Equal(t, core.NewVec4(0, 0, 0, 1), result.Indirect[0].Light[i])
	}
	assert.Nil(t, result.Probes)

	stats := result.Stats
	_, err = uuid.Parse(stats.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.NumCharts)
	assert.Equal(t, 4, stats.OccupiedTexels)
	assert.Equal(t, 0, stats.NumProbes)

	var names []string
	for _, stage := range stats.Stages {
		names = append(names, stage.Name)
	}
	assert.Equal(t, []string{"preprocess", "initialize", "emission", "direct light 0", "indirect charts", "normalize"}, names)
	assert.GreaterOrEqual(t, stats.Total, stats.StageDuration("normalize"))
	assert.Zero(t, stats.StageDuration("indirect probes"))
}

func TestBake_RoomScene(t *testing.T) {
	s, err := scene.NewRoomScene(scene.DefaultRoomOptions())
	require.NoError(t, err)

	result, err := Bake(context.Background(), InputFromScene(s), testSettings())
	require.NoError(t, err)

	assert.Equal(t, 27, result.Stats.NumProbes)
	assert.Len(t, result.Direct, len(s.Buffers))
	assert.Contains(t, result.Stats.Stages, StageStats{Name: "indirect probes", Duration: result.Stats.StageDuration("indirect probes")})

	litProbes := 0
	for _, average := range result.Probes.IndirectAverage {
		require.True(t, average.IsFinite())
		if average.X+average.Y+average.Z > 0 {
			litProbes++
		}
	}
	assert.Greater(t, litProbes, 0)

	for chart, indirect := range result.Indirect {
		for i, light := range indirect.Light {
			if s.Buffers[chart].GeometryIDs[i] == 0 {
				continue
			}
			require.True(t, light.Vec3().IsFinite(), "chart %d texel %d", chart, i)
			require.Equal(t, 1.0, light.W, "chart %d texel %d", chart, i)
		}
	}
}

func TestBake_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Bake(ctx, InputFromScene(scene.NewQuadScene(1, 1)), testSettings())

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBake_CancelledBetweenStages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := &cancelLogger{Logger: log.New("test"), stage: "emission", cancel: cancel}

	result, err := New(testSettings(), logger).Bake(ctx, InputFromScene(scene.NewQuadScene(1, 1)))

	assert.Nil(t, result)
	require.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "direct light 0")
}

func TestBake_InvalidSettings(t *testing.T) {
	settings := testSettings()
	settings.NumBounces = tracer.MaxBounces + 1

	_, err := Bake(context.Background(), InputFromScene(scene.NewQuadScene(1, 1)), settings)

	assert.True(t, errors.Is(err, tracer.ErrInvalidSettings))
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
	}{
		{"Missing scene", func(in *Input) { in.Scene = nil }},
		{"Missing mapping", func(in *Input) { in.Mapping = in.Mapping[:1] }},
		{"Unknown geometry", func(in *Input) { in.Mapping = []int{-1, 5} }},
		{"Zero light direction", func(in *Input) { in.Lights[0].Direction = core.Vec3{} }},
		{"Infinite light color", func(in *Input) { in.Lights[0].Color = core.NewVec3(math.Inf(1), 0, 0) }},
		{"Mesh without probes", func(in *Input) {
			_, mesh, err := scene.ProbeGrid(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 2, 2, 2)
			require.NoError(t, err)
			in.ProbeMesh = mesh
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := InputFromScene(scene.NewQuadScene(1, 1))
			require.NoError(t, input.Validate())

			tt.modify(&input)
			err := input.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput), "unexpected error %v", err)
		})
	}
}
