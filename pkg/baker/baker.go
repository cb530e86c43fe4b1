// Package baker runs the full lightmap and light probe bake in stage order.
package baker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/log"
	"github.com/df07/go-lightmap-baker/pkg/probe"
	"github.com/df07/go-lightmap-baker/pkg/raytracer"
	"github.com/df07/go-lightmap-baker/pkg/scene"
	"github.com/df07/go-lightmap-baker/pkg/tracer"
)

// ErrInvalidInput is returned when the bake input is inconsistent
var ErrInvalidInput = errors.New("invalid bake input")

// Input is everything a bake reads. Buffers and Probes are modified in place.
type Input struct {
	Scene   *raytracer.Scene
	Buffers []*lightmap.GeometryBuffer
	Mapping []int // Geometry buffer id -> scene geometry id
	Lights  []tracer.DirectionalLight

	// Optional; ProbeMesh requires Probes
	Probes    *probe.Collection
	ProbeMesh *probe.TetrahedralMesh
}

// InputFromScene bakes the scene's sun into its charts and probes
func InputFromScene(s *scene.Scene) Input {
	return Input{
		Scene:   s.Raytracer,
		Buffers: s.Buffers,
		Mapping: s.Mapping,
		Lights: []tracer.DirectionalLight{{
			Direction:    s.Sun.Direction,
			Color:        s.Sun.Color,
			BakeDirect:   true,
			BakeIndirect: true,
		}},
		Probes:    s.Probes,
		ProbeMesh: s.ProbeMesh,
	}
}

// Validate checks that the input can be baked
func (in Input) Validate() error {
	if in.Scene == nil {
		return fmt.Errorf("%w: missing raytracer scene", ErrInvalidInput)
	}
	if in.ProbeMesh != nil && in.Probes == nil {
		return fmt.Errorf("%w: probe mesh without probes", ErrInvalidInput)
	}
	if in.ProbeMesh != nil && len(in.ProbeMesh.Vertices) != in.Probes.Size() {
		return fmt.Errorf("%w: probe mesh has %d vertices for %d probes", ErrInvalidInput, len(in.ProbeMesh.Vertices), in.Probes.Size())
	}

	for i, light := range in.Lights {
		if !light.Direction.IsFinite() || light.Direction.Length() == 0 {
			return fmt.Errorf("%w: light %d has invalid direction %v", ErrInvalidInput, i, light.Direction)
		}
		if !light.Color.IsFinite() {
			return fmt.Errorf("%w: light %d has invalid color %v", ErrInvalidInput, i, light.Color)
		}
	}

	numGeometries := len(in.Scene.Geometries())
	for chart, buffer := range in.Buffers {
		for _, id := range buffer.GeometryIDs {
			if id == 0 {
				continue
			}
			if id < 0 || id >= len(in.Mapping) {
				return fmt.Errorf("%w: chart %d references geometry buffer id %d without mapping", ErrInvalidInput, chart, id)
			}
			if geomID := in.Mapping[id]; geomID < 0 || geomID >= numGeometries {
				return fmt.Errorf("%w: geometry buffer id %d maps to unknown geometry %d", ErrInvalidInput, id, geomID)
			}
		}
	}
	return nil
}

// Result holds the baked buffers, indexed like Input.Buffers
type Result struct {
	Direct   []*lightmap.BakedDirect
	Indirect []*lightmap.BakedIndirect
	Probes   *probe.Collection
	Stats    Stats
}

// Baker runs bakes with fixed settings
type Baker struct {
	settings tracer.Settings
	logger   log.Logger
}

// New creates a baker
func New(settings tracer.Settings, logger log.Logger) *Baker {
	return &Baker{settings: settings, logger: logger}
}

// Bake runs a bake with a logger named "baker"
func Bake(ctx context.Context, input Input, settings tracer.Settings) (*Result, error) {
	return New(settings, log.New("baker")).Bake(ctx, input)
}

type stage struct {
	name string
	run  func()
}

// Bake runs every stage in order. ctx is checked between stages; a stage that
// has started always runs to completion.
func (b *Baker) Bake(ctx context.Context, input Input) (*Result, error) {
	if err := b.settings.Validate(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	settings := b.settings
	runID := uuid.NewString()
	result := &Result{
		Probes: input.Probes,
		Stats: Stats{
			RunID:          runID,
			NumCharts:      len(input.Buffers),
			NumLights:      len(input.Lights),
			OccupiedTexels: occupiedTexels(input.Buffers),
		},
	}
	if input.Probes != nil {
		result.Stats.NumProbes = input.Probes.Size()
	}
	hasProbes := input.Probes != nil && !input.Probes.Empty()

	stages := []stage{
		{"preprocess", func() {
			for _, buffer := range input.Buffers {
				tracer.PreprocessGeometryBuffer(buffer, input.Scene, input.Mapping, settings)
			}
		}},
		{"initialize", func() {
			result.Direct = tracer.InitializeBakedDirect(input.Buffers)
			result.Indirect = tracer.InitializeBakedIndirect(input.Buffers)
		}},
		{"emission", func() {
			for i, buffer := range input.Buffers {
				tracer.BakeEmissionLight(result.Direct[i], buffer, settings)
			}
		}},
	}
	for i, light := range input.Lights {
		stages = append(stages, stage{fmt.Sprintf("direct light %d", i), func() {
			for chart, buffer := range input.Buffers {
				tracer.BakeDirectionalLightForCharts(result.Direct[chart], buffer, input.Scene, input.Mapping, light, settings)
			}
			if hasProbes {
				tracer.BakeDirectionalLightForLightProbes(input.Probes, input.Scene, light, settings)
			}
		}})
	}
	if hasProbes {
		stages = append(stages, stage{"indirect probes", func() {
			tracer.BakeIndirectLightForLightProbes(input.Probes, result.Direct, input.Scene, settings)
		}})
	}
	stages = append(stages,
		stage{"indirect charts", func() {
			for chart, buffer := range input.Buffers {
				tracer.BakeIndirectLightForCharts(result.Indirect[chart], result.Direct, buffer,
					input.ProbeMesh, input.Probes, input.Scene, input.Mapping, settings)
			}
		}},
		stage{"normalize", func() {
			for _, indirect := range result.Indirect {
				indirect.Normalize()
			}
		}},
	)

	b.logger.Infof("bake %s: %d charts, %d occupied texels, %d probes, %d lights",
		runID, result.Stats.NumCharts, result.Stats.OccupiedTexels, result.Stats.NumProbes, result.Stats.NumLights)

	start := time.Now()
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			b.logger.Warningf("bake %s cancelled before %s", runID, s.name)
			return nil, fmt.Errorf("bake cancelled before %s: %w", s.name, err)
		}

		stageStart := time.Now()
		s.run()
		elapsed := time.Since(stageStart)
		result.Stats.Stages = append(result.Stats.Stages, StageStats{Name: s.name, Duration: elapsed})
		b.logger.Debugf("bake %s: %s completed in %v", runID, s.name, elapsed)
	}
	result.Stats.Total = time.Since(start)

	b.logger.Infof("bake %s completed in %v", runID, result.Stats.Total)
	return result, nil
}

func occupiedTexels(buffers []*lightmap.GeometryBuffer) int {
	count := 0
	for _, buffer := range buffers {
		count += buffer.NumOccupied()
	}
	return count
}
