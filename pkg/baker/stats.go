package baker

import "time"

// StageStats is the wall time of one bake stage
type StageStats struct {
	Name     string
	Duration time.Duration
}

// Stats contains statistics about a bake
type Stats struct {
	RunID          string        // Unique id of the bake, repeated in every log line
	NumCharts      int           // Number of lightmap charts
	NumLights      int           // Number of directional lights
	NumProbes      int           // Number of light probes
	OccupiedTexels int           // Texels covered by geometry over all charts
	Stages         []StageStats  // Completed stages in order
	Total          time.Duration // Wall time of all stages
}

// StageDuration returns the duration of the named stage, or 0 if it did not run
func (s Stats) StageDuration(name string) time.Duration {
	for _, stage := range s.Stages {
		if stage.Name == name {
			return stage.Duration
		}
	}
	return 0
}
