package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type sceneEntry struct {
	info  SceneInfo
	build func(opts RoomOptions) (*Scene, error)
}

var builtinScenes = map[string]sceneEntry{
	"room": {
		info: SceneInfo{
			ID:          "room",
			Name:        "Sunlit Room",
			Description: "Open-top room with a shadowing slab, a glass panel, an emissive strip and a probe grid",
		},
		build: NewRoomScene,
	},
	"quad": {
		info: SceneInfo{
			ID:          "quad",
			Name:        "Single Quad",
			Description: "One floor quad lit from straight above, without probes",
		},
		build: func(opts RoomOptions) (*Scene, error) {
			if opts.TexelsPerUnit <= 0 {
				return nil, fmt.Errorf("texel density must be positive, got %d", opts.TexelsPerUnit)
			}
			n := opts.TexelsPerUnit
			return NewQuadScene(n, n), nil
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewSceneByID builds a built-in scene
func NewSceneByID(id string, opts RoomOptions) (*Scene, error) {
	entry, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return entry.build(opts)
}
