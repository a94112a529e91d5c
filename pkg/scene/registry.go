package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Lookup for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func() *Scene
}

var registry = map[string]SceneInfo{}

func register(name, description string, build func() *Scene) {
	registry[name] = SceneInfo{Name: name, Description: description, build: build}
}

func init() {
	register("single-sphere", "Unit sphere lit by one point light", NewSingleSphereScene)
	register("empty", "No geometry, sky gradient environment", NewEmptyScene)
	register("cornell", "Cornell box with a ceiling area light and two diffuse spheres", NewCornellScene)
	register("cornell-mirror", "Cornell box with a mirror sphere", NewCornellMirrorScene)
	register("cornell-point", "Cornell box lit by a point light", NewCornellPointScene)
	register("sphere-grid", "Grid of colored spheres on a ground quad", NewSphereGridScene)
}

// Lookup builds a fresh instance of the named scene. The returned scene has
// no BVH until Build is called.
func Lookup(name string) (*Scene, error) {
	info, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return info.build(), nil
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns information about every registered scene sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, registry[name])
	}
	return infos
}
