package scene

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/game_object"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.addLocked(obj)
		}
	}
}

// WithLights adds initial lights to the scene.
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithClearColor sets the background color.
//
// Parameters:
//   - r, g, b, a: the color components in [0, 1]
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClearColor(r, g, b, a float64) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = [4]float64{r, g, b, a}
	}
}

// WithComputeWorkers sets the number of worker goroutines used during the parallel
// CPU skinning phase of Prepare. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}
