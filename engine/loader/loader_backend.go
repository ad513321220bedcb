package loader

import "github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"

// loaderBackend defines the format-specific half of the loader.
type loaderBackend interface {
	// Load performs a full model import: meshes, skeleton, bundled clips.
	Load(path string) (model.Model, error)

	// LoadClip imports the first clip of a file bound to skeleton.
	LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error)
}
