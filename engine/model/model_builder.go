package model

// ModelBuilderOption is a functional option for configuring a model.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSkeleton sets the bone hierarchy.
//
// Parameters:
//   - skeleton: the skeleton, or nil for static models
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithSkeleton(skeleton *Skeleton) ModelBuilderOption {
	return func(m *model) {
		m.skeleton = skeleton
	}
}

// WithMeshes appends drawable meshes.
func WithMeshes(meshes ...*Mesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = append(m.meshes, meshes...)
	}
}

// WithAnimations appends bundled animation clips.
func WithAnimations(clips ...*AnimationClip) ModelBuilderOption {
	return func(m *model) {
		m.animations = append(m.animations, clips...)
	}
}
