package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	skeleton       *Skeleton
	meshes         []*Mesh
	animations     []*AnimationClip
	boundsMin      mgl32.Vec3
	boundsMax      mgl32.Vec3
	boundingRadius float32
}

// Model defines the interface for a loaded character or prop.
// A Model is a CPU-side container of meshes, the skeleton hierarchy and any
// animation clips bundled with the file. It is produced by the Loader.
type Model interface {
	// Name retrieves the model identifier.
	Name() string

	// Skinned reports whether this model has a skeleton.
	Skinned() bool

	// Skeleton retrieves the bone hierarchy for this model.
	// Returns nil for static models.
	Skeleton() *Skeleton

	// Meshes retrieves the drawable meshes.
	Meshes() []*Mesh

	// Animations retrieves all animation clips bundled with this model.
	Animations() []*AnimationClip

	// AnimationCount returns the number of bundled animation clips.
	AnimationCount() int

	// AnimationNames returns the names of all bundled animation clips, in file order.
	AnimationNames() []string

	// Animation looks up a bundled clip by name.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - *AnimationClip: the clip, or nil
	//   - bool: whether the clip exists
	Animation(name string) (*AnimationClip, bool)

	// Bounds returns the bind-pose bounding box of all meshes.
	//
	// Returns:
	//   - min, max: the box corners
	Bounds() (min, max mgl32.Vec3)

	// BoundingRadius returns the radius of the sphere around the box center that
	// encloses every mesh.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a Model from the given options and computes its bounds.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the assembled model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	m.computeBounds()
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.skeleton != nil && len(m.skeleton.Bones) > 0
}

func (m *model) Skeleton() *Skeleton {
	return m.skeleton
}

func (m *model) Meshes() []*Mesh {
	return m.meshes
}

func (m *model) Animations() []*AnimationClip {
	return m.animations
}

func (m *model) AnimationCount() int {
	return len(m.animations)
}

func (m *model) AnimationNames() []string {
	names := make([]string, len(m.animations))
	for i, clip := range m.animations {
		names[i] = clip.Name
	}
	return names
}

func (m *model) Animation(name string) (*AnimationClip, bool) {
	for _, clip := range m.animations {
		if clip.Name == name {
			return clip, true
		}
	}
	return nil, false
}

func (m *model) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.boundsMin, m.boundsMax
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// computeBounds merges the mesh boxes.
func (m *model) computeBounds() {
	if len(m.meshes) == 0 {
		return
	}
	inf := float32(math.Inf(1))
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, mesh := range m.meshes {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], mesh.BoundingMin[i])
			hi[i] = max(hi[i], mesh.BoundingMax[i])
		}
	}
	m.boundsMin, m.boundsMax = lo, hi
	m.boundingRadius = hi.Sub(lo).Len() / 2
}
