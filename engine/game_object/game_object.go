package game_object

import (
	"sync/atomic"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/animator"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id        uint64
	enabled   atomic.Bool
	mdl       model.Model
	animator  animator.Animator
	position  mgl32.Vec3
	yaw       float32
	scale     float32
	tint      mgl32.Vec4
	tintIsSet bool
}

// GameObject defines the interface for a placed model in the scene.
// The object owns the model's world placement (position, rotation about +Y, uniform scale)
// and, for skinned models, the Animator that poses its skeleton each frame.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Animator returns the Animator posing this object's skeleton.
	//
	// Returns:
	//   - animator.Animator: the associated Animator, or nil for static objects
	Animator() animator.Animator

	// Position returns the object's world position.
	Position() mgl32.Vec3

	// Yaw returns the rotation about the world +Y axis, in radians. The value is an
	// unbounded accumulator and is never wrapped.
	Yaw() float32

	// Scale returns the uniform scale factor.
	Scale() float32

	// Tint returns the color override for every mesh of the model.
	//
	// Returns:
	//   - mgl32.Vec4: the override color
	//   - bool: false when the meshes keep their material colors
	Tint() (mgl32.Vec4, bool)

	// ModelMatrix composes translation, yaw and scale as T * Ry * S.
	//
	// Returns:
	//   - mgl32.Mat4: the object-to-world matrix
	ModelMatrix() mgl32.Mat4

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object. A skinned model gets a fresh Animator
	// bound to its skeleton; a static model clears the Animator.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetAnimator replaces the Animator associated with this object.
	//
	// Parameters:
	//   - anim: the Animator to associate
	SetAnimator(anim animator.Animator)

	// SetPosition moves the object.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetDepth moves the object along the view axis, keeping X and Y.
	//
	// Parameters:
	//   - z: the new world Z coordinate
	SetDepth(z float32)

	// SetYaw sets the rotation about +Y.
	//
	// Parameters:
	//   - yaw: the angle in radians
	SetYaw(yaw float32)

	// SetScale sets the uniform scale factor.
	//
	// Parameters:
	//   - s: the scale factor
	SetScale(s float32)

	// SetTint overrides the mesh colors. Pass a zero alpha to restore material colors.
	//
	// Parameters:
	//   - c: the override color
	SetTint(c mgl32.Vec4)

	// Update advances the object's Animator, if any.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	Update(deltaTime float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: 1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Animator() animator.Animator {
	return g.animator
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) Yaw() float32 {
	return g.yaw
}

func (g *gameObject) Scale() float32 {
	return g.scale
}

func (g *gameObject) Tint() (mgl32.Vec4, bool) {
	return g.tint, g.tintIsSet
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	return common.ModelMatrix(g.position, g.yaw, g.scale)
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
	g.animator = nil
	if m != nil && m.Skinned() {
		g.animator = animator.NewAnimator(m.Skeleton())
	}
}

func (g *gameObject) SetAnimator(anim animator.Animator) {
	g.animator = anim
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetDepth(z float32) {
	g.position[2] = z
}

func (g *gameObject) SetYaw(yaw float32) {
	g.yaw = yaw
}

func (g *gameObject) SetScale(s float32) {
	g.scale = s
}

func (g *gameObject) SetTint(c mgl32.Vec4) {
	g.tint = c
	g.tintIsSet = c.W() > 0
}

func (g *gameObject) Update(deltaTime float32) {
	if g.animator != nil {
		g.animator.Update(deltaTime)
	}
}
