package animator

import (
	"slices"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// animator is the implementation of the Animator interface.
type animator struct {
	skeleton  *model.Skeleton
	timeScale float32

	actions map[*model.AnimationClip]*Action
	active  []*Action

	pose   []model.Transform
	world  []mgl32.Mat4
	joints []mgl32.Mat4
	accum  []boneAccumulator
}

// Animator defines the public interface for the animation system.
//
// The Animator is a mixer bound to one skeleton. It owns one Action per clip, advances
// every running action each frame, blends their sampled poses by weight and produces the
// joint matrices used to skin the model's meshes.
type Animator interface {
	// Skeleton returns the skeleton this animator poses.
	Skeleton() *model.Skeleton

	// ClipAction returns the action for a clip, creating it on first use. Repeated calls
	// with the same clip return the same action.
	//
	// Parameters:
	//   - clip: the clip to play; its channels must index this animator's skeleton
	//
	// Returns:
	//   - *Action: the action for the clip
	ClipAction(clip *model.AnimationClip) *Action

	// ActiveActions returns the actions currently scheduled, in activation order.
	ActiveActions() []*Action

	// Update advances all running actions by deltaTime seconds, resolves fades and
	// recomputes the blended pose and joint matrices.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the previous update
	Update(deltaTime float32)

	// Pose returns the local bone transforms computed by the last Update.
	Pose() []model.Transform

	// JointMatrices returns world * inverseBind for every bone, as computed by the last Update.
	JointMatrices() []mgl32.Mat4

	// StopAll stops every action and returns the skeleton to its rest pose on the next Update.
	StopAll()
}

var _ Animator = &animator{}

// NewAnimator creates an animator for the given skeleton. The initial pose is the rest pose.
//
// Parameters:
//   - skeleton: the bone hierarchy to pose
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the new animator
func NewAnimator(skeleton *model.Skeleton, options ...AnimatorBuilderOption) Animator {
	if skeleton == nil {
		skeleton = &model.Skeleton{}
	}
	n := len(skeleton.Bones)
	a := &animator{
		skeleton:  skeleton,
		timeScale: 1,
		actions:   make(map[*model.AnimationClip]*Action),
		pose:      skeleton.RestPose(),
		world:     make([]mgl32.Mat4, n),
		joints:    make([]mgl32.Mat4, n),
		accum:     make([]boneAccumulator, n),
	}
	for _, opt := range options {
		opt(a)
	}
	a.computeJoints()
	return a
}

func (a *animator) Skeleton() *model.Skeleton {
	return a.skeleton
}

func (a *animator) ClipAction(clip *model.AnimationClip) *Action {
	if action, ok := a.actions[clip]; ok {
		return action
	}
	action := newAction(clip, a)
	a.actions[clip] = action
	return action
}

func (a *animator) ActiveActions() []*Action {
	return slices.Clone(a.active)
}

func (a *animator) Update(deltaTime float32) {
	dt := deltaTime * a.timeScale

	// Actions may leave the active list while advancing (a completed fade out).
	for _, action := range slices.Clone(a.active) {
		action.advance(dt)
	}

	a.blend()
	a.computeJoints()
}

func (a *animator) Pose() []model.Transform {
	return a.pose
}

func (a *animator) JointMatrices() []mgl32.Mat4 {
	return a.joints
}

func (a *animator) StopAll() {
	for _, action := range slices.Clone(a.active) {
		action.Stop()
	}
}

func (a *animator) activate(action *Action) {
	if !slices.Contains(a.active, action) {
		a.active = append(a.active, action)
	}
}

func (a *animator) deactivate(action *Action) {
	if i := slices.Index(a.active, action); i >= 0 {
		a.active = slices.Delete(a.active, i, i+1)
	}
}

// blend samples every weighted action and mixes the results into a.pose.
func (a *animator) blend() {
	for i := range a.accum {
		a.accum[i] = boneAccumulator{}
	}

	for _, action := range a.active {
		w := action.Weight()
		if w <= 0 {
			continue
		}
		for _, ch := range action.clip.Channels {
			if ch.BoneIndex < 0 || int(ch.BoneIndex) >= len(a.accum) {
				continue
			}
			acc := &a.accum[ch.BoneIndex]
			if len(ch.PositionKeys) > 0 {
				acc.translation.add(sampleVector(ch.PositionKeys, ch.PositionInterpolation, action.time), w)
			}
			if len(ch.RotationKeys) > 0 {
				acc.rotation.add(sampleRotation(ch.RotationKeys, ch.RotationInterpolation, action.time), w)
			}
			if len(ch.ScaleKeys) > 0 {
				acc.scale.add(sampleVector(ch.ScaleKeys, ch.ScaleInterpolation, action.time), w)
			}
		}
	}

	for i := range a.pose {
		rest := a.skeleton.Bones[i].Rest
		acc := &a.accum[i]
		a.pose[i] = model.Transform{
			Translation: acc.translation.resolve(rest.Translation),
			Rotation:    acc.rotation.resolve(rest.Rotation),
			Scale:       acc.scale.resolve(rest.Scale),
		}
	}
}

// computeJoints walks the hierarchy (parents first) to build world and joint matrices.
func (a *animator) computeJoints() {
	for i, bone := range a.skeleton.Bones {
		local := a.pose[i].Matrix()
		if bone.ParentIndex < 0 {
			base := bone.BaseTransform
			if base == (mgl32.Mat4{}) {
				base = mgl32.Ident4()
			}
			a.world[i] = base.Mul4(local)
		} else {
			a.world[i] = a.world[bone.ParentIndex].Mul4(local)
		}
		a.joints[i] = a.world[i].Mul4(bone.InverseBindMatrix)
	}
}

// boneAccumulator collects weighted samples for each component of one bone.
type boneAccumulator struct {
	translation vectorAccumulator
	rotation    quatAccumulator
	scale       vectorAccumulator
}

// vectorAccumulator keeps a running weighted average; a component no action touched
// keeps its rest value, and a total weight below one leaves the remainder to the rest value.
type vectorAccumulator struct {
	value  mgl32.Vec3
	weight float32
}

func (v *vectorAccumulator) add(sample mgl32.Vec3, w float32) {
	if v.weight == 0 {
		v.value = sample
	} else {
		mix := w / (v.weight + w)
		v.value = v.value.Add(sample.Sub(v.value).Mul(mix))
	}
	v.weight += w
}

func (v *vectorAccumulator) resolve(rest mgl32.Vec3) mgl32.Vec3 {
	if v.weight == 0 {
		return rest
	}
	if v.weight < 1 {
		return rest.Add(v.value.Sub(rest).Mul(v.weight))
	}
	return v.value
}

type quatAccumulator struct {
	value  mgl32.Quat
	weight float32
}

func (q *quatAccumulator) add(sample mgl32.Quat, w float32) {
	if q.weight == 0 {
		q.value = sample
	} else {
		q.value = slerp(q.value, sample, w/(q.weight+w))
	}
	q.weight += w
}

func (q *quatAccumulator) resolve(rest mgl32.Quat) mgl32.Quat {
	if q.weight == 0 {
		return rest
	}
	if q.weight < 1 {
		return slerp(rest, q.value, q.weight)
	}
	return q.value
}
