package model

import "github.com/go-gl/mathgl/mgl32"

// --- Transform & Skeleton Types ---

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation mgl32.Vec3

	// Rotation is the orientation as a unit quaternion.
	Rotation mgl32.Quat

	// Scale is the scale factor along each axis.
	Scale mgl32.Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes the transform as T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Bone represents a single joint in a skeleton hierarchy.
type Bone struct {
	// Name is the joint's node name. Animation files are bound to a skeleton by this name.
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	// Parents always precede their children in Skeleton.Bones.
	ParentIndex int32

	// InverseBindMatrix transforms from model space to bone space at bind pose.
	InverseBindMatrix mgl32.Mat4

	// Rest is the bone's local transform in the file's default pose. Components no
	// playing clip animates fall back to it.
	Rest Transform

	// BaseTransform is the accumulated transform of non-joint ancestor nodes. Only root
	// bones use it; it is the identity when the root has no such ancestors.
	BaseTransform mgl32.Mat4
}

// Skeleton represents a bone hierarchy for skeletal animation.
type Skeleton struct {
	// Bones is the array of all bones in the skeleton, parents first.
	Bones []Bone

	// RootBoneIndices are indices of bones with no parent.
	RootBoneIndices []int32

	// BoneNameToIndex maps bone names to their indices for quick lookup.
	BoneNameToIndex map[string]int32
}

// BoneIndex looks up a bone by name.
func (s *Skeleton) BoneIndex(name string) (int32, bool) {
	if s == nil {
		return -1, false
	}
	idx, ok := s.BoneNameToIndex[name]
	return idx, ok
}

// RestPose returns a fresh copy of every bone's rest transform.
func (s *Skeleton) RestPose() []Transform {
	pose := make([]Transform, len(s.Bones))
	for i := range s.Bones {
		pose[i] = s.Bones[i].Rest
	}
	return pose
}

// --- Animation Types ---

// Interpolation selects how values between two keyframes are computed.
type Interpolation uint8

const (
	// InterpolationLinear blends neighbouring keys (slerp for rotations).
	InterpolationLinear Interpolation = iota
	// InterpolationStep holds the previous key until the next one.
	InterpolationStep
)

// AnimationClip represents a single animation (guard, sword slash, kick, run, ...).
type AnimationClip struct {
	// Name is the clip identifier as stored in the source file.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// Channels contains animation data for each animated bone.
	Channels []AnimationChannel
}

// AnimationChannel contains keyframe data for a single bone.
type AnimationChannel struct {
	// BoneIndex is the index of the bone this channel animates.
	BoneIndex int32

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation.
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe

	PositionInterpolation Interpolation
	RotationInterpolation Interpolation
	ScaleInterpolation    Interpolation
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value mgl32.Vec3
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the rotation at this keyframe.
	Value mgl32.Quat
}

// --- Mesh Types ---

// SkinnedVertex is a bind-pose vertex with up to four joint influences.
type SkinnedVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3

	// Joints are bone indices into the owning skeleton (not into the glTF skin's joint list).
	Joints [4]uint32

	// Weights are the influence of each joint. They sum to 1 for skinned vertices
	// and to 0 for static ones.
	Weights [4]float32
}

// Mesh is one drawable primitive of a model.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the bind-pose vertices.
	Vertices []SkinnedVertex

	// Indices are the triangle list indices.
	Indices []uint32

	// BaseColor is the material's base color factor (RGBA).
	BaseColor mgl32.Vec4

	// BoundingMin is the minimum corner of the bind-pose bounding box.
	BoundingMin mgl32.Vec3

	// BoundingMax is the maximum corner of the bind-pose bounding box.
	BoundingMax mgl32.Vec3
}
