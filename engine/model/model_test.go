package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewModelMergesMeshBounds(t *testing.T) {
	m := NewModel(
		WithName("personaje"),
		WithMeshes(
			&Mesh{BoundingMin: mgl32.Vec3{-1, 0, -1}, BoundingMax: mgl32.Vec3{1, 1, 1}},
			&Mesh{BoundingMin: mgl32.Vec3{0, -2, 0}, BoundingMax: mgl32.Vec3{0.5, 3, 0.5}},
		),
	)

	lo, hi := m.Bounds()
	if lo != (mgl32.Vec3{-1, -2, -1}) || hi != (mgl32.Vec3{1, 3, 1}) {
		t.Fatalf("bounds: got %v %v", lo, hi)
	}
	want := float32(math.Sqrt(4+25+4)) / 2
	if got := m.BoundingRadius(); !mgl32.FloatEqualThreshold(got, want, 1e-5) {
		t.Fatalf("radius: got %v, want %v", got, want)
	}
	if m.Skinned() {
		t.Fatalf("model without skeleton reported skinned")
	}
}

func TestModelAnimationLookup(t *testing.T) {
	m := NewModel(WithAnimations(&AnimationClip{Name: "a"}, &AnimationClip{Name: "b"}))
	if got := m.AnimationNames(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("names: got %v", got)
	}
	if _, ok := m.Animation("b"); !ok {
		t.Fatalf("clip b not found")
	}
	if _, ok := m.Animation("c"); ok {
		t.Fatalf("clip c should not exist")
	}
}

func TestTransformMatrixOrder(t *testing.T) {
	tr := Transform{
		Translation: mgl32.Vec3{0, 0, 5},
		Rotation:    mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 1, 0}),
		Scale:       mgl32.Vec3{2, 2, 2},
	}
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	if want := (mgl32.Vec3{0, 0, 3}); !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !IdentityTransform().Matrix().ApproxEqual(mgl32.Ident4()) {
		t.Fatalf("identity transform is not the identity matrix")
	}
}

func TestSkeletonLookupAndRestPose(t *testing.T) {
	s := &Skeleton{
		Bones: []Bone{
			{Name: "hips", ParentIndex: -1, Rest: IdentityTransform()},
			{Name: "spine", ParentIndex: 0, Rest: Transform{Translation: mgl32.Vec3{0, 1, 0}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}},
		},
		BoneNameToIndex: map[string]int32{"hips": 0, "spine": 1},
	}
	if idx, ok := s.BoneIndex("spine"); !ok || idx != 1 {
		t.Fatalf("BoneIndex(spine) = %d, %v", idx, ok)
	}
	var nilSkeleton *Skeleton
	if _, ok := nilSkeleton.BoneIndex("hips"); ok {
		t.Fatalf("nil skeleton should not find bones")
	}

	pose := s.RestPose()
	pose[1].Translation = mgl32.Vec3{}
	if s.Bones[1].Rest.Translation.Y() != 1 {
		t.Fatalf("RestPose must return a copy")
	}
}
