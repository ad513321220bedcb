package animator

import (
	"math"
	"testing"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func twoBoneSkeleton() *model.Skeleton {
	rest := model.IdentityTransform()
	child := model.IdentityTransform()
	child.Translation = mgl32.Vec3{0, 1, 0}
	return &model.Skeleton{
		Bones: []model.Bone{
			{Name: "root", ParentIndex: -1, Rest: rest, InverseBindMatrix: mgl32.Ident4()},
			{Name: "child", ParentIndex: 0, Rest: child, InverseBindMatrix: mgl32.Translate3D(0, -1, 0)},
		},
		RootBoneIndices: []int32{0},
		BoneNameToIndex: map[string]int32{"root": 0, "child": 1},
	}
}

// slideClip moves the root bone along +X from 0 to dist over one second.
func slideClip(name string, dist float32) *model.AnimationClip {
	return &model.AnimationClip{
		Name:     name,
		Duration: 1,
		Channels: []model.AnimationChannel{{
			BoneIndex: 0,
			PositionKeys: []model.VectorKeyframe{
				{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
				{Time: 1, Value: mgl32.Vec3{dist, 0, 0}},
			},
		}},
	}
}

func TestClipActionIsCachedPerClip(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	clip := slideClip("a", 1)
	if a.ClipAction(clip) != a.ClipAction(clip) {
		t.Fatalf("ClipAction should return the same action for the same clip")
	}
	if a.ClipAction(clip) == a.ClipAction(slideClip("b", 1)) {
		t.Fatalf("different clips must get different actions")
	}
}

func TestActionDoesNotAdvanceUntilPlayed(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	action := a.ClipAction(slideClip("a", 1))
	a.Update(0.5)
	if action.Time() != 0 || action.IsRunning() {
		t.Fatalf("unplayed action advanced: time %v running %v", action.Time(), action.IsRunning())
	}
	if got := a.Pose()[0].Translation; got != (mgl32.Vec3{}) {
		t.Fatalf("pose should stay at rest, got %v", got)
	}
}

func TestLoopRepeatWrapsTime(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	action := a.ClipAction(slideClip("a", 2))
	action.SetLoopRepeat()
	action.Play()

	a.Update(0.25)
	if got := a.Pose()[0].Translation.X(); !mgl32.FloatEqualThreshold(got, 0.5, eps) {
		t.Fatalf("x at t=0.25: got %v, want 0.5", got)
	}

	a.Update(1.0)
	if got := action.Time(); !mgl32.FloatEqualThreshold(got, 0.25, eps) {
		t.Fatalf("time after wrap: got %v, want 0.25", got)
	}
	if !action.IsRunning() {
		t.Fatalf("looping action stopped")
	}
}

func TestLoopOnceHoldsLastFrame(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	action := a.ClipAction(slideClip("a", 2))
	action.SetLoop(LoopOnce)
	action.Play()
	a.Update(3)
	if got := a.Pose()[0].Translation.X(); !mgl32.FloatEqualThreshold(got, 2, eps) {
		t.Fatalf("x after end: got %v, want 2", got)
	}
}

func TestCrossFadeKeepsBothRunningThenRetiresOld(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	from := a.ClipAction(slideClip("from", 0))
	to := a.ClipAction(&model.AnimationClip{
		Name:     "to",
		Duration: 1,
		Channels: []model.AnimationChannel{{
			BoneIndex:    0,
			PositionKeys: []model.VectorKeyframe{{Time: 0, Value: mgl32.Vec3{4, 0, 0}}},
		}},
	})

	from.Play()
	a.Update(0.1)

	to.Reset()
	to.Play()
	from.CrossFadeTo(to, 0.25)

	a.Update(0.125)
	if !from.IsRunning() || !to.IsRunning() {
		t.Fatalf("both actions must run during the fade: from %v to %v", from.IsRunning(), to.IsRunning())
	}
	if got := from.Weight(); !mgl32.FloatEqualThreshold(got, 0.5, eps) {
		t.Errorf("outgoing weight mid-fade: got %v, want 0.5", got)
	}
	if got := to.Weight(); !mgl32.FloatEqualThreshold(got, 0.5, eps) {
		t.Errorf("incoming weight mid-fade: got %v, want 0.5", got)
	}
	if got := a.Pose()[0].Translation.X(); !mgl32.FloatEqualThreshold(got, 2, eps) {
		t.Errorf("blended x mid-fade: got %v, want 2", got)
	}

	a.Update(0.2)
	if from.IsRunning() {
		t.Fatalf("outgoing action should stop once its weight reaches zero")
	}
	if len(a.ActiveActions()) != 1 || a.ActiveActions()[0] != to {
		t.Fatalf("only the incoming action should remain active, got %d", len(a.ActiveActions()))
	}
	if got := a.Pose()[0].Translation.X(); !mgl32.FloatEqualThreshold(got, 4, eps) {
		t.Errorf("x after fade: got %v, want 4", got)
	}
}

func TestPartialWeightBlendsWithRest(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	action := a.ClipAction(&model.AnimationClip{
		Duration: 1,
		Channels: []model.AnimationChannel{{
			BoneIndex:    0,
			PositionKeys: []model.VectorKeyframe{{Time: 0, Value: mgl32.Vec3{0, 0, 10}}},
			RotationKeys: []model.QuaternionKeyframe{{Time: 0, Value: mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 1, 0})}},
		}},
	})
	action.SetWeight(0.5)
	action.Play()
	a.Update(0)

	pose := a.Pose()[0]
	if got := pose.Translation.Z(); !mgl32.FloatEqualThreshold(got, 5, eps) {
		t.Errorf("translation: got %v, want 5", got)
	}
	want := mgl32.QuatRotate(float32(math.Pi/4), mgl32.Vec3{0, 1, 0})
	if !pose.Rotation.ApproxEqualThreshold(want, eps) {
		t.Errorf("rotation: got %v, want %v", pose.Rotation, want)
	}
	if got := a.Pose()[1].Translation; got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("unanimated bone should keep its rest pose, got %v", got)
	}
}

func TestJointMatricesFollowHierarchy(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	action := a.ClipAction(slideClip("a", 1))
	action.Play()
	a.Update(0.5)

	// The child inherits the root's translation; in bind pose its joint matrix is identity.
	joint := a.JointMatrices()[1]
	got := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, joint)
	if want := (mgl32.Vec3{0.5, 1, 0}); !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStopAllReturnsToRest(t *testing.T) {
	a := NewAnimator(twoBoneSkeleton())
	action := a.ClipAction(slideClip("a", 1))
	action.Play()
	a.Update(0.5)
	a.StopAll()
	a.Update(0.1)
	if action.IsRunning() || action.Time() != 0 {
		t.Fatalf("StopAll should stop and rewind actions")
	}
	if got := a.Pose()[0].Translation; got != (mgl32.Vec3{}) {
		t.Fatalf("pose after StopAll: got %v", got)
	}
}

func TestSampleStepAndClamp(t *testing.T) {
	keys := []model.VectorKeyframe{
		{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
		{Time: 1, Value: mgl32.Vec3{1, 0, 0}},
		{Time: 2, Value: mgl32.Vec3{3, 0, 0}},
	}
	cases := []struct {
		name   string
		interp model.Interpolation
		t      float32
		want   float32
	}{
		{"before first", model.InterpolationLinear, -1, 0},
		{"linear between", model.InterpolationLinear, 1.5, 2},
		{"step between", model.InterpolationStep, 1.5, 1},
		{"on key", model.InterpolationLinear, 1, 1},
		{"after last", model.InterpolationLinear, 5, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sampleVector(keys, tc.interp, tc.t).X(); !mgl32.FloatEqualThreshold(got, tc.want, eps) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSlerpTakesShortestPath(t *testing.T) {
	a := mgl32.QuatIdent()
	b := mgl32.QuatRotate(0.2, mgl32.Vec3{0, 0, 1}).Scale(-1)
	got := slerp(a, b, 0.5)
	want := mgl32.QuatRotate(0.1, mgl32.Vec3{0, 0, 1})
	if !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSkinMesh(t *testing.T) {
	mesh := &model.Mesh{Vertices: []model.SkinnedVertex{
		{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, Joints: [4]uint32{0, 1}, Weights: [4]float32{0.5, 0.5}},
		{Position: mgl32.Vec3{2, 2, 2}, Normal: mgl32.Vec3{0, 0, 1}},
	}}
	joints := []mgl32.Mat4{mgl32.Ident4(), mgl32.Translate3D(0, 2, 0)}

	out := SkinMesh(nil, mesh, joints)
	if len(out) != 2*VertexStride {
		t.Fatalf("len: got %d", len(out))
	}
	if got := (mgl32.Vec3{out[0], out[1], out[2]}); !got.ApproxEqualThreshold(mgl32.Vec3{1, 1, 0}, eps) {
		t.Errorf("skinned position: got %v", got)
	}
	if got := (mgl32.Vec3{out[3], out[4], out[5]}); !got.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps) {
		t.Errorf("skinned normal: got %v", got)
	}
	if got := (mgl32.Vec3{out[6], out[7], out[8]}); got != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("unweighted vertex moved: %v", got)
	}

	reused := SkinMesh(out, mesh, joints)
	if &reused[0] != &out[0] {
		t.Errorf("SkinMesh should reuse a large enough buffer")
	}
}
