package loader

import (
	"errors"
	"math"
	"testing"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeBackend struct {
	loads     int
	clipLoads int
	clipErr   error
}

func (f *fakeBackend) Load(path string) (model.Model, error) {
	f.loads++
	return model.NewModel(model.WithName(path)), nil
}

func (f *fakeBackend) LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error) {
	f.clipLoads++
	if f.clipErr != nil {
		return nil, f.clipErr
	}
	return &model.AnimationClip{Name: path}, nil
}

func testGraph() *sceneGraph {
	armature := model.IdentityTransform()
	armature.Scale = mgl32.Vec3{0.01, 0.01, 0.01}
	hips := model.IdentityTransform()
	hips.Translation = mgl32.Vec3{0, 100, 0}
	spine := model.IdentityTransform()
	spine.Translation = mgl32.Vec3{0, 10, 0}
	return &sceneGraph{
		names:    []string{"Armature", "Hips", "Spine"},
		parents:  []int{-1, 0, 1},
		locals:   []model.Transform{armature, hips, spine},
		matrices: make([]*mgl32.Mat4, 3),
	}
}

func TestLoaderCachesModels(t *testing.T) {
	fb := &fakeBackend{}
	l := NewLoader(BackendTypeGLTF, withBackend(fb))

	first, err := l.Load("personaje.glb")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := l.Load("personaje.glb")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second || fb.loads != 1 {
		t.Fatalf("expected one backend load and the cached model, got %d loads", fb.loads)
	}
	if l.Get("personaje.glb") == nil || len(l.Models()) != 1 {
		t.Fatalf("model not cached")
	}
}

func TestLoaderRejectsUnknownExtension(t *testing.T) {
	fb := &fakeBackend{}
	l := NewLoader(BackendTypeGLTF, withBackend(fb))

	if _, err := l.Load("personaje.fbx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
	skel := &model.Skeleton{Bones: []model.Bone{{Name: "Hips", ParentIndex: -1}}}
	if _, err := l.LoadClip("patada.obj", skel); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
	if fb.loads != 0 || fb.clipLoads != 0 {
		t.Fatalf("backend should not be called for unsupported files")
	}
}

func TestLoadClipRequiresSkeleton(t *testing.T) {
	fb := &fakeBackend{}
	l := NewLoader(BackendTypeGLTF, withBackend(fb))

	for _, skel := range []*model.Skeleton{nil, {}} {
		if _, err := l.LoadClip("correr.glb", skel); !errors.Is(err, ErrNoSkin) {
			t.Fatalf("got %v, want ErrNoSkin", err)
		}
	}
	if fb.clipLoads != 0 {
		t.Fatalf("backend called without a skeleton")
	}
}

func TestLoadClipWrapsBackendErrors(t *testing.T) {
	fb := &fakeBackend{clipErr: ErrNoAnimation}
	l := NewLoader(BackendTypeGLTF, withBackend(fb))
	skel := &model.Skeleton{Bones: []model.Bone{{Name: "Hips", ParentIndex: -1}}}

	_, err := l.LoadClip("defensa.glb", skel)
	if !errors.Is(err, ErrNoAnimation) {
		t.Fatalf("got %v, want ErrNoAnimation", err)
	}
}

func TestBuildSkeletonSortsParentsFirst(t *testing.T) {
	g := testGraph()
	ibm := []mgl32.Mat4{mgl32.Translate3D(0, -1.1, 0), mgl32.Translate3D(0, -1, 0)}

	// Skin lists the child joint before its parent.
	skel, nodeToBone, err := buildSkeleton(g, []int{2, 1}, ibm)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(skel.Bones) != 2 {
		t.Fatalf("got %d bones", len(skel.Bones))
	}
	if skel.Bones[0].Name != "Hips" || skel.Bones[1].Name != "Spine" {
		t.Fatalf("order: got %s, %s", skel.Bones[0].Name, skel.Bones[1].Name)
	}
	if skel.Bones[0].ParentIndex != -1 || skel.Bones[1].ParentIndex != 0 {
		t.Fatalf("parents: got %d, %d", skel.Bones[0].ParentIndex, skel.Bones[1].ParentIndex)
	}
	if len(skel.RootBoneIndices) != 1 || skel.RootBoneIndices[0] != 0 {
		t.Fatalf("roots: got %v", skel.RootBoneIndices)
	}
	if nodeToBone[1] != 0 || nodeToBone[2] != 1 {
		t.Fatalf("node map: got %v", nodeToBone)
	}
	if skel.Bones[1].InverseBindMatrix != ibm[0] {
		t.Fatalf("inverse bind matrix not carried with its joint")
	}

	// The armature scale sits above the root joint.
	base := skel.Bones[0].BaseTransform
	got := mgl32.TransformCoordinate(mgl32.Vec3{0, 100, 0}, base)
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("base transform: got %v", got)
	}
	if i, ok := skel.BoneIndex("Spine"); !ok || i != 1 {
		t.Fatalf("name lookup: got %d %v", i, ok)
	}
}

func TestBuildSkeletonRejectsBadJoint(t *testing.T) {
	if _, _, err := buildSkeleton(testGraph(), []int{1, 7}, nil); err == nil {
		t.Fatalf("expected error for missing joint node")
	}
}

func TestBindTracksByJointName(t *testing.T) {
	skel, _, err := buildSkeleton(testGraph(), []int{1, 2}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	half := float32(math.Sqrt2 / 2)
	tracks := []rawTrack{
		{nodeName: "Spine", path: pathRotation, times: []float32{0, 0.5},
			values: [][4]float32{{0, 0, 0, 1}, {0, half, 0, half}}},
		{nodeName: "Hips", path: pathTranslation, interp: model.InterpolationStep, times: []float32{0, 1.25},
			values: [][4]float32{{0, 1, 0, 0}, {0, 2, 0, 0}}},
		{nodeName: "Sword", path: pathTranslation, times: []float32{0, 3},
			values: [][4]float32{{0, 0, 0, 0}, {1, 0, 0, 0}}},
	}

	clip, err := bindTracks("espadazo", tracks, skel)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if clip.Duration != 1.25 {
		t.Fatalf("duration: got %v, unbound tracks must not extend it", clip.Duration)
	}
	if len(clip.Channels) != 2 {
		t.Fatalf("got %d channels", len(clip.Channels))
	}
	spine := clip.Channels[0]
	if spine.BoneIndex != 1 || len(spine.RotationKeys) != 2 {
		t.Fatalf("spine channel: %+v", spine)
	}
	if w := spine.RotationKeys[1].Value.W; !mgl32.FloatEqualThreshold(w, half, 1e-6) {
		t.Fatalf("rotation w: got %v", w)
	}
	hips := clip.Channels[1]
	if hips.PositionInterpolation != model.InterpolationStep || hips.PositionKeys[1].Value.Y() != 2 {
		t.Fatalf("hips channel: %+v", hips)
	}
}

func TestBindTracksWithoutMatchingJoints(t *testing.T) {
	skel, _, _ := buildSkeleton(testGraph(), []int{1}, nil)
	tracks := []rawTrack{{nodeName: "mixamorig:Hips", path: pathTranslation, times: []float32{0}, values: [][4]float32{{}}}}
	if _, err := bindTracks("patada", tracks, skel); !errors.Is(err, ErrUnboundClip) {
		t.Fatalf("got %v, want ErrUnboundClip", err)
	}
}

func TestCubicSplineValues(t *testing.T) {
	in := [][4]float32{{9}, {1}, {9}, {9}, {2}, {9}}
	got := cubicSplineValues(in)
	if len(got) != 2 || got[0][0] != 1 || got[1][0] != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	want := model.Transform{
		Translation: mgl32.Vec3{1, 2, 3},
		Rotation:    mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0}),
		Scale:       mgl32.Vec3{2, 3, 4},
	}
	got := decompose(want.Matrix())
	if !got.Translation.ApproxEqualThreshold(want.Translation, 1e-5) {
		t.Fatalf("translation: got %v", got.Translation)
	}
	if !got.Scale.ApproxEqualThreshold(want.Scale, 1e-4) {
		t.Fatalf("scale: got %v", got.Scale)
	}
	if !got.Rotation.OrientationEqualThreshold(want.Rotation, 1e-4) {
		t.Fatalf("rotation: got %v, want %v", got.Rotation, want.Rotation)
	}
}

func TestIndexOf(t *testing.T) {
	three := 3
	var missing *int
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{2, 2, true},
		{&three, 3, true},
		{missing, 0, false},
		{uint32(5), 5, true},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := indexOf(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("indexOf(%v): got %d %v, want %d %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestComputeNormalsFlatTriangle(t *testing.T) {
	pos := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}}
	n := computeNormals(pos, []uint32{0, 1, 2})
	for i := 0; i < 3; i++ {
		if n[i] != [3]float32{0, 0, 1} {
			t.Fatalf("normal %d: got %v", i, n[i])
		}
	}
	if n[3] != [3]float32{0, 1, 0} {
		t.Fatalf("unreferenced vertex: got %v", n[3])
	}
}

func TestRemapInfluences(t *testing.T) {
	jointNodes := []int{10, 11, 12}
	nodeToBone := map[int]int32{10: 2, 11: 0}

	j, w := remapInfluences([4]uint16{0, 1, 2, 0}, [4]float32{0.25, 0.25, 0.5, 0}, jointNodes, nodeToBone)
	if j[0] != 2 || j[1] != 0 {
		t.Fatalf("joints: got %v", j)
	}
	if w[0] != 0.5 || w[1] != 0.5 || w[2] != 0 {
		t.Fatalf("weights should renormalize without the unknown joint: got %v", w)
	}
}

func TestVertexBounds(t *testing.T) {
	lo, hi := vertexBounds([]model.SkinnedVertex{
		{Position: mgl32.Vec3{-1, 2, 0}},
		{Position: mgl32.Vec3{3, -4, 1}},
	})
	if lo != (mgl32.Vec3{-1, -4, 0}) || hi != (mgl32.Vec3{3, 2, 1}) {
		t.Fatalf("got %v %v", lo, hi)
	}
}

func TestModelName(t *testing.T) {
	if got := modelName("assets/modelos/Personaje.GLB"); got != "Personaje" {
		t.Fatalf("got %q", got)
	}
}
