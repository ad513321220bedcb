package viewer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/config"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/interaction"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func testSkeleton() *model.Skeleton {
	return &model.Skeleton{
		Bones:           []model.Bone{{Name: "Hips", ParentIndex: -1, Rest: model.IdentityTransform(), InverseBindMatrix: mgl32.Ident4(), BaseTransform: mgl32.Ident4()}},
		RootBoneIndices: []int32{0},
		BoneNameToIndex: map[string]int32{"Hips": 0},
	}
}

func testClip(name string) *model.AnimationClip {
	return &model.AnimationClip{
		Name:     name,
		Duration: 1,
		Channels: []model.AnimationChannel{{
			BoneIndex: 0,
			PositionKeys: []model.VectorKeyframe{
				{Time: 0, Value: mgl32.Vec3{}},
				{Time: 1, Value: mgl32.Vec3{1, 0, 0}},
			},
		}},
	}
}

func testCharacter(bundled ...*model.AnimationClip) model.Model {
	return model.NewModel(
		model.WithName("character"),
		model.WithSkeleton(testSkeleton()),
		model.WithAnimations(bundled...),
	)
}

// fakeLoader serves models and clips by path. Paths missing from both maps fail.
type fakeLoader struct {
	models map[string]model.Model
	clips  map[string]*model.AnimationClip
	calls  chan string
}

func (f *fakeLoader) Load(path string) (model.Model, error) {
	if f.calls != nil {
		f.calls <- path
	}
	if m, ok := f.models[path]; ok {
		return m, nil
	}
	return nil, errors.New("no such file")
}

func (f *fakeLoader) LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error) {
	if f.calls != nil {
		f.calls <- path
	}
	if skeleton == nil {
		return nil, errors.New("nil skeleton")
	}
	if c, ok := f.clips[path]; ok {
		return c, nil
	}
	return nil, errors.New("no such file")
}

func testConfig(keys ...string) *config.Config {
	cfg := config.Default()
	cfg.Ground = false
	cfg.Camera.Damping = 0
	cfg.Animations = nil
	for _, k := range keys {
		cfg.Animations = append(cfg.Animations, config.Animation{Key: k, Path: k + ".glb"})
	}
	return cfg
}

func loaderFor(cfg *config.Config, character model.Model, missing ...string) *fakeLoader {
	f := &fakeLoader{
		models: map[string]model.Model{cfg.Model: character},
		clips:  map[string]*model.AnimationClip{},
	}
	for _, a := range cfg.Animations {
		f.clips[a.Path] = testClip(a.Key)
	}
	for _, k := range missing {
		delete(f.clips, k+".glb")
	}
	return f
}

// drainAll polls the loads the way the frame loop does until they are all applied.
func drainAll(t *testing.T, ld *Loading, c *Context) {
	t.Helper()
	defer ld.Stop()
	deadline := time.Now().Add(5 * time.Second)
	for !ld.Done() {
		if time.Now().After(deadline) {
			t.Fatalf("loads did not finish")
		}
		ld.Drain(c)
		time.Sleep(time.Millisecond)
	}
}

func TestStartupPlaysFirstRegisteredClip(t *testing.T) {
	cfg := testConfig("protege", "espadazo")
	c := NewContext(cfg)
	defer c.Release()

	drainAll(t, StartLoading(cfg, loaderFor(cfg, testCharacter())), c)

	if c.Character == nil || c.Playback == nil {
		t.Fatalf("character should be loaded with a registry")
	}
	if got := c.Playback.Keys(); len(got) != 2 || got[0] != "protege" || got[1] != "espadazo" {
		t.Fatalf("keys registered out of order: %v", got)
	}
	if key, ok := c.Playback.Current(); !ok || key != "protege" {
		t.Fatalf("current = %q, %v; want protege", key, ok)
	}
	if c.Interaction.Selected() != "protege" {
		t.Fatalf("menu should show the initial animation, got %q", c.Interaction.Selected())
	}
}

func TestStartupPrefersBundledIdle(t *testing.T) {
	cfg := testConfig("protege", "espadazo")
	c := NewContext(cfg)
	defer c.Release()

	drainAll(t, StartLoading(cfg, loaderFor(cfg, testCharacter(testClip("idle")))), c)

	if key, _ := c.Playback.Current(); key != "idle" {
		t.Fatalf("current = %q, want idle", key)
	}
}

func TestStartupSkipsFailedClips(t *testing.T) {
	cfg := testConfig("protege", "espadazo", "patada")
	c := NewContext(cfg)
	defer c.Release()

	ld := StartLoading(cfg, loaderFor(cfg, testCharacter(), "protege"))
	drainAll(t, ld, c)

	if c.Playback.Has("protege") {
		t.Fatalf("failed clip should not be registered")
	}
	if ld.Loaded() != 2 || c.Playback.Len() != 2 {
		t.Fatalf("loaded %d, registry %d; want 2", ld.Loaded(), c.Playback.Len())
	}
	if key, _ := c.Playback.Current(); key != "espadazo" {
		t.Fatalf("current = %q, want espadazo", key)
	}

	c.Play("protege")
	if key, _ := c.Playback.Current(); key != "espadazo" {
		t.Fatalf("playing a missing key should not change current, got %q", key)
	}
}

func TestCharacterFailureLeavesEmptyScene(t *testing.T) {
	cfg := testConfig("protege")
	c := NewContext(cfg)
	defer c.Release()

	f := loaderFor(cfg, nil)
	delete(f.models, cfg.Model)
	drainAll(t, StartLoading(cfg, f), c)

	if c.Character != nil || c.Playback != nil {
		t.Fatalf("nothing should be attached after a failed character load")
	}
	if c.Scene.Count() != 0 {
		t.Fatalf("scene should stay empty, has %d objects", c.Scene.Count())
	}

	// Input keeps working against the empty context.
	c.Play("protege")
	c.Advance(0.016)
	c.Interaction.Dispatch(interaction.SetDepth{Raw: 0.18})
	if !approx(c.Depth(), -0.20) {
		t.Fatalf("depth = %v", c.Depth())
	}
}

func TestLoadsRunInManifestOrder(t *testing.T) {
	cfg := testConfig("protege", "espadazo", "patada", "defensa", "correr")
	f := loaderFor(cfg, testCharacter())
	f.calls = make(chan string, 8)
	c := NewContext(cfg)
	defer c.Release()

	drainAll(t, StartLoading(cfg, f), c)
	close(f.calls)

	want := []string{cfg.Model, "protege.glb", "espadazo.glb", "patada.glb", "defensa.glb", "correr.glb"}
	i := 0
	for got := range f.calls {
		if i >= len(want) || got != want[i] {
			t.Fatalf("load %d = %q", i, got)
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("saw %d loads, want %d", i, len(want))
	}
}

func TestDepthAppliedBeforeAndAfterLoad(t *testing.T) {
	cfg := testConfig()
	cfg.InitialSlider = 0.11
	cfg.Character.X, cfg.Character.Y = 0.25, -0.5
	c := NewContext(cfg)
	defer c.Release()

	if !approx(c.Depth(), -0.90) {
		t.Fatalf("initial depth = %v, want -0.90", c.Depth())
	}

	c.SetCharacter(testCharacter())
	if got := c.Character.Position(); !approx(got.X(), 0.25) || !approx(got.Y(), -0.5) || !approx(got.Z(), -0.90) {
		t.Fatalf("character placed at %v", got)
	}

	c.Interaction.Dispatch(interaction.SetDepth{Raw: 0.18})
	if z := c.Character.Position().Z(); !approx(z, -0.20) {
		t.Fatalf("depth after 0.18 = %v", z)
	}
	c.Interaction.Dispatch(interaction.SetDepth{Raw: 0.04})
	if z := c.Character.Position().Z(); !approx(z, -1.60) {
		t.Fatalf("depth after 0.04 = %v", z)
	}
}

func TestStaticCharacterHasNoRegistry(t *testing.T) {
	c := NewContext(testConfig())
	defer c.Release()

	c.SetCharacter(model.NewModel(model.WithName("statue")))
	if c.Playback != nil {
		t.Fatalf("static model should not get a registry")
	}
	c.Advance(0.016)
}

func TestSharedPointerStream(t *testing.T) {
	c := NewContext(testConfig())
	defer c.Release()
	c.SetCharacter(testCharacter())

	rig := c.Camera.Controller()
	az0 := rig.Azimuth()
	yaw0 := c.Yaw()

	c.PointerDown(100, 50, common.ModShift)
	c.PointerMove(150, 50)
	c.PointerMove(130, 50)
	c.PointerUp()
	c.Camera.Update(0.016)

	if approx(rig.Azimuth(), az0) {
		t.Fatalf("camera should orbit during a modifier drag")
	}
	if want := yaw0 - 0.01*30; !approx(c.Yaw(), want) || !approx(c.Character.Yaw(), want) {
		t.Fatalf("yaw = %v (object %v), want %v", c.Yaw(), c.Character.Yaw(), want)
	}
	if rig.Dragging() || c.Interaction.Dragging() {
		t.Fatalf("release should end both drags")
	}

	// Without the modifier only the camera reacts.
	c.PointerDown(0, 0, 0)
	c.PointerMove(40, 0)
	c.PointerUp()
	if want := yaw0 - 0.01*30; !approx(c.Yaw(), want) {
		t.Fatalf("plain drag rotated the model: %v", c.Yaw())
	}
}

func TestScrollZooms(t *testing.T) {
	c := NewContext(testConfig())
	defer c.Release()

	rig := c.Camera.Controller()
	r0 := rig.Radius()
	c.Scroll(1)
	c.Camera.Update(0.016)
	if rig.Radius() >= r0 {
		t.Fatalf("scrolling forward should move closer: %v -> %v", r0, rig.Radius())
	}
}

func TestGroundAddedWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Ground = true
	c := NewContext(cfg)
	defer c.Release()

	if c.Scene.Count() != 1 {
		t.Fatalf("scene should hold the ground, has %d objects", c.Scene.Count())
	}
	c.SetCharacter(testCharacter())
	c.SetCharacter(testCharacter())
	if c.Scene.Count() != 2 {
		t.Fatalf("replacing the character should not duplicate it, have %d objects", c.Scene.Count())
	}
}

func TestCameraStartsAtConfiguredPosition(t *testing.T) {
	cfg := testConfig()
	cam := NewCamera(cfg)
	want := mgl32.Vec3(cfg.Camera.Position)
	if got := cam.Position(); !got.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("camera at %v, want %v", got, want)
	}
}

func TestSwitchAwayFromReRegisteredKeyFadesOutPlayingClip(t *testing.T) {
	c := NewContext(testConfig())
	defer c.Release()
	c.SetCharacter(testCharacter())
	anim := c.Character.Animator()

	first := testClip("protege")
	c.Playback.RegisterAction("protege", first)
	c.Play("protege")
	c.Playback.RegisterAction("protege", testClip("protege"))
	next := testClip("espadazo")
	c.Playback.RegisterAction("espadazo", next)

	c.Play("espadazo")
	c.Advance(1)

	old := anim.ClipAction(first)
	if old.IsRunning() {
		t.Fatalf("outgoing action still running with weight %v", old.Weight())
	}
	active := anim.ActiveActions()
	if len(active) != 1 || active[0] != anim.ClipAction(next) {
		t.Fatalf("only espadazo should be active, have %d actions", len(active))
	}
}
