package camera

import (
	"testing"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestControllerDragOrbitsTowardGoal(t *testing.T) {
	cc := NewCameraController(WithDamping(0.05), WithMouseSensitivity(0.01))

	cc.PointerDown(100, 100)
	cc.PointerMove(150, 100)
	cc.PointerUp()

	if got := cc.Azimuth(); got != 0 {
		t.Fatalf("azimuth moved before Update: %v", got)
	}

	cc.Update(1.0 / 60.0)
	first := cc.Azimuth()
	if !mgl32.FloatEqualThreshold(first, -0.5*0.05, 1e-5) {
		t.Fatalf("first damped step: got %v, want %v", first, -0.5*0.05)
	}

	for i := 0; i < 600; i++ {
		cc.Update(1.0 / 60.0)
	}
	if got := cc.Azimuth(); !mgl32.FloatEqualThreshold(got, -0.5, 1e-4) {
		t.Fatalf("azimuth should settle at the goal: got %v", got)
	}
}

func TestControllerZeroDtKeepsCurrent(t *testing.T) {
	cc := NewCameraController()
	cc.SetAzimuth(1)
	cc.Update(0)
	if got := cc.Azimuth(); got != 0 {
		t.Fatalf("dt=0 should not move the rig, got %v", got)
	}
}

func TestControllerWithoutDampingSnaps(t *testing.T) {
	cc := NewCameraController(WithDamping(0))
	cc.SetAzimuth(1.25)
	cc.Update(0)
	if got := cc.Azimuth(); got != 1.25 {
		t.Fatalf("got %v, want 1.25", got)
	}
}

func TestControllerMoveWithoutDragIsIgnored(t *testing.T) {
	cc := NewCameraController(WithDamping(0))
	cc.PointerMove(10, 10)
	cc.PointerMove(500, 500)
	cc.Update(0.1)
	if cc.Azimuth() != 0 || cc.Dragging() {
		t.Fatalf("pointer move without press orbited the camera")
	}
}

func TestControllerClampsRadiusAndElevation(t *testing.T) {
	cc := NewCameraController(WithDamping(0), WithRadiusBounds(1, 5), WithElevationBounds(-0.5, 0.5))

	cc.Zoom(1000)
	cc.SetElevation(3)
	cc.Update(0.016)
	if got := cc.Radius(); got != 1 {
		t.Errorf("radius: got %v, want 1", got)
	}
	if got := cc.Elevation(); got != 0.5 {
		t.Errorf("elevation: got %v, want 0.5", got)
	}

	cc.Zoom(-1000)
	cc.Update(0.016)
	if got := cc.Radius(); got != 5 {
		t.Errorf("radius: got %v, want 5", got)
	}
}

func TestControllerPositionFromSpherical(t *testing.T) {
	cc := NewCameraController(WithRadius(2), WithElevation(0), WithTarget(0, 1, 0))
	if got := cc.Position(); !got.ApproxEqual(mgl32.Vec3{0, 1, 2}) {
		t.Fatalf("got %v, want (0, 1, 2)", got)
	}
}

func TestCameraSetSizeUpdatesAspect(t *testing.T) {
	c := NewCamera()
	c.SetSize(800, 400)
	if got := c.Aspect(); got != 2 {
		t.Fatalf("aspect: got %v, want 2", got)
	}
	c.SetSize(0, 0)
	if got := c.Aspect(); got != 2 {
		t.Fatalf("zero size changed aspect to %v", got)
	}
}

func TestCameraEyesDifferOnlyWithSeparation(t *testing.T) {
	ctrl := NewCameraController(WithDamping(0))
	c := NewCamera(WithController(ctrl), WithStereo(0.064, 3))
	c.Update(0)

	left := c.EyeViewProjection(common.EyeLeft)
	right := c.EyeViewProjection(common.EyeRight)
	if left.ApproxEqual(right) {
		t.Fatalf("eyes should differ with a non-zero separation")
	}

	c.SetEyeSeparation(0)
	center := c.EyeViewProjection(common.EyeCenter)
	if !c.EyeViewProjection(common.EyeLeft).ApproxEqual(center) || !c.EyeViewProjection(common.EyeRight).ApproxEqual(center) {
		t.Fatalf("zero separation should collapse both eyes to the mono view")
	}
}

func TestCameraUpdateFollowsController(t *testing.T) {
	ctrl := NewCameraController(WithDamping(0))
	c := NewCamera(WithController(ctrl))
	before := c.ViewMatrix()

	ctrl.SetAzimuth(1)
	c.Update(0.016)
	if c.ViewMatrix().ApproxEqual(before) {
		t.Fatalf("view matrix did not follow the controller")
	}
	if !c.Position().ApproxEqual(ctrl.Position()) {
		t.Fatalf("camera position %v differs from controller %v", c.Position(), ctrl.Position())
	}
}

func TestControllerOrbitFromPosition(t *testing.T) {
	cc := NewCameraController(
		WithTarget(0, 1.1, 0),
		WithOrbitFrom(1.6, 1.45, 2.0),
		WithRadiusBounds(0.1, 50),
	)
	want := mgl32.Vec3{1.6, 1.45, 2.0}
	if got := cc.Position(); !got.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("position = %v, want %v", got, want)
	}
	if got := cc.Target(); got != (mgl32.Vec3{0, 1.1, 0}) {
		t.Errorf("target = %v", got)
	}
}

func TestSphericalFromZeroOffset(t *testing.T) {
	if _, _, _, ok := SphericalFrom(mgl32.Vec3{}); ok {
		t.Error("zero offset must not convert")
	}
}
