package camera

import (
	"sync"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	// stereo pair parameters
	eyeSeparation float32
	focus         float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	eyeViewProj      [3]mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective and stereo settings and computes the view/projection
// matrices for the mono viewpoint and both eyes from an attached CameraController.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// EyeSeparation returns the distance between the left and right eye in world units.
	EyeSeparation() float32

	// Focus returns the zero-parallax distance of the stereo pair.
	Focus() float32

	// Position returns the world-space position of the mono viewpoint.
	Position() mgl32.Vec3

	// ViewMatrix returns the mono view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the mono projection matrix (column-major, WebGPU depth range).
	ProjectionMatrix() mgl32.Mat4

	// EyeViewProjection returns the combined view-projection matrix for one viewpoint.
	//
	// Parameters:
	//   - eye: common.EyeLeft, common.EyeRight or common.EyeCenter
	//
	// Returns:
	//   - mgl32.Mat4: projection * eyeOffset * view
	EyeViewProjection(eye common.Eye) mgl32.Mat4

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update advances the controller's damping by dt seconds and recomputes all matrices.
	// Called once per frame before rendering.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// SetAspect sets the aspect ratio and recomputes matrices.
	//
	// Parameters:
	//   - aspect: new width / height ratio
	SetAspect(aspect float32)

	// SetSize derives the aspect ratio from a framebuffer size. Zero sizes are ignored
	// (a minimized window reports 0x0).
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	SetSize(width, height int)

	// SetEyeSeparation sets the distance between the eyes. Zero renders both eyes from
	// the mono viewpoint.
	SetEyeSeparation(separation float32)

	// SetFocus sets the zero-parallax distance.
	SetFocus(focus float32)

	// SetController attaches a controller and recomputes matrices from it.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective camera with the given options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:            &sync.Mutex{},
		up:            mgl32.Vec3{0, 1, 0},
		fov:           mgl32.DegToRad(45),
		aspect:        16.0 / 9.0,
		near:          0.1,
		far:           100.0,
		eyeSeparation: 0.064,
		focus:         3.0,
	}

	for _, option := range options {
		option(c)
	}

	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) EyeSeparation() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eyeSeparation
}

func (c *cameraImpl) Focus() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	if c.controller == nil {
		return mgl32.Vec3{}
	}
	return c.controller.Position()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) EyeViewProjection(eye common.Eye) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if eye < common.EyeCenter || eye > common.EyeRight {
		eye = common.EyeCenter
	}
	return c.eyeViewProj[eye]
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Update(dt float32) {
	if c.controller != nil {
		c.controller.Update(dt)
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	c.aspect = aspect
	c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}

func (c *cameraImpl) SetEyeSeparation(separation float32) {
	c.mu.Lock()
	c.eyeSeparation = separation
	c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetFocus(focus float32) {
	c.mu.Lock()
	c.focus = focus
	c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recomputes the mono and per-eye matrices from the controller state.
func (c *cameraImpl) updateMatrices() {
	eye, target := mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}
	if c.controller != nil {
		eye, target = c.controller.Position(), c.controller.Target()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.viewMatrix = mgl32.LookAtV(eye, target, c.up)
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.eyeViewProj[common.EyeCenter] = c.projectionMatrix.Mul4(c.viewMatrix)

	for _, e := range []common.Eye{common.EyeLeft, common.EyeRight} {
		proj, offset := common.StereoProjection(e, c.fov, c.aspect, c.near, c.far, c.focus, c.eyeSeparation)
		c.eyeViewProj[e] = proj.Mul4(offset).Mul4(c.viewMatrix)
	}
}
