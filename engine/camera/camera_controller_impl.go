package camera

import (
	"math"
	"sync"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/go-gl/mathgl/mgl32"
)

// dampingReferenceRate is the frame rate at which the damping factor is applied once per frame.
const dampingReferenceRate = 60.0

// sphere is a point on the orbit in spherical coordinates around the target.
type sphere struct {
	radius    float32
	azimuth   float32
	elevation float32
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	target   mgl32.Vec3
	position mgl32.Vec3

	current sphere
	goal    sphere

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32

	// damping is the fraction of the remaining distance covered per reference frame.
	// Zero disables damping.
	damping float32

	dragging     bool
	lastX, lastY float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit rig with defaults suited to a human-sized model
// standing near the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		current: sphere{radius: 3.0, azimuth: 0, elevation: 0.1},

		minRadius:    0.5,
		maxRadius:    20.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		mouseSensitivity: 0.005,
		zoomSpeed:        0.25,
		damping:          0.05,
	}

	for _, option := range options {
		option(cc)
	}

	cc.current.radius = common.Clamp(cc.current.radius, cc.minRadius, cc.maxRadius)
	cc.current.elevation = common.Clamp(cc.current.elevation, cc.minElevation, cc.maxElevation)
	cc.goal = cc.current
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from the current spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.current.elevation)))
	sinElev := float32(math.Sin(float64(cc.current.elevation)))
	cosAzim := float32(math.Cos(float64(cc.current.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.current.azimuth)))

	cc.position = cc.target.Add(mgl32.Vec3{
		cc.current.radius * cosElev * sinAzim,
		cc.current.radius * sinElev,
		cc.current.radius * cosElev * cosAzim,
	})
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = mgl32.Vec3{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.current.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.current.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.current.elevation
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.goal.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.goal.azimuth = azimuth
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.goal.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.goal.radius = common.Clamp(cc.goal.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
}

func (cc *cameraControllerImpl) PointerDown(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = true
	cc.lastX, cc.lastY = x, y
}

func (cc *cameraControllerImpl) PointerMove(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.dragging {
		return
	}
	dx, dy := x-cc.lastX, y-cc.lastY
	cc.lastX, cc.lastY = x, y

	// Dragging right swings the camera left around the target, so the scene follows the cursor.
	cc.goal.azimuth -= dx * cc.mouseSensitivity
	cc.goal.elevation = common.Clamp(cc.goal.elevation+dy*cc.mouseSensitivity, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) PointerUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dragging = false
}

func (cc *cameraControllerImpl) Dragging() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dragging
}

func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	alpha := float32(1)
	if cc.damping > 0 && cc.damping < 1 {
		alpha = 1 - float32(math.Pow(float64(1-cc.damping), float64(dt)*dampingReferenceRate))
	}

	cc.current.radius = common.Lerp(cc.current.radius, cc.goal.radius, alpha)
	cc.current.azimuth = common.Lerp(cc.current.azimuth, cc.goal.azimuth, alpha)
	cc.current.elevation = common.Lerp(cc.current.elevation, cc.goal.elevation, alpha)
	cc.updatePosition()
}
