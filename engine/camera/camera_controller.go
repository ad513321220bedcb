package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraController defines an orbit rig around a target point.
// The rig keeps two sets of spherical coordinates: the goal set by input and the
// current one the camera uses. Update eases current toward goal, which gives the damped
// feel of an orbit control. With damping disabled Update snaps to the goal.
type CameraController interface {
	// Position returns the camera's world-space position derived from the current coordinates.
	Position() mgl32.Vec3

	// Target returns the orbit pivot.
	Target() mgl32.Vec3

	// SetTarget moves the orbit pivot.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Radius returns the current distance from the target.
	Radius() float32

	// Azimuth returns the current horizontal angle around Y in radians (0 = +Z axis).
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane in radians.
	Elevation() float32

	// SetRadius sets the goal radius, clamped to the radius bounds.
	SetRadius(radius float32)

	// SetAzimuth sets the goal azimuth.
	SetAzimuth(azimuth float32)

	// SetElevation sets the goal elevation, clamped to the elevation bounds.
	SetElevation(elevation float32)

	// Zoom moves the goal radius toward the target. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount, scaled by the zoom speed
	Zoom(delta float32)

	// PointerDown starts an orbit drag at the given cursor position.
	PointerDown(x, y float32)

	// PointerMove orbits by the cursor movement since the previous event while dragging.
	PointerMove(x, y float32)

	// PointerUp ends the orbit drag.
	PointerUp()

	// Dragging reports whether an orbit drag is in progress.
	Dragging() bool

	// Update eases the current coordinates toward the goal.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)
}

// SphericalFrom converts an offset from the orbit target into rig coordinates, using the
// same convention as the rig: azimuth 0 looks down -Z from +Z, elevation is above the XZ plane.
//
// Parameters:
//   - offset: camera position minus target
//
// Returns:
//   - radius, azimuth, elevation: the rig coordinates
//   - bool: false for a zero offset
func SphericalFrom(offset mgl32.Vec3) (float32, float32, float32, bool) {
	radius := offset.Len()
	if radius == 0 {
		return 0, 0, 0, false
	}
	elevation := float32(math.Asin(float64(offset.Y() / radius)))
	azimuth := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	return radius, azimuth, elevation, true
}
