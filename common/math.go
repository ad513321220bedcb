package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Eye identifies one of the two viewpoints of a stereo pair.
type Eye int

const (
	// EyeCenter is the mono viewpoint, the camera itself.
	EyeCenter Eye = iota
	// EyeLeft is shifted half the eye separation to the camera's left.
	EyeLeft
	// EyeRight is shifted half the eye separation to the camera's right.
	EyeRight
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective creates a symmetric perspective projection matrix for WebGPU clip space,
// where depth maps to [0, 1] rather than OpenGL's [-1, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	top := near * float32(math.Tan(float64(fovY)/2.0))
	right := top * aspect
	return Frustum(-right, right, -top, top, near, far)
}

// Frustum creates an off-axis perspective projection for WebGPU clip space.
// Stereo eyes use it to shift the frustum horizontally without rotating the view.
//
// Parameters:
//   - left, right, bottom, top: extents of the near plane in view space
//   - near, far: clipping plane distances
//
// Returns:
//   - mgl32.Mat4: column-major projection matrix
func Frustum(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	var out mgl32.Mat4
	out[0] = 2 * near / (right - left)
	out[5] = 2 * near / (top - bottom)
	out[8] = (right + left) / (right - left)
	out[9] = (top + bottom) / (top - bottom)
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// StereoProjection builds the projection and eye offset for one eye of a parallel-axis
// stereo pair converging at the focus distance.
//
// Parameters:
//   - eye: which viewpoint to build
//   - fovY, aspect, near, far: the base camera frustum
//   - focus: distance at which both eyes' frusta coincide (zero parallax plane)
//   - eyeSep: distance between the two eyes in world units
//
// Returns:
//   - mgl32.Mat4: projection matrix for the eye
//   - mgl32.Mat4: translation to apply on the left of the camera view matrix
func StereoProjection(eye Eye, fovY, aspect, near, far, focus, eyeSep float32) (mgl32.Mat4, mgl32.Mat4) {
	if eye == EyeCenter || eyeSep == 0 || focus <= 0 {
		return Perspective(fovY, aspect, near, far), mgl32.Ident4()
	}

	half := eyeSep / 2
	shift := half * near / focus
	top := near * float32(math.Tan(float64(fovY)/2.0))
	right := top * aspect

	if eye == EyeLeft {
		// The left eye sits at -half in camera space, so the view moves the world by +half.
		return Frustum(-right+shift, right+shift, -top, top, near, far), mgl32.Translate3D(half, 0, 0)
	}
	return Frustum(-right-shift, right-shift, -top, top, near, far), mgl32.Translate3D(-half, 0, 0)
}

// ModelMatrix composes translation, a yaw about the Y axis and a uniform scale.
//
// Parameters:
//   - position: world translation
//   - yaw: rotation around +Y in radians
//   - scale: uniform scale factor
//
// Returns:
//   - mgl32.Mat4: T * Ry * S
func ModelMatrix(position mgl32.Vec3, yaw, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}
