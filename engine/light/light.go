package light

import "github.com/go-gl/mathgl/mgl32"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used as the key light on the character. Affects all fragments uniformly with
	// no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypeAmbient represents a constant fill term added to every fragment.
	// Its direction is ignored.
	LightTypeAmbient
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	direction mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// The viewer shades with a single Lambert term, so only directional and ambient
// lights exist. Lights are owned by the scene and packed into the per-eye frame
// uniform by Pack.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or ambient)
	Type() LightType

	// Direction returns the normalized direction the light travels in.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: the direction
	Direction() mgl32.Vec3

	// Color returns the linear RGB color of the light.
	Color() mgl32.Vec3

	// Intensity returns the scalar multiplier applied to Color.
	Intensity() float32

	// Radiance returns Color scaled by Intensity, or zero for disabled lights.
	Radiance() mgl32.Vec3

	// Enabled returns whether this light contributes to shading.
	Enabled() bool

	// SetDirection sets the direction of the light. The vector is normalized; a zero
	// vector is ignored.
	//
	// Parameters:
	//   - x, y, z: the direction components
	SetDirection(x, y, z float32)

	// SetColor sets the linear RGB color.
	//
	// Parameters:
	//   - r, g, b: the color components in [0, 1]
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar multiplier applied to Color.
	//
	// Parameters:
	//   - intensity: the multiplier
	SetIntensity(intensity float32)

	// SetEnabled toggles the light's contribution.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type. Defaults are a white, enabled light
// of intensity 1 pointing down the -Y axis.
//
// Parameters:
//   - lightType: the kind of light
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: mgl32.Vec3{0, -1, 0},
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Radiance() mgl32.Vec3 {
	if !l.enabled {
		return mgl32.Vec3{}
	}
	return l.color.Mul(l.intensity)
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	if d, ok := normalize3(x, y, z); ok {
		l.direction = d
	}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = mgl32.Vec3{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
