// Package interaction turns selection, depth and rotation input into effects on the
// viewer without knowing which widget or device produced them.
package interaction

import "github.com/PaolaOrtiz0320/modelosanaglifos/common"

// Target receives the effects of dispatched intents.
type Target interface {
	// Play switches the character to the named animation. Unknown names are ignored.
	Play(key string)

	// SetDepth places the character at world-space depth z.
	SetDepth(z float32)

	// Yaw returns the character's accumulated rotation about +Y in radians.
	Yaw() float32

	// SetYaw replaces the character's rotation about +Y.
	SetYaw(yaw float32)
}

// Controller routes intents to a Target and tracks the state the input widgets show:
// the selected animation, the slider value, the rotate toggle and the drag gesture.
//
// The pointer stream is shared with the camera rig. The controller never swallows an
// event, so a modifier drag both orbits the camera and rotates the model.
type Controller struct {
	target      Target
	sensitivity float32
	digits      map[uint32]string

	selected    string
	sliderValue float32
	rotateMode  bool

	dragging bool
	lastX    float32
}

// NewController creates a controller driving target.
//
// Parameters:
//   - target: receives play, depth and yaw changes
//   - opts: functional options
//
// Returns:
//   - *Controller: the controller, not dragging, rotate mode off
func NewController(target Target, opts ...ControllerBuilderOption) *Controller {
	c := &Controller{
		target:      target,
		sensitivity: RotateSensitivity,
		digits:      DefaultDigitKeys(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch applies one intent.
func (c *Controller) Dispatch(intent Intent) {
	switch in := intent.(type) {
	case SelectAnimation:
		c.selected = in.Key
		c.target.Play(in.Key)
	case SetDepth:
		c.sliderValue = in.Raw
		c.target.SetDepth(DepthFromSlider(in.Raw))
	case RotateDelta:
		c.target.SetYaw(c.target.Yaw() - c.sensitivity*in.DX)
	case SetRotateMode:
		c.rotateMode = in.Enabled
	}
}

// Init applies the slider's initial value once at startup.
func (c *Controller) Init(rawSlider float32) {
	c.Dispatch(SetDepth{Raw: rawSlider})
}

// PointerDown starts a rotate drag when rotate mode is on or the modifier is held.
//
// Parameters:
//   - x: horizontal pointer position in pixels
//   - mods: modifier keys held at press time
func (c *Controller) PointerDown(x float32, mods common.Modifier) {
	if !c.rotateMode && !mods.Has(common.ModShift) {
		return
	}
	c.dragging = true
	c.lastX = x
}

// PointerMove emits a RotateDelta for the movement since the previous event while dragging.
func (c *Controller) PointerMove(x float32) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	c.lastX = x
	c.Dispatch(RotateDelta{DX: dx})
}

// PointerUp ends any drag, wherever the pointer is.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// KeyDown maps animation digit keys to SelectAnimation. It reports whether the key
// was consumed.
func (c *Controller) KeyDown(key uint32) bool {
	name, ok := c.digits[key]
	if !ok {
		return false
	}
	c.Dispatch(SelectAnimation{Key: name})
	return true
}

// Selected returns the key the selection control shows. Empty until something is selected.
func (c *Controller) Selected() string {
	return c.selected
}

// SliderValue returns the last raw slider value.
func (c *Controller) SliderValue() float32 {
	return c.sliderValue
}

// RotateMode reports the explicit rotate toggle.
func (c *Controller) RotateMode() bool {
	return c.rotateMode
}

// Dragging reports whether a rotate drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// AnimationKeys lists the selectable animations in menu order.
var AnimationKeys = []string{"protege", "espadazo", "patada", "defensa", "correr"}

// DefaultDigitKeys maps keys 1 to 5 onto AnimationKeys.
func DefaultDigitKeys() map[uint32]string {
	return map[uint32]string{
		common.Key1: AnimationKeys[0],
		common.Key2: AnimationKeys[1],
		common.Key3: AnimationKeys[2],
		common.Key4: AnimationKeys[3],
		common.Key5: AnimationKeys[4],
	}
}
