package interaction

import "github.com/PaolaOrtiz0320/modelosanaglifos/common"

const (
	// SliderMin and SliderMax bound the depth slider.
	SliderMin float32 = 0.04
	SliderMax float32 = 0.18

	// DepthMin and DepthMax are the world-space z the slider ends map to.
	DepthMin float32 = -1.60
	DepthMax float32 = -0.20

	// RotateSensitivity is radians of yaw per pixel of horizontal drag.
	RotateSensitivity float32 = 0.01
)

// DepthFromSlider maps a raw slider value onto the depth range. The map is affine and
// does not clamp: values outside [SliderMin, SliderMax] extrapolate.
func DepthFromSlider(raw float32) float32 {
	normalized := (raw - SliderMin) / (SliderMax - SliderMin)
	return common.Lerp(DepthMin, DepthMax, normalized)
}
