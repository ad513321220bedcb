package viewer

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/interaction"
)

// SliderStep is how far one bracket key press moves the depth slider.
const SliderStep float32 = 0.01

// DisplayToggles is the part of the renderer the keyboard can switch.
type DisplayToggles interface {
	StereoEnabled() bool
	SetStereoEnabled(enabled bool)
	Grayscale() bool
	SetGrayscale(enabled bool)
}

// UI maps the keyboard onto the viewer's animation menu, depth slider and rotate checkbox,
// and renders their state into the window title.
type UI struct {
	ctx     *Context
	title   string
	display DisplayToggles
}

// NewUI creates the keyboard surface for ctx. display may be nil.
func NewUI(ctx *Context, title string, display DisplayToggles) *UI {
	return &UI{ctx: ctx, title: common.Coalesce(title, "Modelos Anaglifos"), display: display}
}

// KeyDown handles one key press and reports whether it changed anything.
func (u *UI) KeyDown(key uint32) bool {
	ic := u.ctx.Interaction
	if ic.KeyDown(key) {
		return true
	}

	switch key {
	case common.KeyTab:
		ic.Dispatch(interaction.SelectAnimation{Key: nextKey(ic.Selected())})
	case common.KeyLeftBracket:
		ic.Dispatch(interaction.SetDepth{Raw: stepSlider(ic.SliderValue(), -SliderStep)})
	case common.KeyRightBracket:
		ic.Dispatch(interaction.SetDepth{Raw: stepSlider(ic.SliderValue(), SliderStep)})
	case common.KeyR:
		ic.Dispatch(interaction.SetRotateMode{Enabled: !ic.RotateMode()})
	case common.KeyM:
		if u.display == nil {
			return false
		}
		u.display.SetStereoEnabled(!u.display.StereoEnabled())
	case common.KeyG:
		if u.display == nil {
			return false
		}
		u.display.SetGrayscale(!u.display.Grayscale())
	default:
		return false
	}
	return true
}

// Title renders the control state, e.g. "Modelos Anaglifos | protege | depth 0.110 | rotate:off".
func (u *UI) Title() string {
	ic := u.ctx.Interaction
	selected := ic.Selected()
	if selected == "" {
		selected = "loading"
	}
	rotate := "off"
	if ic.RotateMode() {
		rotate = "on"
	}

	parts := []string{u.title, selected, fmt.Sprintf("depth %.3f", ic.SliderValue()), "rotate:" + rotate}
	if u.display != nil {
		if !u.display.StereoEnabled() {
			parts = append(parts, "mono")
		}
		if !u.display.Grayscale() {
			parts = append(parts, "color")
		}
	}
	return strings.Join(parts, " | ")
}

// nextKey cycles through the animation menu. Anything not in the menu moves to its first entry.
func nextKey(current string) string {
	keys := interaction.AnimationKeys
	i := slices.Index(keys, current)
	return keys[(i+1)%len(keys)]
}

// stepSlider moves the slider by step, snapping to the slider's two-decimal grid and
// keeping it inside the slider range.
func stepSlider(value, step float32) float32 {
	v := float32(math.Round(float64(value+step)*100) / 100)
	return common.Clamp(v, interaction.SliderMin, interaction.SliderMax)
}
