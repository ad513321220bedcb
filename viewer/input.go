package viewer

import "github.com/PaolaOrtiz0320/modelosanaglifos/common"

// Every pointer event goes to both the camera rig and the interaction controller, so a
// rotate drag also orbits the camera.

// PointerDown forwards a primary-button press.
func (c *Context) PointerDown(x, y float32, mods common.Modifier) {
	if rig := c.Camera.Controller(); rig != nil {
		rig.PointerDown(x, y)
	}
	c.Interaction.PointerDown(x, mods)
}

// PointerMove forwards a cursor move.
func (c *Context) PointerMove(x, y float32) {
	if rig := c.Camera.Controller(); rig != nil {
		rig.PointerMove(x, y)
	}
	c.Interaction.PointerMove(x)
}

// PointerUp forwards a primary-button release.
func (c *Context) PointerUp() {
	if rig := c.Camera.Controller(); rig != nil {
		rig.PointerUp()
	}
	c.Interaction.PointerUp()
}

// Scroll zooms the camera rig.
func (c *Context) Scroll(delta float32) {
	if rig := c.Camera.Controller(); rig != nil {
		rig.Zoom(delta)
	}
}
