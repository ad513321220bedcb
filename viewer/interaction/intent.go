package interaction

// Intent is a typed request from an input source. Keyboard, menu, slider and pointer
// handlers all reduce to one of these before reaching the controller.
type Intent interface {
	isIntent()
}

// SelectAnimation asks for the named animation to become current.
type SelectAnimation struct {
	Key string
}

func (SelectAnimation) isIntent() {}

// SetDepth carries a raw slider value in slider units (nominally [SliderMin, SliderMax]).
type SetDepth struct {
	Raw float32
}

func (SetDepth) isIntent() {}

// RotateDelta carries a horizontal pointer movement in pixels since the previous move.
type RotateDelta struct {
	DX float32
}

func (RotateDelta) isIntent() {}

// SetRotateMode switches the explicit rotate toggle.
type SetRotateMode struct {
	Enabled bool
}

func (SetRotateMode) isIntent() {}
