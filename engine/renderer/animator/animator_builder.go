package animator

// AnimatorBuilderOption is a functional option for configuring an animator.
type AnimatorBuilderOption func(*animator)

// WithTimeScale sets a global speed multiplier applied to every action.
//
// Parameters:
//   - scale: speed multiplier (1 = real time)
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithTimeScale(scale float32) AnimatorBuilderOption {
	return func(a *animator) {
		a.timeScale = scale
	}
}
