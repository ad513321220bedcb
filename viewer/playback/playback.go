// Package playback keeps the registry of named animation actions for the loaded
// character and switches between them with a short cross-fade.
package playback

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
)

const (
	// CrossFadeDuration is the length in seconds of the blend between two actions.
	CrossFadeDuration float32 = 0.25

	// IdleKey is the action PlayInitial prefers when it is registered.
	IdleKey = "idle"
)

// Action is the part of an animation action the controller drives.
type Action interface {
	// Reset rewinds to time zero, clears any fade and enables the action.
	Reset()

	// Play schedules the action for advancing and blending.
	Play()

	// SetLoopRepeat makes the action restart from zero when it reaches the end.
	SetLoopRepeat()

	// SetEnabled toggles whether the action contributes to the pose.
	SetEnabled(enabled bool)

	// FadeIn ramps the action's weight up to full over duration seconds.
	FadeIn(duration float32)

	// FadeOut ramps the action's weight down to zero over duration seconds.
	FadeOut(duration float32)
}

// ActionBinder creates actions for clips and advances all of them. It is the
// animation evaluator of the character (an animator mixer).
type ActionBinder interface {
	// Bind returns the action that plays clip on the character.
	Bind(clip *model.AnimationClip) Action

	// Update advances every active or blending action by dt seconds.
	Update(dt float32)
}

// Controller owns the key to action registry and the currently playing action.
// It is not safe for concurrent use; the frame loop and input handlers share one thread.
type Controller struct {
	binder ActionBinder

	actions map[string]Action
	order   []string

	// current is the playing action itself. Re-registering its key replaces the registry
	// entry but not what is playing.
	current    Action
	currentKey string
}

// NewController creates an empty registry bound to an animation evaluator.
//
// Parameters:
//   - binder: creates actions for clips and advances them
//
// Returns:
//   - *Controller: the controller with no current action
func NewController(binder ActionBinder) *Controller {
	return &Controller{
		binder:  binder,
		actions: make(map[string]Action),
	}
}

// RegisterAction binds clip under key as a looping, enabled, not yet playing action.
// Registering an existing key replaces its action; the key keeps its original position
// in Keys. Replacing the current action does not stop the one already playing; it is
// faded out by the next switch, and Play with the same key starts the replacement.
//
// Parameters:
//   - key: animation name, such as "protege"
//   - clip: the clip to bind
func (c *Controller) RegisterAction(key string, clip *model.AnimationClip) {
	action := c.binder.Bind(clip)
	action.SetLoopRepeat()
	action.SetEnabled(true)

	if _, ok := c.actions[key]; !ok {
		c.order = append(c.order, key)
	}
	c.actions[key] = action
}

// Play switches to the action registered under key. Unknown keys and the action that is
// already playing are ignored. Otherwise the requested action restarts from zero and,
// when something was playing, the two cross-fade over CrossFadeDuration. The current
// key changes immediately even though the old action keeps blending out.
//
// Parameters:
//   - key: the animation to play
func (c *Controller) Play(key string) {
	next, ok := c.actions[key]
	if !ok {
		return
	}
	if next == c.current {
		return
	}

	next.Reset()
	next.Play()

	if c.current != nil {
		c.current.FadeOut(CrossFadeDuration)
		next.FadeIn(CrossFadeDuration)
	}

	c.current = next
	c.currentKey = key
}

// Advance moves every active action forward by dt seconds.
func (c *Controller) Advance(dt float32) {
	c.binder.Update(dt)
}

// PlayInitial starts the idle action if one is registered, otherwise the first
// registered key. With an empty registry nothing happens.
func (c *Controller) PlayInitial() {
	if _, ok := c.actions[IdleKey]; ok {
		c.Play(IdleKey)
		return
	}
	if len(c.order) > 0 {
		c.Play(c.order[0])
	}
}

// Current returns the key of the playing action, if any.
func (c *Controller) Current() (string, bool) {
	return c.currentKey, c.current != nil
}

// Keys returns the registered keys in first-registration order.
func (c *Controller) Keys() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether key is registered.
func (c *Controller) Has(key string) bool {
	_, ok := c.actions[key]
	return ok
}

// Len returns the number of registered keys.
func (c *Controller) Len() int {
	return len(c.order)
}
