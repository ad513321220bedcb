package animator

import (
	"math"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
)

// LoopMode controls what an action does when its time passes the clip duration.
type LoopMode uint8

const (
	// LoopRepeat wraps time back to the start of the clip.
	LoopRepeat LoopMode = iota
	// LoopOnce holds the last frame once the clip ends.
	LoopOnce
)

// fade is a scheduled linear weight ramp.
type fade struct {
	from, to          float32
	elapsed, duration float32
}

// Action is the playback state of one clip inside an Animator: its local time, its
// weight, and an optional fade in or out. Actions are created by Animator.ClipAction and
// only advance while they are running.
type Action struct {
	clip  *model.AnimationClip
	mixer *animator

	time      float32
	timeScale float32
	loop      LoopMode

	// weight is the user weight; fadeValue is the current fade ramp value.
	weight    float32
	fadeValue float32
	fade      *fade

	enabled bool
	running bool
}

func newAction(clip *model.AnimationClip, mixer *animator) *Action {
	return &Action{
		clip:      clip,
		mixer:     mixer,
		timeScale: 1,
		loop:      LoopRepeat,
		weight:    1,
		fadeValue: 1,
		enabled:   true,
	}
}

// Clip returns the clip this action plays.
func (a *Action) Clip() *model.AnimationClip {
	return a.clip
}

// Reset rewinds the action to time zero, cancels any fade and enables it. It does not
// start playback.
func (a *Action) Reset() {
	a.time = 0
	a.fade = nil
	a.fadeValue = 1
	a.enabled = true
}

// Play schedules the action in its mixer so Update advances and blends it.
func (a *Action) Play() {
	a.running = true
	a.mixer.activate(a)
}

// Stop removes the action from its mixer and rewinds it.
func (a *Action) Stop() {
	a.running = false
	a.mixer.deactivate(a)
	a.Reset()
}

// FadeIn ramps the action's weight from zero to one over duration seconds.
func (a *Action) FadeIn(duration float32) {
	a.scheduleFade(0, 1, duration)
}

// FadeOut ramps the action's weight from its current value to zero over duration seconds.
// When the ramp completes the action is disabled and leaves the mixer.
func (a *Action) FadeOut(duration float32) {
	a.scheduleFade(a.fadeValue, 0, duration)
}

// CrossFadeTo fades this action out and next in over the same duration.
func (a *Action) CrossFadeTo(next *Action, duration float32) {
	a.FadeOut(duration)
	next.FadeIn(duration)
}

// SetLoop sets the loop mode.
func (a *Action) SetLoop(mode LoopMode) {
	a.loop = mode
}

// SetLoopRepeat makes the action wrap around at the end of its clip.
func (a *Action) SetLoopRepeat() {
	a.loop = LoopRepeat
}

// Loop returns the loop mode.
func (a *Action) Loop() LoopMode {
	return a.loop
}

// SetEnabled toggles whether the action contributes to the pose.
func (a *Action) SetEnabled(enabled bool) {
	a.enabled = enabled
}

// Enabled reports whether the action contributes to the pose.
func (a *Action) Enabled() bool {
	return a.enabled
}

// IsRunning reports whether the action is scheduled and enabled.
func (a *Action) IsRunning() bool {
	return a.running && a.enabled
}

// SetTimeScale sets the playback speed multiplier (1 = normal speed).
func (a *Action) SetTimeScale(scale float32) {
	a.timeScale = scale
}

// SetWeight sets the user weight applied on top of any fade.
func (a *Action) SetWeight(weight float32) {
	a.weight = weight
}

// Weight returns the effective weight: user weight times fade value, or zero when disabled.
func (a *Action) Weight() float32 {
	if !a.enabled {
		return 0
	}
	return a.weight * a.fadeValue
}

// Time returns the local clip time in seconds.
func (a *Action) Time() float32 {
	return a.time
}

// SetTime moves the local clip time.
func (a *Action) SetTime(t float32) {
	a.time = t
}

// Fading reports whether a weight ramp is in progress.
func (a *Action) Fading() bool {
	return a.fade != nil
}

func (a *Action) scheduleFade(from, to, duration float32) {
	if duration <= 0 {
		a.fade = nil
		a.fadeValue = to
		a.finishFade()
		return
	}
	a.fade = &fade{from: from, to: to, duration: duration}
	a.fadeValue = from
}

// finishFade disables an action whose weight has reached zero.
func (a *Action) finishFade() {
	if a.fadeValue == 0 {
		a.enabled = false
		a.running = false
		a.mixer.deactivate(a)
	}
}

// advance moves time and the fade ramp forward. dt is the mixer's delta; the fade runs
// on it directly while clip time is scaled by the action's time scale.
func (a *Action) advance(dt float32) {
	if !a.IsRunning() {
		return
	}

	a.time += dt * a.timeScale
	duration := a.clip.Duration
	switch a.loop {
	case LoopRepeat:
		if duration > 0 && (a.time >= duration || a.time < 0) {
			a.time = float32(math.Mod(float64(a.time), float64(duration)))
			if a.time < 0 {
				a.time += duration
			}
		}
	case LoopOnce:
		a.time = max(0, min(a.time, duration))
	}

	if a.fade != nil {
		a.fade.elapsed += dt
		progress := min(a.fade.elapsed/a.fade.duration, 1)
		a.fadeValue = a.fade.from + (a.fade.to-a.fade.from)*progress
		if progress >= 1 {
			a.fadeValue = a.fade.to
			a.fade = nil
			a.finishFade()
		}
	}
}
