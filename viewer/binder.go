package viewer

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/animator"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/playback"
)

// animatorBinder adapts the character's animator mixer to the playback registry.
type animatorBinder struct {
	animator animator.Animator
}

var _ playback.ActionBinder = &animatorBinder{}

// NewAnimatorBinder returns a playback.ActionBinder backed by a.
func NewAnimatorBinder(a animator.Animator) playback.ActionBinder {
	return &animatorBinder{animator: a}
}

func (b *animatorBinder) Bind(clip *model.AnimationClip) playback.Action {
	return b.animator.ClipAction(clip)
}

func (b *animatorBinder) Update(dt float32) {
	b.animator.Update(dt)
}
