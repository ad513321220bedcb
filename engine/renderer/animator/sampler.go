package animator

import (
	"sort"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// keySpan finds the pair of keys surrounding t and the blend factor between them.
// Times before the first key clamp to it, times after the last clamp to the last.
func keySpan(n int, timeAt func(int) float32, t float32) (i0, i1 int, alpha float32) {
	if n == 1 || t <= timeAt(0) {
		return 0, 0, 0
	}
	if t >= timeAt(n-1) {
		return n - 1, n - 1, 0
	}
	// first key strictly after t
	i1 = sort.Search(n, func(i int) bool { return timeAt(i) > t })
	i0 = i1 - 1
	t0, t1 := timeAt(i0), timeAt(i1)
	if t1 <= t0 {
		return i0, i0, 0
	}
	return i0, i1, (t - t0) / (t1 - t0)
}

// sampleVector evaluates a translation or scale track at time t.
func sampleVector(keys []model.VectorKeyframe, interp model.Interpolation, t float32) mgl32.Vec3 {
	i0, i1, alpha := keySpan(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if interp == model.InterpolationStep || i0 == i1 {
		return keys[i0].Value
	}
	a, b := keys[i0].Value, keys[i1].Value
	return a.Add(b.Sub(a).Mul(alpha))
}

// sampleRotation evaluates a rotation track at time t.
func sampleRotation(keys []model.QuaternionKeyframe, interp model.Interpolation, t float32) mgl32.Quat {
	i0, i1, alpha := keySpan(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if interp == model.InterpolationStep || i0 == i1 {
		return keys[i0].Value
	}
	return slerp(keys[i0].Value, keys[i1].Value, alpha)
}

// slerp interpolates along the shorter arc between a and b.
func slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t).Normalize()
}
