package loader

import (
	"fmt"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// trackPath is the transform component a track animates.
type trackPath uint8

const (
	pathTranslation trackPath = iota
	pathRotation
	pathScale
)

// rawTrack is one glTF channel with its sampler already read.
type rawTrack struct {
	nodeName string
	path     trackPath
	interp   model.Interpolation
	times    []float32
	// values holds vec3 for translation/scale and vec4 (x, y, z, w) for rotation.
	values [][4]float32
}

// readTracks reads every TRS channel of an animation. Morph target weights are skipped.
func readTracks(doc *gltf.Document, anim *gltf.Animation) ([]rawTrack, error) {
	tracks := make([]rawTrack, 0, len(anim.Channels))
	for ci, ch := range anim.Channels {
		node, ok := indexOf(ch.Target.Node)
		if !ok || node < 0 || node >= len(doc.Nodes) {
			continue
		}

		var path trackPath
		switch ch.Target.Path {
		case gltf.TRSTranslation:
			path = pathTranslation
		case gltf.TRSRotation:
			path = pathRotation
		case gltf.TRSScale:
			path = pathScale
		default:
			continue
		}

		si, ok := indexOf(ch.Sampler)
		if !ok || si < 0 || si >= len(anim.Samplers) {
			return nil, fmt.Errorf("channel %d: invalid sampler", ci)
		}
		sampler := anim.Samplers[si]

		input, _ := indexOf(sampler.Input)
		output, _ := indexOf(sampler.Output)
		times, err := readFloats(doc, input)
		if err != nil {
			return nil, fmt.Errorf("channel %d input: %w", ci, err)
		}
		values, err := readVectors(doc, output)
		if err != nil {
			return nil, fmt.Errorf("channel %d output: %w", ci, err)
		}

		interp := model.InterpolationLinear
		switch sampler.Interpolation {
		case gltf.InterpolationStep:
			interp = model.InterpolationStep
		case gltf.InterpolationCubicSpline:
			// in-tangent, value, out-tangent per key; keep the values and blend linearly.
			values = cubicSplineValues(values)
		}

		tracks = append(tracks, rawTrack{
			nodeName: doc.Nodes[node].Name,
			path:     path,
			interp:   interp,
			times:    times,
			values:   values,
		})
	}
	return tracks, nil
}

// bindTracks groups tracks per bone by node name. Tracks for nodes that are not joints of
// the skeleton are dropped.
func bindTracks(name string, tracks []rawTrack, skeleton *model.Skeleton) (*model.AnimationClip, error) {
	clip := &model.AnimationClip{Name: name}
	channelOf := make(map[int32]int)

	for _, tr := range tracks {
		bone, ok := skeleton.BoneIndex(tr.nodeName)
		if !ok {
			continue
		}
		n := min(len(tr.times), len(tr.values))
		if n == 0 {
			continue
		}

		idx, ok := channelOf[bone]
		if !ok {
			idx = len(clip.Channels)
			channelOf[bone] = idx
			clip.Channels = append(clip.Channels, model.AnimationChannel{BoneIndex: bone})
		}
		ch := &clip.Channels[idx]

		switch tr.path {
		case pathTranslation, pathScale:
			keys := make([]model.VectorKeyframe, n)
			for i := 0; i < n; i++ {
				v := tr.values[i]
				keys[i] = model.VectorKeyframe{Time: tr.times[i], Value: mgl32.Vec3{v[0], v[1], v[2]}}
			}
			if tr.path == pathTranslation {
				ch.PositionKeys, ch.PositionInterpolation = keys, tr.interp
			} else {
				ch.ScaleKeys, ch.ScaleInterpolation = keys, tr.interp
			}
		case pathRotation:
			keys := make([]model.QuaternionKeyframe, n)
			for i := 0; i < n; i++ {
				v := tr.values[i]
				q := mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
				keys[i] = model.QuaternionKeyframe{Time: tr.times[i], Value: q.Normalize()}
			}
			ch.RotationKeys, ch.RotationInterpolation = keys, tr.interp
		}

		clip.Duration = max(clip.Duration, tr.times[n-1])
	}

	if len(clip.Channels) == 0 {
		return nil, ErrUnboundClip
	}
	return clip, nil
}

// cubicSplineValues keeps the middle element of every (in, value, out) triple.
func cubicSplineValues(v [][4]float32) [][4]float32 {
	out := make([][4]float32, 0, len(v)/3)
	for i := 1; i < len(v); i += 3 {
		out = append(out, v[i])
	}
	return out
}

// readFloats reads a SCALAR float accessor.
func readFloats(doc *gltf.Document, accessor int) ([]float32, error) {
	data, err := readAccessor(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch d := data.(type) {
	case []float32:
		return d, nil
	default:
		return nil, fmt.Errorf("accessor %d: unexpected %T for keyframe times", accessor, data)
	}
}

// readVectors reads a VEC3 or VEC4 accessor into vec4 slots, undoing integer normalization.
func readVectors(doc *gltf.Document, accessor int) ([][4]float32, error) {
	data, err := readAccessor(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch d := data.(type) {
	case [][3]float32:
		out := make([][4]float32, len(d))
		for i, v := range d {
			out[i] = [4]float32{v[0], v[1], v[2], 0}
		}
		return out, nil
	case [][4]float32:
		return d, nil
	case [][4]int16:
		return normalizeVec4(d, 32767), nil
	case [][4]int8:
		return normalizeVec4(d, 127), nil
	case [][4]uint16:
		return normalizeVec4(d, 65535), nil
	case [][4]uint8:
		return normalizeVec4(d, 255), nil
	default:
		return nil, fmt.Errorf("accessor %d: unexpected %T for keyframe values", accessor, data)
	}
}

func normalizeVec4[T int8 | int16 | uint8 | uint16](in [][4]T, scale float32) [][4]float32 {
	out := make([][4]float32, len(in))
	for i, v := range in {
		for k := 0; k < 4; k++ {
			out[i][k] = max(float32(v[k])/scale, -1)
		}
	}
	return out
}

// readMatrices reads a MAT4 accessor (column-major, as glTF stores it).
func readMatrices(doc *gltf.Document, accessor int) ([]mgl32.Mat4, error) {
	data, err := readAccessor(doc, accessor)
	if err != nil {
		return nil, err
	}
	d, ok := data.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: unexpected %T for matrices", accessor, data)
	}
	out := make([]mgl32.Mat4, len(d))
	for i, cols := range d {
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				out[i][c*4+r] = cols[c][r]
			}
		}
	}
	return out, nil
}

func readAccessor(doc *gltf.Document, accessor int) (any, error) {
	if accessor < 0 || accessor >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessor)
	}
	return modeler.ReadAccessor(doc, doc.Accessors[accessor], nil)
}
