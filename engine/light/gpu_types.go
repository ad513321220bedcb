package light

import "github.com/go-gl/mathgl/mgl32"

// GPULighting is the lighting block of the per-eye frame uniform.
// Matches the WGSL struct layout:
//
//	struct Lighting {
//	    direction: vec4<f32>, // xyz = direction toward the light, w unused
//	    color:     vec4<f32>, // rgb = directional radiance
//	    ambient:   vec4<f32>, // rgb = summed ambient radiance
//	}
type GPULighting struct {
	Direction [4]float32
	Color     [4]float32
	Ambient   [4]float32
}

// Size returns the byte size of the block.
func (g *GPULighting) Size() int {
	return 48
}

// Pack folds the scene's lights into the single directional and ambient terms the
// shader evaluates. The first enabled directional light wins; ambient radiance sums.
// Without a directional light the direction points straight down and carries no color.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULighting: the packed block
func Pack(lights []Light) GPULighting {
	var out GPULighting
	out.Direction = [4]float32{0, 1, 0, 0}

	var ambient mgl32.Vec3
	haveKey := false
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeDirectional:
			if haveKey {
				continue
			}
			haveKey = true
			d := l.Direction().Mul(-1)
			c := l.Radiance()
			out.Direction = [4]float32{d[0], d[1], d[2], 0}
			out.Color = [4]float32{c[0], c[1], c[2], 0}
		case LightTypeAmbient:
			ambient = ambient.Add(l.Radiance())
		}
	}
	out.Ambient = [4]float32{ambient[0], ambient[1], ambient[2], 0}
	return out
}
