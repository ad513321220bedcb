package animator

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats SkinMesh writes per vertex: position then normal.
const VertexStride = 6

// SkinMesh deforms the mesh's bind-pose vertices by the joint matrices and writes the
// interleaved result into dst, growing it if needed. Vertices without weights are
// copied unchanged.
//
// Parameters:
//   - dst: destination buffer, reused when large enough
//   - mesh: the mesh to deform
//   - joints: joint matrices from Animator.JointMatrices
//
// Returns:
//   - []float32: dst resized to len(mesh.Vertices) * VertexStride
func SkinMesh(dst []float32, mesh *model.Mesh, joints []mgl32.Mat4) []float32 {
	need := len(mesh.Vertices) * VertexStride
	if cap(dst) < need {
		dst = make([]float32, need)
	}
	dst = dst[:need]

	for i, v := range mesh.Vertices {
		p, n := v.Position, v.Normal

		var skin mgl32.Mat4
		var total float32
		for k := 0; k < 4; k++ {
			w := v.Weights[k]
			if w == 0 || int(v.Joints[k]) >= len(joints) {
				continue
			}
			skin = skin.Add(joints[v.Joints[k]].Mul(w))
			total += w
		}
		if total > 0 {
			if total != 1 {
				skin = skin.Mul(1 / total)
			}
			p = mgl32.TransformCoordinate(p, skin)
			n = mgl32.TransformNormal(n, skin)
			if l := n.Len(); l > 0 {
				n = n.Mul(1 / l)
			}
		}

		o := i * VertexStride
		dst[o+0], dst[o+1], dst[o+2] = p[0], p[1], p[2]
		dst[o+3], dst[o+4], dst[o+5] = n[0], n[1], n[2]
	}
	return dst
}
