package viewer

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

const groundSize float32 = 60

var groundColor = mgl32.Vec4{0x10 / 255.0, 0x15 / 255.0, 0x22 / 255.0, 1}

// NewGroundModel builds a static square floor of side size centered on the origin, just
// below y = 0 so it does not fight with the character's feet.
func NewGroundModel(size float32, color mgl32.Vec4) model.Model {
	h := size / 2
	const y = -0.001
	up := mgl32.Vec3{0, 1, 0}
	corners := []mgl32.Vec3{{-h, y, -h}, {h, y, -h}, {h, y, h}, {-h, y, h}}

	vertices := make([]model.SkinnedVertex, len(corners))
	for i, p := range corners {
		vertices[i] = model.SkinnedVertex{Position: p, Normal: up}
	}
	mesh := &model.Mesh{
		Name:        "ground",
		Vertices:    vertices,
		Indices:     []uint32{0, 2, 1, 0, 3, 2},
		BaseColor:   color,
		BoundingMin: mgl32.Vec3{-h, y, -h},
		BoundingMax: mgl32.Vec3{h, y, h},
	}
	return model.NewModel(model.WithName("ground"), model.WithMeshes(mesh))
}
