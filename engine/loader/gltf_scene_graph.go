package loader

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// sceneGraph is the node hierarchy of a document reduced to what skinning needs.
type sceneGraph struct {
	names   []string
	parents []int
	locals  []model.Transform
	// matrices holds node.matrix when set; such nodes are not animatable.
	matrices []*mgl32.Mat4
}

func newSceneGraph(doc *gltf.Document) *sceneGraph {
	n := len(doc.Nodes)
	g := &sceneGraph{
		names:    make([]string, n),
		parents:  make([]int, n),
		locals:   make([]model.Transform, n),
		matrices: make([]*mgl32.Mat4, n),
	}
	for i := range g.parents {
		g.parents[i] = -1
	}

	for i, node := range doc.Nodes {
		g.names[i] = node.Name
		for _, child := range node.Children {
			if child >= 0 && child < n {
				g.parents[child] = i
			}
		}

		t := node.TranslationOrDefault()
		r := node.RotationOrDefault()
		s := node.ScaleOrDefault()
		g.locals[i] = model.Transform{
			Translation: mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
			Rotation:    mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}},
			Scale:       mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])},
		}

		raw := node.MatrixOrDefault()
		var m mgl32.Mat4
		for k := range m {
			m[k] = float32(raw[k])
		}
		if m != mgl32.Ident4() {
			g.matrices[i] = &m
		}
	}
	return g
}

// local returns the node's local matrix.
func (g *sceneGraph) local(i int) mgl32.Mat4 {
	if g.matrices[i] != nil {
		return *g.matrices[i]
	}
	return g.locals[i].Matrix()
}

// world returns the node's accumulated matrix from the scene root.
func (g *sceneGraph) world(i int) mgl32.Mat4 {
	m := g.local(i)
	for p := g.parents[i]; p >= 0; p = g.parents[p] {
		m = g.local(p).Mul4(m)
	}
	return m
}

// rest returns the node's local transform for use as a bone rest pose.
func (g *sceneGraph) rest(i int) model.Transform {
	if g.matrices[i] != nil {
		return decompose(*g.matrices[i])
	}
	return g.locals[i]
}

// decompose splits an affine matrix without shear into translation, rotation and scale.
func decompose(m mgl32.Mat4) model.Transform {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}
	var rot mgl32.Mat3
	for c, s := range []float32{sx, sy, sz} {
		if s == 0 {
			continue
		}
		col := m.Col(c).Vec3().Mul(1 / s)
		rot.SetCol(c, col)
	}
	return model.Transform{
		Translation: m.Col(3).Vec3(),
		Rotation:    mgl32.Mat4ToQuat(rot.Mat4()).Normalize(),
		Scale:       mgl32.Vec3{sx, sy, sz},
	}
}

// indexOf reads an optional glTF index field whether the library exposes it as a
// plain int or as *int.
func indexOf(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case *int:
		if x != nil {
			return *x, true
		}
	case uint32:
		return int(x), true
	case *uint32:
		if x != nil {
			return int(*x), true
		}
	}
	return 0, false
}
