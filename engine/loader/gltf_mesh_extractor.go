package loader

import (
	"fmt"
	"math"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// defaultBaseColor is used for primitives without a material.
var defaultBaseColor = mgl32.Vec4{0.8, 0.8, 0.8, 1}

// extractMeshes reads every triangle primitive of every mesh node. Primitives of nodes
// skinned to the character skin keep bind-pose positions and bone influences; all other
// primitives are baked into world space with zero weights.
//
// Parameters:
//   - doc: the parsed document
//   - g: the document's node hierarchy
//   - skinIndex: the character skin, or -1 for a static model
//   - nodeToBone: joint node index to bone index
//
// Returns:
//   - []*model.Mesh: one mesh per primitive
//   - error: error if an accessor cannot be read
func extractMeshes(doc *gltf.Document, g *sceneGraph, skinIndex int, nodeToBone map[int]int32) ([]*model.Mesh, error) {
	var meshes []*model.Mesh

	for ni, node := range doc.Nodes {
		if node.Mesh == nil || *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			continue
		}
		src := doc.Meshes[*node.Mesh]

		var jointNodes []int
		if node.Skin != nil && *node.Skin == skinIndex && skinIndex >= 0 {
			jointNodes = doc.Skins[skinIndex].Joints
		}
		bake := mgl32.Ident4()
		if jointNodes == nil {
			bake = g.world(ni)
		}

		for pi, prim := range src.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			mesh, err := extractPrimitive(doc, prim, jointNodes, nodeToBone, bake)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, pi, err)
			}
			mesh.Name = src.Name
			if mesh.Name == "" {
				mesh.Name = fmt.Sprintf("mesh_%d_%d", *node.Mesh, pi)
			}
			meshes = append(meshes, mesh)
		}
	}
	return meshes, nil
}

func extractPrimitive(doc *gltf.Document, prim *gltf.Primitive, jointNodes []int, nodeToBone map[int]int32, bake mgl32.Mat4) (*model.Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var indices []uint32
	if idx, ok := indexOf(prim.Indices); ok {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if len(normals) != len(positions) {
		normals = computeNormals(positions, indices)
	}

	var joints [][4]uint16
	var weights [][4]float32
	if jointNodes != nil {
		jIdx, hasJ := prim.Attributes["JOINTS_0"]
		wIdx, hasW := prim.Attributes["WEIGHTS_0"]
		if hasJ && hasW {
			if joints, err = modeler.ReadJoints(doc, doc.Accessors[jIdx], nil); err != nil {
				return nil, fmt.Errorf("joints: %w", err)
			}
			if weights, err = modeler.ReadWeights(doc, doc.Accessors[wIdx], nil); err != nil {
				return nil, fmt.Errorf("weights: %w", err)
			}
		}
	}

	vertices := make([]model.SkinnedVertex, len(positions))
	for i, p := range positions {
		v := &vertices[i]
		v.Position = mgl32.Vec3{p[0], p[1], p[2]}
		n := normals[i]
		v.Normal = mgl32.Vec3{n[0], n[1], n[2]}

		if i < len(joints) && i < len(weights) {
			v.Joints, v.Weights = remapInfluences(joints[i], weights[i], jointNodes, nodeToBone)
		}
		if v.Weights == ([4]float32{}) && bake != mgl32.Ident4() {
			v.Position = mgl32.TransformCoordinate(v.Position, bake)
			v.Normal = mgl32.TransformNormal(v.Normal, bake).Normalize()
		}
	}

	mesh := &model.Mesh{
		Vertices:  vertices,
		Indices:   indices,
		BaseColor: materialColor(doc, prim),
	}
	mesh.BoundingMin, mesh.BoundingMax = vertexBounds(vertices)
	return mesh, nil
}

// remapInfluences converts skin-local joint slots to skeleton bone indices and
// renormalizes the weights. Influences on joints outside the skeleton are dropped.
func remapInfluences(joints [4]uint16, weights [4]float32, jointNodes []int, nodeToBone map[int]int32) ([4]uint32, [4]float32) {
	var outJ [4]uint32
	var outW [4]float32
	var total float32
	for k := 0; k < 4; k++ {
		if weights[k] <= 0 || int(joints[k]) >= len(jointNodes) {
			continue
		}
		bone, ok := nodeToBone[jointNodes[joints[k]]]
		if !ok {
			continue
		}
		outJ[k] = uint32(bone)
		outW[k] = weights[k]
		total += weights[k]
	}
	if total > 0 && total != 1 {
		for k := range outW {
			outW[k] /= total
		}
	}
	return outJ, outW
}

// computeNormals builds smooth vertex normals by summing area-weighted face normals.
func computeNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		pa, pb, pc := mgl32.Vec3(positions[a]), mgl32.Vec3(positions[b]), mgl32.Vec3(positions[c])
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(face)
		acc[b] = acc[b].Add(face)
		acc[c] = acc[c].Add(face)
	}
	out := make([][3]float32, len(positions))
	for i, n := range acc {
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		out[i] = [3]float32(n)
	}
	return out
}

func vertexBounds(vertices []model.SkinnedVertex) (mgl32.Vec3, mgl32.Vec3) {
	if len(vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	inf := float32(math.Inf(1))
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range vertices {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}

func materialColor(doc *gltf.Document, prim *gltf.Primitive) mgl32.Vec4 {
	mi, ok := indexOf(prim.Material)
	if !ok || mi < 0 || mi >= len(doc.Materials) {
		return defaultBaseColor
	}
	pbr := doc.Materials[mi].PBRMetallicRoughness
	if pbr == nil {
		return defaultBaseColor
	}
	c := pbr.BaseColorFactorOrDefault()
	return mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}
