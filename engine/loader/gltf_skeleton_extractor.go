package loader

import (
	"fmt"
	"sort"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// buildSkeleton converts a skin's joint list into a skeleton whose bones are sorted so
// parents precede children.
//
// Parameters:
//   - g: the document's node hierarchy
//   - joints: node indices of the skin's joints, in skin order
//   - inverseBind: the skin's inverse bind matrices, in skin order (may be shorter)
//
// Returns:
//   - *model.Skeleton: the sorted skeleton
//   - map[int]int32: node index to bone index
//   - error: error if a joint references a missing node
func buildSkeleton(g *sceneGraph, joints []int, inverseBind []mgl32.Mat4) (*model.Skeleton, map[int]int32, error) {
	isJoint := make(map[int]int, len(joints))
	for order, node := range joints {
		if node < 0 || node >= len(g.names) {
			return nil, nil, fmt.Errorf("joint %d: invalid node index %d", order, node)
		}
		isJoint[node] = order
	}

	// The nearest joint ancestor is the parent bone. Non-joint ancestors above a root
	// joint (an armature node, typically) fold into its base transform.
	parentJoint := make([]int, len(joints))
	depth := make([]int, len(joints))
	for order, node := range joints {
		parentJoint[order] = -1
		for p := g.parents[node]; p >= 0; p = g.parents[p] {
			if o, ok := isJoint[p]; ok {
				parentJoint[order] = o
				break
			}
		}
		for p := g.parents[node]; p >= 0; p = g.parents[p] {
			if _, ok := isJoint[p]; ok {
				depth[order]++
			}
		}
	}

	sorted := make([]int, len(joints))
	for i := range sorted {
		sorted[i] = i
	}
	sort.SliceStable(sorted, func(a, b int) bool { return depth[sorted[a]] < depth[sorted[b]] })

	orderToBone := make([]int32, len(joints))
	for bone, order := range sorted {
		orderToBone[order] = int32(bone)
	}

	skeleton := &model.Skeleton{
		Bones:           make([]model.Bone, len(joints)),
		BoneNameToIndex: make(map[string]int32, len(joints)),
	}
	nodeToBone := make(map[int]int32, len(joints))

	for bone, order := range sorted {
		node := joints[order]
		b := &skeleton.Bones[bone]

		b.Name = g.names[node]
		if b.Name == "" {
			b.Name = fmt.Sprintf("bone_%d", order)
		}
		b.Rest = g.rest(node)
		b.InverseBindMatrix = mgl32.Ident4()
		if order < len(inverseBind) {
			b.InverseBindMatrix = inverseBind[order]
		}

		if parentJoint[order] >= 0 {
			b.ParentIndex = orderToBone[parentJoint[order]]
		} else {
			b.ParentIndex = -1
			b.BaseTransform = mgl32.Ident4()
			if p := g.parents[node]; p >= 0 {
				b.BaseTransform = g.world(p)
			}
			skeleton.RootBoneIndices = append(skeleton.RootBoneIndices, int32(bone))
		}

		skeleton.BoneNameToIndex[b.Name] = int32(bone)
		nodeToBone[node] = int32(bone)
	}

	return skeleton, nodeToBone, nil
}
