package loader

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	open func(path string) (*gltf.Document, error)
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		open: gltf.Open,
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (model.Model, error) {
	doc, err := b.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	return buildModel(doc, modelName(path))
}

func (b *gltfLoaderBackendImpl) LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error) {
	doc, err := b.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	if len(doc.Animations) == 0 {
		return nil, ErrNoAnimation
	}
	if len(doc.Animations) > 1 {
		log.Printf("[Loader] %s: %d animations, using the first", filepath.Base(path), len(doc.Animations))
	}

	anim := doc.Animations[0]
	tracks, err := readTracks(doc, anim)
	if err != nil {
		return nil, err
	}
	name := anim.Name
	if name == "" {
		name = modelName(path)
	}
	return bindTracks(name, tracks, skeleton)
}

// buildModel assembles a Model from a parsed document. The first skin referenced by a
// mesh node becomes the character skeleton; documents without one load as static models.
func buildModel(doc *gltf.Document, name string) (model.Model, error) {
	g := newSceneGraph(doc)

	skinIndex := findSkin(doc)
	var skeleton *model.Skeleton
	var nodeToBone map[int]int32
	if skinIndex >= 0 {
		skin := doc.Skins[skinIndex]
		var ibm []mgl32.Mat4
		if acc, ok := indexOf(skin.InverseBindMatrices); ok {
			var err error
			if ibm, err = readMatrices(doc, acc); err != nil {
				return nil, fmt.Errorf("skin %d inverse bind matrices: %w", skinIndex, err)
			}
		}
		var err error
		if skeleton, nodeToBone, err = buildSkeleton(g, skin.Joints, ibm); err != nil {
			return nil, fmt.Errorf("skin %d: %w", skinIndex, err)
		}
	}

	meshes, err := extractMeshes(doc, g, skinIndex, nodeToBone)
	if err != nil {
		return nil, err
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("no triangle meshes in %s", name)
	}

	opts := []model.ModelBuilderOption{
		model.WithName(name),
		model.WithMeshes(meshes...),
	}
	if skeleton != nil {
		opts = append(opts, model.WithSkeleton(skeleton))
		for i, anim := range doc.Animations {
			clip, err := bundledClip(doc, anim, i, skeleton)
			if err != nil {
				log.Printf("[Loader] %s: skipping animation %d: %v", name, i, err)
				continue
			}
			opts = append(opts, model.WithAnimations(clip))
		}
	}

	return model.NewModel(opts...), nil
}

func bundledClip(doc *gltf.Document, anim *gltf.Animation, i int, skeleton *model.Skeleton) (*model.AnimationClip, error) {
	tracks, err := readTracks(doc, anim)
	if err != nil {
		return nil, err
	}
	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", i)
	}
	return bindTracks(name, tracks, skeleton)
}

// findSkin returns the skin of the first node that carries both a mesh and a skin, or -1.
func findSkin(doc *gltf.Document) int {
	for _, node := range doc.Nodes {
		if node.Mesh == nil || node.Skin == nil {
			continue
		}
		if s := *node.Skin; s >= 0 && s < len(doc.Skins) {
			return s
		}
	}
	return -1
}

func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
