package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

var (
	// ErrNoAnimation is returned when an animation file contains no clips.
	ErrNoAnimation = errors.New("file contains no animations")

	// ErrNoSkin is returned when a clip is requested for a model without a skeleton.
	ErrNoSkin = errors.New("model has no skeleton")

	// ErrUnboundClip is returned when none of a clip's channels target a joint of the skeleton.
	ErrUnboundClip = errors.New("animation does not target any joint of the skeleton")

	// ErrUnsupportedFormat is returned for file extensions no backend handles.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format behind a backend and caches models by path. Loads may run
// on a worker goroutine; the cache is safe for concurrent use.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the .gltf or .glb file
	//
	// Returns:
	//   - model.Model: meshes, skeleton and bundled clips
	//   - error: error if the file cannot be read or parsed
	Load(path string) (model.Model, error)

	// LoadClip imports the first animation clip of a file and binds it to skeleton by
	// joint name. Additional clips in the file are ignored. Clips are not cached.
	//
	// Parameters:
	//   - path: the .gltf or .glb animation file
	//   - skeleton: the character skeleton the clip will drive
	//
	// Returns:
	//   - *model.AnimationClip: the bound clip
	//   - error: ErrNoSkin, ErrNoAnimation, ErrUnboundClip, or a read/parse error
	LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error)

	// Get retrieves a cached model by path. Returns nil if not found.
	Get(path string) model.Model

	// Models returns a snapshot of the model cache.
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the file format backend
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}
	if err := checkExtension(path); err != nil {
		return nil, err
	}

	m, err := l.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()
	return m, nil
}

func (l *loader) LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error) {
	if skeleton == nil || len(skeleton.Bones) == 0 {
		return nil, fmt.Errorf("failed to load animation %s: %w", path, ErrNoSkin)
	}
	if err := checkExtension(path); err != nil {
		return nil, err
	}

	clip, err := l.backend.LoadClip(path, skeleton)
	if err != nil {
		return nil, fmt.Errorf("failed to load animation %s: %w", path, err)
	}
	return clip, nil
}

func (l *loader) Get(path string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[path]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		out[k] = v
	}
	return out
}

func checkExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
