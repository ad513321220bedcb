package scene

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/game_object"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/light"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/animator"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is one mesh of one object, posed and ready for upload.
type DrawItem struct {
	// ObjectID identifies the owning GameObject.
	ObjectID uint64

	// MeshIndex is the mesh's position in the object's model.
	MeshIndex int

	// Vertices holds animator.VertexStride floats per vertex (position, normal) in model space.
	Vertices []float32

	// Indices is the triangle list.
	Indices []uint32

	// Model is the object-to-world matrix.
	Model mgl32.Mat4

	// Color is the base color (the object tint when set, else the mesh material).
	Color mgl32.Vec4

	// Skinned reports whether Vertices change from frame to frame.
	Skinned bool
}

// Scene manages the objects and lights the renderer draws.
// Objects are kept in insertion order. Posing is done on the CPU: Prepare skins every
// enabled object's meshes with its Animator's joint matrices, in parallel on a worker pool.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Add adds a GameObject to the scene. Objects without an ID are assigned one.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID and drops its cached vertex buffers.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns the scene's objects in insertion order.
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	Count() int

	// Clear removes all objects from the scene.
	Clear()

	// Lights returns the scene's lights.
	Lights() []light.Light

	// AddLight adds a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// ClearColor returns the background color.
	ClearColor() [4]float64

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - c: RGBA in [0, 1]
	SetClearColor(c [4]float64)

	// Prepare poses every enabled object and returns its meshes as draw items, in object
	// then mesh order. The returned vertex slices are owned by the scene and reused by the
	// next call.
	//
	// Returns:
	//   - []DrawItem: the frame's draw list
	Prepare() []DrawItem

	// Release stops the scene's worker pool.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	objects    []game_object.GameObject
	nextID     uint64
	lights     []light.Light
	clearColor [4]float64

	// vertexCache holds one skinned vertex buffer per object mesh, reused every frame.
	vertexCache map[uint64][][]float32

	// computePool runs the CPU skinning phase of Prepare. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		nextID:         1,
		clearColor:     [4]float64{0, 0, 0, 1},
		vertexCache:    make(map[uint64][][]float32),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.objects = append(s.objects, obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.ID() == id {
			return obj
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = slices.DeleteFunc(s.objects, func(obj game_object.GameObject) bool {
		return obj.ID() == id
	})
	delete(s.vertexCache, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
	s.vertexCache = make(map[uint64][][]float32)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) ClearColor() [4]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearColor
}

func (s *scene) SetClearColor(c [4]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = c
}

func (s *scene) Prepare() []DrawItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []DrawItem
	for _, obj := range s.objects {
		m := obj.Model()
		if !obj.Enabled() || m == nil {
			continue
		}
		meshes := m.Meshes()
		bufs := s.vertexCache[obj.ID()]
		if len(bufs) != len(meshes) {
			bufs = make([][]float32, len(meshes))
			s.vertexCache[obj.ID()] = bufs
		}

		world := obj.ModelMatrix()
		tint, tinted := obj.Tint()

		for i, mesh := range meshes {
			color := mesh.BaseColor
			if tinted {
				color = tint
			}
			items = append(items, DrawItem{
				ObjectID:  obj.ID(),
				MeshIndex: i,
				Indices:   mesh.Indices,
				Model:     world,
				Color:     color,
				Skinned:   obj.Animator() != nil,
			})
		}
	}

	// Phase 1: parallel CPU skinning. A WaitGroup provides the per-frame barrier since
	// pool.Wait() also waits for workers to idle-exit.
	var wg sync.WaitGroup
	for i := range items {
		item := &items[i]
		obj := s.findLocked(item.ObjectID)
		mesh := obj.Model().Meshes()[item.MeshIndex]
		bufs := s.vertexCache[item.ObjectID]

		var joints []mgl32.Mat4
		if a := obj.Animator(); a != nil {
			joints = a.JointMatrices()
		}

		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				bufs[item.MeshIndex] = animator.SkinMesh(bufs[item.MeshIndex], mesh, joints)
				item.Vertices = bufs[item.MeshIndex]
				return nil, nil
			},
		})
	}
	wg.Wait()

	return items
}

func (s *scene) findLocked(id uint64) game_object.GameObject {
	for _, obj := range s.objects {
		if obj.ID() == id {
			return obj
		}
	}
	return nil
}

func (s *scene) Release() {
	s.computePool.Stop()
}

// MeshCount returns the total number of meshes drawn for the given objects.
func MeshCount(objects []game_object.GameObject) int {
	n := 0
	for _, obj := range objects {
		if m := obj.Model(); m != nil && obj.Enabled() {
			n += len(m.Meshes())
		}
	}
	return n
}

// Bounds returns the world-space box enclosing every enabled object's bind-pose bounds.
//
// Parameters:
//   - objects: the objects to enclose
//
// Returns:
//   - min, max: the box corners
//   - bool: false when no object has a model
func Bounds(objects []game_object.GameObject) (mgl32.Vec3, mgl32.Vec3, bool) {
	var lo, hi mgl32.Vec3
	found := false
	for _, obj := range objects {
		m := obj.Model()
		if m == nil || !obj.Enabled() {
			continue
		}
		mlo, mhi := m.Bounds()
		for _, c := range boxCorners(mlo, mhi) {
			p := mgl32.TransformCoordinate(c, obj.ModelMatrix())
			if !found {
				lo, hi, found = p, p, true
				continue
			}
			for k := 0; k < 3; k++ {
				lo[k] = min(lo[k], p[k])
				hi[k] = max(hi[k], p[k])
			}
		}
	}
	return lo, hi, found
}

func boxCorners(lo, hi mgl32.Vec3) [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		out[i] = mgl32.Vec3{lo[0], lo[1], lo[2]}
		if i&1 != 0 {
			out[i][0] = hi[0]
		}
		if i&2 != 0 {
			out[i][1] = hi[1]
		}
		if i&4 != 0 {
			out[i][2] = hi[2]
		}
	}
	return out
}
