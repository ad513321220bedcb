package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/camera"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/light"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/bind_group_provider"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/pipeline"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/shader"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/character.wgsl
var characterShaderSource string

const (
	frameGroup  = 0
	objectGroup = 1
)

// SurfaceSource provides what the renderer needs to create and size its surface.
// window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	shader        shader.Shader
	pipelineCache map[string]pipeline.Pipeline

	// frameProviders holds one frame uniform block per pass. Queue writes are applied before
	// the submit, so each eye needs its own buffer.
	frameProviders []bind_group_provider.BindGroupProvider
	drawProviders  map[drawKey]bind_group_provider.BindGroupProvider

	width, height int
	stereoMode    StereoMode
	grayscale     bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws a Scene through a Camera onto a window surface.
//
// Each frame the scene is posed (CPU skinning), per-object uniforms and skinned vertices are
// uploaded, and the scene is drawn once per eye pass. In anaglyph mode the left eye writes
// only the red channel and the right eye only green and blue, with depth cleared in between,
// so a red/cyan stereo image is composed in a single swapchain texture.
type Renderer interface {
	// SetSize reconfigures the surface and render targets. A zero dimension suspends
	// rendering until a non-zero size arrives.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	SetSize(width, height int)

	// Render draws one frame.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera providing the per-eye view projection matrices
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or a resource could not be created
	Render(s scene.Scene, cam camera.Camera) error

	// SetPresentMode sets the surface present mode and reconfigures the surface.
	SetPresentMode(mode PresentMode)

	// StereoMode returns the current presentation mode.
	StereoMode() StereoMode

	// SetStereoMode switches between anaglyph and mono presentation.
	SetStereoMode(mode StereoMode)

	// Grayscale reports whether shaded color is reduced to luminance before the channel mask.
	Grayscale() bool

	// SetGrayscale toggles luminance output.
	SetGrayscale(enabled bool)

	// Release releases all GPU resources. The renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the specified backend drawing onto the surface of src.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - src: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer with its pipelines registered
//   - error: an error if the GPU, the shader or a pipeline could not be initialized
func NewRenderer(backendType RendererBackendType, src SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
		drawProviders: make(map[drawKey]bind_group_provider.BindGroupProvider),
		stereoMode:    StereoModeAnaglyph,
		grayscale:     true,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(src.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}
	r.backend.SetPresentMode(r.presentMode)

	r.width, r.height = src.Width(), src.Height()
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", r.width, r.height)
	}
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		return nil, err
	}

	s, err := shader.NewShader("character", characterShaderSource)
	if err != nil {
		return nil, err
	}
	r.shader = s

	if err := r.registerPipelines(); err != nil {
		return nil, err
	}
	if err := r.initFrameProviders(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *renderer) registerPipelines() error {
	masks := map[string]wgpu.ColorWriteMask{
		pipelineKeyMono: wgpu.ColorWriteMaskAll,
	}
	for _, pass := range eyePasses(StereoModeAnaglyph) {
		masks[pass.pipelineKey] = pass.writeMask
	}
	for key, mask := range masks {
		p := pipeline.NewPipeline(key,
			pipeline.WithShader(r.shader),
			pipeline.WithWriteMask(mask),
			pipeline.WithCullMode(wgpu.CullModeBack),
		)
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %s: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) initFrameProviders() error {
	desc := r.shader.BindGroupLayoutDescriptor(frameGroup)
	if len(desc.Entries) == 0 {
		return errors.New("shader declares no frame uniform group")
	}
	for i := range eyePasses(StereoModeAnaglyph) {
		p := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Frame %d", i))
		if err := r.backend.InitBindGroup(p, desc); err != nil {
			return fmt.Errorf("failed to init frame uniforms: %w", err)
		}
		r.frameProviders = append(r.frameProviders, p)
	}
	return nil
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.width, r.height = 0, 0
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		_ = r.backend.ConfigureSurface(r.width, r.height)
	}
}

func (r *renderer) StereoMode() StereoMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stereoMode
}

func (r *renderer) SetStereoMode(mode StereoMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stereoMode = mode
}

func (r *renderer) Grayscale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grayscale
}

func (r *renderer) SetGrayscale(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grayscale = enabled
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	items := drawable(s.Prepare())
	providers, err := r.syncDrawProviders(items)
	if err != nil {
		return err
	}

	passes := eyePasses(r.stereoMode)
	lighting := light.Pack(s.Lights())
	writes := make([]bind_group_provider.BufferWrite, 0, len(passes)+len(items))
	for i, pass := range passes {
		frame := packFrame(cam.EyeViewProjection(pass.eye), lighting, r.grayscale)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: r.frameProviders[i],
			Data:     common.StructToBytes(&frame),
		})
	}
	for i, item := range items {
		object := packObject(item)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: providers[i],
			Data:     common.StructToBytes(&object),
		})
	}
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	cc := s.ClearColor()
	clear := wgpu.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
	for i, pass := range passes {
		p := r.pipelineCache[pass.pipelineKey]
		r.backend.BeginPass(pass.clearColor, clear)
		for j := range items {
			r.backend.DrawCall(p, providers[j], []bind_group_provider.BindGroupProvider{r.frameProviders[i], providers[j]})
		}
		r.backend.EndPass()
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

// syncDrawProviders returns one provider per item, creating buffers for new items, uploading
// posed vertices for skinned ones and releasing providers whose items disappeared.
func (r *renderer) syncDrawProviders(items []scene.DrawItem) ([]bind_group_provider.BindGroupProvider, error) {
	out := make([]bind_group_provider.BindGroupProvider, len(items))
	seen := make(map[drawKey]struct{}, len(items))

	for i, item := range items {
		key := drawKey{objectID: item.ObjectID, meshIndex: item.MeshIndex}
		seen[key] = struct{}{}
		vertexData := common.SliceToBytes(item.Vertices)

		p, ok := r.drawProviders[key]
		if ok && uint64(len(vertexData)) > p.VertexBytes() {
			p.Release()
			delete(r.drawProviders, key)
			ok = false
		}
		if !ok {
			p = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Object %d Mesh %d", item.ObjectID, item.MeshIndex))
			if err := r.backend.InitBindGroup(p, r.shader.BindGroupLayoutDescriptor(objectGroup)); err != nil {
				return nil, fmt.Errorf("failed to init object uniforms: %w", err)
			}
			if err := r.backend.InitMeshBuffers(p, vertexData, common.SliceToBytes(item.Indices), len(item.Indices)); err != nil {
				p.Release()
				return nil, fmt.Errorf("failed to init mesh buffers: %w", err)
			}
			r.drawProviders[key] = p
		} else if item.Skinned {
			r.backend.WriteVertices(p, vertexData)
		}
		out[i] = p
	}

	for key, p := range r.drawProviders {
		if _, ok := seen[key]; !ok {
			p.Release()
			delete(r.drawProviders, key)
		}
	}
	return out, nil
}

// drawable drops items that have nothing to upload.
func drawable(items []scene.DrawItem) []scene.DrawItem {
	out := items[:0]
	for _, item := range items {
		if len(item.Vertices) > 0 && len(item.Indices) > 0 {
			out = append(out, item)
		}
	}
	return out
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.drawProviders {
		p.Release()
		delete(r.drawProviders, key)
	}
	for _, p := range r.frameProviders {
		p.Release()
	}
	r.frameProviders = nil
	for _, p := range r.pipelineCache {
		p.Release()
	}
	r.backend.Release()
}
