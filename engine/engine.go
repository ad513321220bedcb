package engine

import (
	"log"
	"time"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/camera"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/profiler"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/scene"
)

// Host is the window side of the frame loop. window.Window satisfies it.
type Host interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
}

// Surface draws a scene through a camera. renderer.Renderer satisfies it.
type Surface interface {
	SetSize(width, height int)
	Render(s scene.Scene, cam camera.Camera) error
}

// engine implements the Engine interface.
type engine struct {
	window  Host
	surface Surface
	scene   scene.Scene
	camera  camera.Camera

	clock     func() time.Time
	lastFrame time.Time
	started   bool
	frames    uint64

	preFrameCallback func()
	frameCallback    func(deltaTime float32)
	resizeListeners  []func(width, height int)

	profiler         *profiler.Profiler
	profilingEnabled bool

	lastRenderErr string
}

// Engine runs the per-presentation frame loop on the window's thread.
//
// The window message loop calls Frame once per iteration. A frame runs, in order: the
// pre-frame callback (completed asset loads), delta time from the monotonic clock (zero
// on the first frame), camera Update, the frame callback (animation playback) and
// Surface.Render. The surface presents with VSync so the loop is paced by the display.
type Engine interface {
	// Window returns the host window.
	Window() Host

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// SetScene replaces the scene drawn each frame.
	SetScene(s scene.Scene)

	// Camera returns the camera updated and rendered through each frame.
	Camera() camera.Camera

	// SetCamera replaces the camera.
	SetCamera(c camera.Camera)

	// SetSurface replaces the render surface.
	SetSurface(s Surface)

	// SetPreFrameCallback registers the function run first in every frame, before the clock is read.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetPreFrameCallback(callback func())

	// SetFrameCallback registers the function run after the camera update and before rendering.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// AddResizeListener registers a function notified after the surface and camera are resized.
	//
	// Parameters:
	//   - listener: function receiving the new framebuffer size
	AddResizeListener(listener func(width, height int))

	// Resize resizes the surface and the camera and notifies listeners.
	// The window resize callback is wired to it.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// Frame runs one iteration of the frame loop.
	Frame()

	// Frames returns the number of frames run so far.
	Frames() uint64

	// EnableProfiler enables the once-per-second frame statistics log line.
	EnableProfiler()

	// DisableProfiler disables frame statistics.
	DisableProfiler()

	// Run hands control to the window message loop and blocks until the window closes.
	Run()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options and wires the window callbacks.
//
// Parameters:
//   - options: functional options for engine configuration (window, surface, scene, camera, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		clock:    time.Now,
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetUpdateCallback(e.Frame)
		e.window.SetResizeCallback(e.Resize)
	}
	return e
}

func (e *engine) Window() Host {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) SetScene(s scene.Scene) {
	e.scene = s
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) SetCamera(c camera.Camera) {
	e.camera = c
}

func (e *engine) SetSurface(s Surface) {
	e.surface = s
}

func (e *engine) SetPreFrameCallback(callback func()) {
	e.preFrameCallback = callback
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) AddResizeListener(listener func(width, height int)) {
	e.resizeListeners = append(e.resizeListeners, listener)
}

func (e *engine) Resize(width, height int) {
	if e.surface != nil {
		e.surface.SetSize(width, height)
	}
	if e.camera != nil {
		e.camera.SetSize(width, height)
	}
	for _, l := range e.resizeListeners {
		l(width, height)
	}
}

func (e *engine) Frame() {
	if e.preFrameCallback != nil {
		e.preFrameCallback()
	}

	now := e.clock()
	var dt float32
	if e.started {
		dt = max(float32(now.Sub(e.lastFrame).Seconds()), 0)
	}
	e.lastFrame = now
	e.started = true

	if e.camera != nil {
		e.camera.Update(dt)
	}
	if e.frameCallback != nil {
		e.frameCallback(dt)
	}
	if e.surface != nil && e.scene != nil && e.camera != nil {
		e.render()
	}

	e.frames++
	if e.profilingEnabled && e.profiler != nil {
		if stats, ok := e.profiler.Tick(now); ok {
			log.Printf("[Profiler] %s", stats)
		}
	}
}

// render draws the frame. A failing surface is logged once per distinct error so a lost
// surface does not flood the log at display rate.
func (e *engine) render() {
	err := e.surface.Render(e.scene, e.camera)
	if err == nil {
		e.lastRenderErr = ""
		return
	}
	if msg := err.Error(); msg != e.lastRenderErr {
		e.lastRenderErr = msg
		log.Printf("[Engine] render failed: %v", err)
	}
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	if e.window == nil {
		return
	}
	e.window.ProcessMessages()
}
