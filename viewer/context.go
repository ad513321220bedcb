// Package viewer composes the character viewer out of the engine packages and wires the
// keyboard and pointer to the playback and interaction controllers.
package viewer

import (
	"log"

	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/camera"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/game_object"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/light"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/scene"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/config"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/interaction"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/playback"
	"github.com/go-gl/mathgl/mgl32"
)

// Context owns the viewer's runtime state. It is created once at startup and shared by
// reference with the frame loop and the input handlers, all on the window thread.
//
// Character and Playback stay nil until the character model has loaded. Depth and yaw
// set before that are kept and applied to the character when it arrives.
type Context struct {
	Config      *config.Config
	Scene       scene.Scene
	Camera      camera.Camera
	Character   game_object.GameObject
	Playback    *playback.Controller
	Interaction *interaction.Controller

	depth float32
	yaw   float32
}

var _ interaction.Target = &Context{}

// NewContext builds the scene, lights and camera described by cfg and applies the initial
// slider value. The character is attached later by SetCharacter.
//
// Parameters:
//   - cfg: the viewer manifest
//   - opts: options for the interaction controller
//
// Returns:
//   - *Context: the context with an empty scene
func NewContext(cfg *config.Config, opts ...interaction.ControllerBuilderOption) *Context {
	c := &Context{
		Config: cfg,
		Scene:  NewScene(cfg),
		Camera: NewCamera(cfg),
		yaw:    cfg.Character.Yaw,
	}
	c.Interaction = interaction.NewController(c, opts...)
	c.Interaction.Init(cfg.InitialSlider)
	return c
}

// NewScene creates the scene with the configured background, lights and optional ground.
func NewScene(cfg *config.Config) scene.Scene {
	bg := cfg.Background
	l := cfg.Lights
	s := scene.NewScene("viewer",
		scene.WithClearColor(bg[0], bg[1], bg[2], 1),
		scene.WithLights(
			light.NewLight(light.LightTypeDirectional,
				light.WithDirection(l.Direction[0], l.Direction[1], l.Direction[2]),
				light.WithColor(l.Color[0], l.Color[1], l.Color[2]),
				light.WithIntensity(l.Intensity),
			),
			light.NewLight(light.LightTypeAmbient,
				light.WithColor(l.Ambient[0], l.Ambient[1], l.Ambient[2]),
				light.WithIntensity(l.AmbientLevel),
			),
		),
	)
	if cfg.Ground {
		s.Add(game_object.NewGameObject(game_object.WithModel(NewGroundModel(groundSize, groundColor))))
	}
	return s
}

// NewCamera creates the stereo camera and its orbit rig.
func NewCamera(cfg *config.Config) camera.Camera {
	cc := cfg.Camera
	rig := camera.NewCameraController(
		camera.WithTarget(cc.Target[0], cc.Target[1], cc.Target[2]),
		camera.WithOrbitFrom(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithDamping(cc.Damping),
	)
	return camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cc.Fov)),
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithClipPlanes(cc.Near, cc.Far),
		camera.WithStereo(cc.EyeSeparation, cc.Focus),
		camera.WithController(rig),
	)
}

// SetCharacter adds the loaded model to the scene with the configured transform and the
// current depth and yaw. A skinned model gets an animation registry; a clip bundled in
// the model under the idle key is registered right away.
//
// Parameters:
//   - m: the character model
func (c *Context) SetCharacter(m model.Model) {
	ch := c.Config.Character
	opts := []game_object.GameObjectBuilderOption{
		game_object.WithModel(m),
		game_object.WithScale(ch.Scale),
		game_object.WithPosition(ch.X, ch.Y, c.depth),
		game_object.WithYaw(c.yaw),
	}
	if ch.Tint[3] > 0 {
		opts = append(opts, game_object.WithTint(mgl32.Vec4(ch.Tint)))
	}

	if c.Character != nil {
		c.Scene.Remove(c.Character.ID())
	}
	c.Character = game_object.NewGameObject(opts...)
	c.Scene.Add(c.Character)
	if lo, hi, ok := scene.Bounds([]game_object.GameObject{c.Character}); ok {
		log.Printf("[Viewer] character %s: %d meshes, %.2f high", m.Name(),
			scene.MeshCount([]game_object.GameObject{c.Character}), hi.Y()-lo.Y())
	}

	c.Playback = nil
	if a := c.Character.Animator(); a != nil {
		c.Playback = playback.NewController(NewAnimatorBinder(a))
		if clip, ok := m.Animation(playback.IdleKey); ok {
			c.Playback.RegisterAction(playback.IdleKey, clip)
		}
	} else {
		log.Printf("[Viewer] model %s has no skeleton, animations disabled", m.Name())
	}
}

// Play switches the character's animation. It is a no-op before the character has loaded.
func (c *Context) Play(key string) {
	if c.Playback != nil {
		c.Playback.Play(key)
	}
}

// SetDepth moves the character along z, keeping x and y.
func (c *Context) SetDepth(z float32) {
	c.depth = z
	if c.Character != nil {
		c.Character.SetDepth(z)
	}
}

// Depth returns the character's depth.
func (c *Context) Depth() float32 {
	return c.depth
}

// Yaw returns the character's rotation about +Y.
func (c *Context) Yaw() float32 {
	return c.yaw
}

// SetYaw rotates the character about +Y.
func (c *Context) SetYaw(yaw float32) {
	c.yaw = yaw
	if c.Character != nil {
		c.Character.SetYaw(yaw)
	}
}

// Advance moves animation playback forward. Without a registry it does nothing.
func (c *Context) Advance(dt float32) {
	if c.Playback != nil {
		c.Playback.Advance(dt)
	}
}

// Release stops the scene's worker pool.
func (c *Context) Release() {
	c.Scene.Release()
}
