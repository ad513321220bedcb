package viewer

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/model"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/config"
	"github.com/PaolaOrtiz0320/modelosanaglifos/viewer/interaction"
)

// AssetLoader reads the character model and its animation clips.
type AssetLoader interface {
	// Load reads a model file.
	Load(path string) (model.Model, error)

	// LoadClip reads the first animation of a file, bound to skeleton by joint name.
	LoadClip(path string, skeleton *model.Skeleton) (*model.AnimationClip, error)
}

// ErrNoCharacter is reported for clip loads that run after the character failed to load.
var ErrNoCharacter = errors.New("character not loaded")

type loadResult struct {
	character bool
	key       string
	path      string
	model     model.Model
	clip      *model.AnimationClip
	err       error
}

// Loading runs the startup asset loads off the frame thread and hands the results back to
// it. A single worker runs the character load first and then one clip at a time in
// manifest order, so results arrive in that order too.
type Loading struct {
	loader  AssetLoader
	pool    worker.DynamicWorkerPool
	results chan loadResult

	mu       sync.Mutex
	skeleton *model.Skeleton

	pending int
	loaded  int
	done    bool
}

// StartLoading queues the character and every animation in cfg on a single-worker pool.
//
// Parameters:
//   - cfg: the manifest naming the files
//   - l: the loader that reads them
//
// Returns:
//   - *Loading: the in-flight loads, drained by Drain on the frame thread
func StartLoading(cfg *config.Config, l AssetLoader) *Loading {
	n := len(cfg.Animations) + 1
	ld := &Loading{
		loader:  l,
		pool:    worker.NewDynamicWorkerPool(1, n, time.Second),
		results: make(chan loadResult, n),
		pending: n,
	}

	ld.pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			m, err := ld.loader.Load(cfg.Model)
			if err == nil && m.Skinned() {
				ld.mu.Lock()
				ld.skeleton = m.Skeleton()
				ld.mu.Unlock()
			}
			ld.results <- loadResult{character: true, path: cfg.Model, model: m, err: err}
			return m, err
		},
	})

	for i, a := range cfg.Animations {
		ld.pool.SubmitTask(worker.Task{
			ID: i + 1,
			Do: func() (any, error) {
				ld.mu.Lock()
				skeleton := ld.skeleton
				ld.mu.Unlock()

				res := loadResult{key: a.Key, path: a.Path}
				if skeleton == nil {
					res.err = ErrNoCharacter
				} else {
					res.clip, res.err = ld.loader.LoadClip(a.Path, skeleton)
				}
				ld.results <- res
				return res.clip, res.err
			},
		})
	}
	return ld
}

// Drain applies every load that has completed since the last call without blocking. The
// character joins the scene and clips are registered under their keys. After the last
// load the initial animation starts.
//
// Parameters:
//   - c: the context to apply results to
//
// Returns:
//   - bool: true when at least one result was applied, so readouts may need a refresh
func (ld *Loading) Drain(c *Context) bool {
	applied := false
	for !ld.done {
		select {
		case res := <-ld.results:
			ld.apply(c, res)
			applied = true
		default:
			return applied
		}
	}
	return applied
}

// Done reports whether every load has been applied.
func (ld *Loading) Done() bool {
	return ld.done
}

// Loaded returns the number of clips registered so far.
func (ld *Loading) Loaded() int {
	return ld.loaded
}

// Stop abandons loads still queued.
func (ld *Loading) Stop() {
	ld.pool.Stop()
}

func (ld *Loading) apply(c *Context, res loadResult) {
	ld.pending--

	switch {
	case res.character:
		if res.err != nil {
			log.Printf("[Viewer] %v", fmt.Errorf("failed to load character %s: %w", res.path, res.err))
		} else {
			c.SetCharacter(res.model)
		}
	case res.err != nil:
		if !errors.Is(res.err, ErrNoCharacter) {
			log.Printf("[Viewer] %v", fmt.Errorf("failed to load animation %q from %s: %w", res.key, res.path, res.err))
		}
	case c.Playback != nil:
		c.Playback.RegisterAction(res.key, res.clip)
		ld.loaded++
	}

	if ld.pending > 0 {
		return
	}
	ld.done = true
	ld.pool.Stop()

	if c.Playback == nil {
		return
	}
	c.Playback.PlayInitial()
	if key, ok := c.Playback.Current(); ok && c.Interaction.Selected() == "" {
		c.Interaction.Dispatch(interaction.SelectAnimation{Key: key})
	}
	log.Printf("[Viewer] %d of %d animations ready", ld.loaded, len(c.Config.Animations))
}
