package pipeline

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the render pipeline object and the state used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for labels and lookups
	pipelineKey string

	// shader holds both the vertex and the fragment entry point and must be set before the pipeline is registered
	shader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	cullMode  wgpu.CullMode
	writeMask wgpu.ColorWriteMask
}

// Pipeline defines the interface for a GPU render pipeline: an opaque, depth-tested triangle
// list whose color write mask lets the same shader draw into a subset of the channels.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader module used by the vertex and fragment stages.
	Shader() shader.Shader

	// RenderPipeline returns the underlying render pipeline, nil until registered with a backend.
	RenderPipeline() *wgpu.RenderPipeline

	// CullMode returns the cull mode configured for this pipeline.
	CullMode() wgpu.CullMode

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the channels this pipeline writes (e.g., wgpu.ColorWriteMaskRed for a left eye pass)
	WriteMask() wgpu.ColorWriteMask

	// SetRenderPipeline sets the render pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the underlying render pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. It is not usable for drawing until a
// backend creates the GPU object and calls SetRenderPipeline.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		cullMode:    wgpu.CullModeNone,
		writeMask:   wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
