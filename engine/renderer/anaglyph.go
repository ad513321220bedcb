package renderer

import (
	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/light"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// StereoMode selects how the scene is presented.
type StereoMode int

const (
	// StereoModeAnaglyph draws the left eye into red and the right eye into green and blue.
	StereoModeAnaglyph StereoMode = iota

	// StereoModeMono draws a single centered view into all channels.
	StereoModeMono
)

const (
	pipelineKeyLeft  = "character-left"
	pipelineKeyRight = "character-right"
	pipelineKeyMono  = "character-mono"
)

// eyePass describes one render pass of a frame.
type eyePass struct {
	eye         common.Eye
	pipelineKey string
	writeMask   wgpu.ColorWriteMask
	// clearColor clears the color target before drawing; false loads what earlier passes wrote.
	clearColor bool
}

// eyePasses lists the passes for a mode in submission order. Every pass clears depth so
// the second eye is not occluded by the first.
func eyePasses(mode StereoMode) []eyePass {
	if mode == StereoModeMono {
		return []eyePass{
			{eye: common.EyeCenter, pipelineKey: pipelineKeyMono, writeMask: wgpu.ColorWriteMaskAll, clearColor: true},
		}
	}
	return []eyePass{
		{eye: common.EyeLeft, pipelineKey: pipelineKeyLeft, writeMask: wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskAlpha, clearColor: true},
		{eye: common.EyeRight, pipelineKey: pipelineKeyRight, writeMask: wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskBlue, clearColor: false},
	}
}

// gpuFrame matches the WGSL Frame struct.
type gpuFrame struct {
	ViewProj mgl32.Mat4
	Lighting light.GPULighting
}

// gpuObject matches the WGSL Object struct.
type gpuObject struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat4
	Color  mgl32.Vec4
}

const (
	gpuFrameSize  = 112
	gpuObjectSize = 144
)

// packFrame builds one eye's frame block. Grayscale is carried in the w component of the
// light direction.
func packFrame(viewProj mgl32.Mat4, lighting light.GPULighting, grayscale bool) gpuFrame {
	if grayscale {
		lighting.Direction[3] = 1
	} else {
		lighting.Direction[3] = 0
	}
	return gpuFrame{ViewProj: viewProj, Lighting: lighting}
}

// packObject builds the per-draw block. The normal matrix is the inverse transpose of the
// model matrix; a singular model matrix falls back to the model matrix itself.
func packObject(item scene.DrawItem) gpuObject {
	normal := item.Model
	if item.Model.Det() != 0 {
		normal = item.Model.Inv().Transpose()
	}
	return gpuObject{Model: item.Model, Normal: normal, Color: item.Color}
}

// drawKey identifies the GPU resources of a draw item across frames.
type drawKey struct {
	objectID  uint64
	meshIndex int
}
