package renderer

import (
	"testing"
	"unsafe"

	"github.com/PaolaOrtiz0320/modelosanaglifos/common"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/light"
	"github.com/PaolaOrtiz0320/modelosanaglifos/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func TestAnaglyphPassesSplitChannels(t *testing.T) {
	passes := eyePasses(StereoModeAnaglyph)
	if len(passes) != 2 {
		t.Fatalf("expected two passes, got %d", len(passes))
	}
	left, right := passes[0], passes[1]
	if left.eye != common.EyeLeft || right.eye != common.EyeRight {
		t.Fatalf("unexpected eye order: %v, %v", left.eye, right.eye)
	}
	if left.writeMask&wgpu.ColorWriteMaskRed == 0 || left.writeMask&(wgpu.ColorWriteMaskGreen|wgpu.ColorWriteMaskBlue) != 0 {
		t.Errorf("left eye must write red only, got mask %v", left.writeMask)
	}
	if right.writeMask != wgpu.ColorWriteMaskGreen|wgpu.ColorWriteMaskBlue {
		t.Errorf("right eye must write green and blue, got mask %v", right.writeMask)
	}
	if !left.clearColor || right.clearColor {
		t.Errorf("only the first pass clears color: left=%v right=%v", left.clearColor, right.clearColor)
	}
	if left.pipelineKey == right.pipelineKey {
		t.Errorf("eyes need distinct pipelines, both use %q", left.pipelineKey)
	}
}

func TestMonoPassWritesAllChannels(t *testing.T) {
	passes := eyePasses(StereoModeMono)
	if len(passes) != 1 {
		t.Fatalf("expected one pass, got %d", len(passes))
	}
	if passes[0].eye != common.EyeCenter || passes[0].writeMask != wgpu.ColorWriteMaskAll || !passes[0].clearColor {
		t.Errorf("unexpected mono pass %+v", passes[0])
	}
}

func TestUniformBlocksMatchShaderLayout(t *testing.T) {
	if got := unsafe.Sizeof(gpuFrame{}); got != gpuFrameSize {
		t.Errorf("gpuFrame is %d bytes, want %d", got, gpuFrameSize)
	}
	if got := unsafe.Sizeof(gpuObject{}); got != gpuObjectSize {
		t.Errorf("gpuObject is %d bytes, want %d", got, gpuObjectSize)
	}
}

func TestPackFrameCarriesGrayscaleFlag(t *testing.T) {
	lighting := light.GPULighting{Direction: [4]float32{0, 1, 0, 0}}

	gray := packFrame(mgl32.Ident4(), lighting, true)
	if gray.Lighting.Direction[3] != 1 {
		t.Errorf("grayscale flag not set: %v", gray.Lighting.Direction)
	}
	color := packFrame(mgl32.Ident4(), gray.Lighting, false)
	if color.Lighting.Direction[3] != 0 {
		t.Errorf("grayscale flag not cleared: %v", color.Lighting.Direction)
	}
	if color.Lighting.Direction[1] != 1 {
		t.Errorf("direction must be preserved, got %v", color.Lighting.Direction)
	}
}

func TestPackObjectNormalMatrix(t *testing.T) {
	model := mgl32.Scale3D(2, 1, 1)
	obj := packObject(scene.DrawItem{Model: model, Color: mgl32.Vec4{1, 0, 0, 1}})

	// A normal tilted in x must lean toward y after a stretch in x.
	n := obj.Normal.Mul4x1(mgl32.Vec4{1, 1, 0, 0}).Vec3()
	if n.X() >= n.Y() {
		t.Errorf("normal matrix should shrink x under x stretch, got %v", n)
	}
	if obj.Color != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("color not carried: %v", obj.Color)
	}

	singular := packObject(scene.DrawItem{Model: mgl32.Scale3D(0, 1, 1)})
	if singular.Normal != singular.Model {
		t.Errorf("singular model should fall back to itself")
	}
}

func TestDrawableSkipsEmptyItems(t *testing.T) {
	items := []scene.DrawItem{
		{ObjectID: 1, Vertices: []float32{0, 0, 0, 0, 1, 0}, Indices: []uint32{0, 0, 0}},
		{ObjectID: 2, Vertices: nil, Indices: []uint32{0, 1, 2}},
		{ObjectID: 3, Vertices: []float32{0, 0, 0, 0, 1, 0}},
	}
	got := drawable(items)
	if len(got) != 1 || got[0].ObjectID != 1 {
		t.Fatalf("expected only object 1, got %+v", got)
	}
}

func TestCharacterShaderReflection(t *testing.T) {
	frame := mustCharacterShader(t).BindGroupLayoutDescriptor(frameGroup)
	if len(frame.Entries) != 1 || frame.Entries[0].Buffer.MinBindingSize != gpuFrameSize {
		t.Errorf("frame group reflected as %+v", frame.Entries)
	}
	object := mustCharacterShader(t).BindGroupLayoutDescriptor(objectGroup)
	if len(object.Entries) != 1 || object.Entries[0].Buffer.MinBindingSize != gpuObjectSize {
		t.Errorf("object group reflected as %+v", object.Entries)
	}
}
