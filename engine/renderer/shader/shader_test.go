package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const testSource = `
/* outer /* nested */ still comment */
struct Params {
    tint: vec3<f32>, // padded to 16
    scale: f32,
    transform: mat4x4<f32>,
}

struct Wrapper {
    inner: Params,
    extra: vec2f,
}

@group(0) @binding(1) var<uniform> wrapped: Wrapper;
@group(0) @binding(0) var<uniform> params: Params;
@group(2) @binding(0) var<storage, read> weights: Params;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
}

@vertex
fn main_vs(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    return out;
}

@fragment
fn main_fs() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func TestNewShaderReflectsEntryPoints(t *testing.T) {
	s, err := NewShader("test", testSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.VertexEntryPoint() != "main_vs" {
		t.Errorf("vertex entry %q", s.VertexEntryPoint())
	}
	if s.FragmentEntryPoint() != "main_fs" {
		t.Errorf("fragment entry %q", s.FragmentEntryPoint())
	}
	if s.Module().WGSLDescriptor.Code != testSource {
		t.Errorf("module does not carry the source")
	}
}

func TestNewShaderRequiresBothStages(t *testing.T) {
	if _, err := NewShader("vs-only", "@vertex fn main() {}"); err == nil {
		t.Fatal("expected error for missing fragment stage")
	}
}

func TestBindGroupLayoutsSortedWithSizes(t *testing.T) {
	s, err := NewShader("test", testSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}

	group0 := s.BindGroupLayoutDescriptor(0)
	if len(group0.Entries) != 2 {
		t.Fatalf("group 0 has %d entries", len(group0.Entries))
	}
	if group0.Entries[0].Binding != 0 || group0.Entries[1].Binding != 1 {
		t.Errorf("entries not sorted: %+v", group0.Entries)
	}
	// Params: vec3 (12) + f32 at 12 -> 16, mat4 at 16 -> 80
	if got := group0.Entries[0].Buffer.MinBindingSize; got != 80 {
		t.Errorf("Params size %d, want 80", got)
	}
	// Wrapper: Params (80, align 16) + vec2 at 80 -> 88, rounded to 96
	if got := group0.Entries[1].Buffer.MinBindingSize; got != 96 {
		t.Errorf("Wrapper size %d, want 96", got)
	}
	if group0.Entries[0].Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("unexpected visibility %v", group0.Entries[0].Visibility)
	}

	group2 := s.BindGroupLayoutDescriptor(2)
	if len(group2.Entries) != 1 || group2.Entries[0].Buffer.Type != wgpu.BufferBindingTypeReadOnlyStorage {
		t.Errorf("group 2 reflected as %+v", group2.Entries)
	}
	if s.BindGroupVarName(0, 1) != "wrapped" || s.BindGroupVarName(2, 0) != "weights" {
		t.Errorf("variable names not recorded")
	}
	if len(s.BindGroupLayoutDescriptor(1).Entries) != 0 {
		t.Errorf("group 1 is unused")
	}
}

func TestVertexLayoutSkipsBuiltinStructs(t *testing.T) {
	s, err := NewShader("test", testSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("expected one vertex layout, got %d", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != 20 {
		t.Errorf("stride %d, want 20", l.ArrayStride)
	}
	if len(l.Attributes) != 2 || l.Attributes[1].Offset != 12 || l.Attributes[1].ShaderLocation != 1 {
		t.Errorf("attributes %+v", l.Attributes)
	}
	if l.Attributes[1].Format != wgpu.VertexFormatFloat32x2 {
		t.Errorf("uv format %v", l.Attributes[1].Format)
	}
}

func TestStripComments(t *testing.T) {
	got := stripComments("a /* b /* c */ d */ e // f\ng")
	want := "a  e \ng\n"
	if got != want {
		t.Errorf("stripComments = %q, want %q", got, want)
	}
}
