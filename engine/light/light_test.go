package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewLightNormalizesDirection(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(0, 0, -4))
	if l.Direction() != (mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("got %v", l.Direction())
	}
	l.SetDirection(0, 0, 0)
	if l.Direction() != (mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("zero direction should be ignored, got %v", l.Direction())
	}
}

func TestRadianceRespectsEnabled(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithColor(1, 0.5, 0), WithIntensity(0.5))
	if got := l.Radiance(); got != (mgl32.Vec3{0.5, 0.25, 0}) {
		t.Fatalf("got %v", got)
	}
	l.SetEnabled(false)
	if got := l.Radiance(); got != (mgl32.Vec3{}) {
		t.Fatalf("disabled light radiance: got %v", got)
	}
}

func TestPackUsesFirstDirectionalAndSumsAmbient(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithIntensity(0.1)),
		NewLight(LightTypeDirectional, WithDirection(0, -1, 0), WithEnabled(false)),
		NewLight(LightTypeDirectional, WithDirection(1, 0, 0)),
		NewLight(LightTypeDirectional, WithDirection(0, 0, 1)),
		NewLight(LightTypeAmbient, WithIntensity(0.2)),
	}
	got := Pack(lights)
	if got.Direction != [4]float32{-1, 0, 0, 0} {
		t.Fatalf("direction: got %v", got.Direction)
	}
	if got.Color != [4]float32{1, 1, 1, 0} {
		t.Fatalf("color: got %v", got.Color)
	}
	want := float32(0.1) + float32(0.2)
	if !mgl32.FloatEqualThreshold(got.Ambient[0], want, 1e-6) {
		t.Fatalf("ambient: got %v", got.Ambient)
	}
}

func TestPackWithoutLights(t *testing.T) {
	got := Pack(nil)
	if got.Color != [4]float32{} || got.Ambient != [4]float32{} {
		t.Fatalf("expected no radiance, got %+v", got)
	}
}
