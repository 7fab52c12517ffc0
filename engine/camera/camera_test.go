package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Forward())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, DefaultFrameSettings(), c.FrameSettings())
	assert.NotEmpty(t, c.Name())
	assert.NotEqual(t, c.Name(), NewCamera().Name(), "generated names are unique")
}

func TestCamera_ViewProjection(t *testing.T) {
	c := NewCamera(WithName("main"), WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}), WithClipPlanes(1, 50))
	assert.Equal(t, "main", c.Name())

	// The target lands in front of the camera, in the middle of clip space.
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)

	c.SetFar(20)
	assert.Equal(t, float32(20), c.Far())
	c.LookAt(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, c.Forward())
	assert.False(t, c.ViewMatrix() == mgl32.Ident4(), "looking straight down still yields a view matrix")
}

func TestCamera_FrameSettings(t *testing.T) {
	fs := FrameSettings{ShadowMaps: true, RayTracedShadows: true}
	c := NewCamera(WithFrameSettings(fs))
	assert.Equal(t, fs, c.FrameSettings())

	c.SetFrameSettings(FrameSettings{})
	assert.Equal(t, FrameSettings{}, c.FrameSettings())
}
