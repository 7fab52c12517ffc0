package shadow

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

func TestAtlas_ShelfPacking(t *testing.T) {
	a := NewAtlas("test", 1024, wgpu.TextureFormatDepth32Float)

	vp, ok := a.Allocate(512)
	require.True(t, ok)
	assert.Equal(t, Viewport{X: 0, Y: 0, Width: 512, Height: 512}, vp)

	vp, ok = a.Allocate(512)
	require.True(t, ok)
	assert.Equal(t, Viewport{X: 512, Y: 0, Width: 512, Height: 512}, vp)

	vp, ok = a.Allocate(256)
	require.True(t, ok)
	assert.Equal(t, 512, vp.Y, "a full shelf opens a new one")

	_, ok = a.Allocate(2048)
	assert.False(t, ok)
	assert.Equal(t, 3, a.Allocated())

	a.Reset()
	assert.Equal(t, 0, a.Allocated())
	vp, ok = a.Allocate(1024)
	require.True(t, ok)
	assert.Equal(t, Viewport{Width: 1024, Height: 1024}, vp)
}

func TestAtlas_TextureDescriptor(t *testing.T) {
	d := NewAtlas("Shadow Atlas", 2048, wgpu.TextureFormatDepth32Float).TextureDescriptor()
	assert.Equal(t, "Shadow Atlas", d.Label)
	assert.Equal(t, uint32(2048), d.Size.Width)
	assert.Equal(t, uint32(1), d.Size.DepthOrArrayLayers)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, d.Format)
	assert.NotZero(t, d.Usage&wgpu.TextureUsageRenderAttachment)
}

func TestAtlas_SamplerDescriptor(t *testing.T) {
	d := NewAtlas("Shadow Atlas", 1024, wgpu.TextureFormatDepth32Float).SamplerDescriptor()
	assert.Equal(t, "Shadow Atlas Comparison Sampler", d.Label)
	assert.Equal(t, wgpu.CompareFunctionLess, d.Compare)
	assert.Equal(t, wgpu.AddressModeClampToEdge, d.AddressModeU)
}

func TestTileCount(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 4, TileCount(light.LightTypeDirectional, s))
	assert.Equal(t, 1, TileCount(light.LightTypeDirectional, Settings{CascadeCount: 0}))
	assert.Equal(t, 4, TileCount(light.LightTypeDirectional, Settings{CascadeCount: 9}))
	assert.Equal(t, 6, TileCount(light.LightTypePoint, s))
	assert.Equal(t, 1, TileCount(light.LightTypeSpot, s))
	assert.Equal(t, 1, TileCount(light.LightTypeRectangle, s))
}

func TestManager_ReserveAllOrNothing(t *testing.T) {
	m := NewManager(InitParameters{AtlasResolution: 1024, MaxShadowRequests: 8})
	point := visibility.NewVisibleLight(light.NewLight(light.LightTypePoint))

	// Six 512² faces never fit a 1024² atlas.
	_, err := m.ReserveShadowMap(Request{Light: point, LightType: light.LightTypePoint, Resolution: 512})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAtlasFull))
	assert.Equal(t, 0, m.Atlas().Allocated(), "failed reservations roll back")
	assert.Empty(t, m.Reservations())

	r, err := m.ReserveShadowMap(Request{Light: point, LightType: light.LightTypePoint, Resolution: 256})
	require.NoError(t, err)
	assert.Len(t, r.Viewports, 6)
	assert.Equal(t, point.Light.ID(), r.LightID)
}

func TestManager_RequestBudget(t *testing.T) {
	m := NewManager(InitParameters{AtlasResolution: 4096, MaxShadowRequests: 2})
	spot := visibility.NewVisibleLight(light.NewLight(light.LightTypeSpot))
	req := Request{Light: spot, LightType: light.LightTypeSpot}

	for range 2 {
		_, err := m.ReserveShadowMap(req)
		require.NoError(t, err)
	}
	_, err := m.ReserveShadowMap(req)
	assert.ErrorIs(t, err, ErrRequestBudget)

	m.Reset()
	assert.Empty(t, m.Reservations())
	_, err = m.ReserveShadowMap(req)
	assert.NoError(t, err)
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(InitParameters{})
	assert.Equal(t, DefaultAtlasResolution, m.InitParameters().AtlasResolution)
	assert.Equal(t, DefaultMaxShadowRequests, m.InitParameters().MaxShadowRequests)
	assert.Equal(t, DefaultAtlasResolution, m.Atlas().Resolution())
}
