package shadow

import "github.com/cogentcore/webgpu/wgpu"

// Viewport is a square region of the shadow atlas, in texels.
type Viewport struct {
	X, Y, Width, Height int
}

type shelf struct {
	y, height, x int
}

// Atlas packs square shadow-map tiles into one depth texture using shelf packing.
// Allocation is reset every frame; individual tiles are never freed.
type Atlas struct {
	label      string
	resolution int
	format     wgpu.TextureFormat
	shelves    []shelf
	top        int
	allocated  int
}

// NewAtlas creates an empty square atlas.
//
// Parameters:
//   - label: debug label for the GPU texture
//   - resolution: width and height in texels
//   - format: depth format of the atlas texture
//
// Returns:
//   - *Atlas: the new atlas
func NewAtlas(label string, resolution int, format wgpu.TextureFormat) *Atlas {
	return &Atlas{
		label:      label,
		resolution: resolution,
		format:     format,
	}
}

// Resolution returns the atlas width and height in texels.
func (a *Atlas) Resolution() int {
	return a.resolution
}

// Allocated returns the number of tiles allocated since the last Reset.
func (a *Atlas) Allocated() int {
	return a.allocated
}

// Allocate reserves a size×size tile.
//
// Parameters:
//   - size: tile width and height in texels
//
// Returns:
//   - Viewport: the tile's location in the atlas
//   - bool: false when the tile does not fit
func (a *Atlas) Allocate(size int) (Viewport, bool) {
	if size <= 0 || size > a.resolution {
		return Viewport{}, false
	}
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.height >= size && s.x+size <= a.resolution {
			vp := Viewport{X: s.x, Y: s.y, Width: size, Height: size}
			s.x += size
			a.allocated++
			return vp, true
		}
	}
	if a.top+size > a.resolution {
		return Viewport{}, false
	}
	a.shelves = append(a.shelves, shelf{y: a.top, height: size, x: size})
	vp := Viewport{X: 0, Y: a.top, Width: size, Height: size}
	a.top += size
	a.allocated++
	return vp, true
}

// Reset frees every tile.
func (a *Atlas) Reset() {
	a.shelves = a.shelves[:0]
	a.top = 0
	a.allocated = 0
}

// TextureDescriptor returns the descriptor for the atlas depth texture, suitable
// for wgpu.Device.CreateTexture.
func (a *Atlas) TextureDescriptor() *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label: a.label,
		Size: wgpu.Extent3D{
			Width:              uint32(a.resolution),
			Height:             uint32(a.resolution),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        a.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	}
}

// SamplerDescriptor returns the comparison sampler used to filter the atlas
// with hardware PCF. Tiles are clamped at the edges.
func (a *Atlas) SamplerDescriptor() *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         a.label + " Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	}
}

// snapshot and restore let a multi-tile reservation roll back on failure.
type atlasState struct {
	shelves   []shelf
	top       int
	allocated int
}

func (a *Atlas) snapshot() atlasState {
	return atlasState{shelves: append([]shelf(nil), a.shelves...), top: a.top, allocated: a.allocated}
}

func (a *Atlas) restore(s atlasState) {
	a.shelves = append(a.shelves[:0], s.shelves...)
	a.top = s.top
	a.allocated = s.allocated
}
