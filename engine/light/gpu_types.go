package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights that can be marshaled into the
// GPU storage buffer per view. Lights past the budget are dropped in sort order,
// so the ones kept are the highest-priority lights of each category.
const MaxGPULights = 1024

// GPULight is the GPU-aligned representation of a single processed light.
// Size: 64 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position     [3]float32 // offset  0: world-space position (unused for directional)
	LightType    uint32     // offset 12: GPULightType
	Color        [3]float32 // offset 16: linear RGB premultiplied by intensity
	Intensity    float32    // offset 28: scalar multiplier
	Direction    [3]float32 // offset 32: normalized direction (unused for point)
	LightRange   float32    // offset 44: attenuation cutoff distance
	InnerCone    float32    // offset 48: cos(inner half-angle) for spot
	OuterCone    float32    // offset 52: cos(outer half-angle) for spot
	ShadowFlags  uint32     // offset 56: shadow technique bitmask
	DistanceFade float32    // offset 60: view distance fade factor
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo serializes the GPULight into buf, which must hold at least 64 bytes.
//
// Parameters:
//   - buf: destination slice
func (g *GPULight) MarshalTo(buf []byte) {
	_ = buf[63]
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Direction[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.InnerCone))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.OuterCone))
	binary.LittleEndian.PutUint32(buf[56:60], g.ShadowFlags)
	binary.LittleEndian.PutUint32(buf[60:64], math.Float32bits(g.DistanceFade))
}

// GPULightHeader is the header prepended to the light storage buffer.
// Size: 16 bytes (vec3 + u32, std430 aligned).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: scene ambient RGB
	LightCount   uint32     // offset 12: number of lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// MarshalTo serializes the header into buf, which must hold at least 16 bytes.
func (h *GPULightHeader) MarshalTo(buf []byte) {
	_ = buf[15]
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(h.AmbientColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(h.AmbientColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(h.AmbientColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
}

// ToGPULight converts a Light and its per-view processed values to the GPU layout.
// The color is converted from sRGB to linear and premultiplied by intensity.
//
// Parameters:
//   - l: the Light to convert
//   - distanceFade: the view distance fade computed for this frame
//   - shadowFlags: the shadow technique bitmask computed for this frame
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light, distanceFade float32, shadowFlags uint32) GPULight {
	r, g, b := l.Color().LinearRgb()
	intensity := l.Intensity()
	return GPULight{
		Position:     l.Position(),
		LightType:    uint32(l.Type().GPUType()),
		Color:        [3]float32{float32(r) * intensity, float32(g) * intensity, float32(b) * intensity},
		Intensity:    intensity,
		Direction:    l.Direction(),
		LightRange:   l.Range(),
		InnerCone:    l.InnerCone(),
		OuterCone:    l.OuterCone(),
		ShadowFlags:  shadowFlags,
		DistanceFade: distanceFade,
	}
}
