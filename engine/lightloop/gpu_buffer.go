package lightloop

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

// MarshalLightBuffer serializes the processed lights in sort order into the
// light storage buffer layout: a GPULightHeader followed by one GPULight per
// light. At most light.MaxGPULights lights are written.
//
// Parameters:
//   - result: the culling result the store was built from
//   - ambient: the scene ambient color in sRGB
//
// Returns:
//   - []byte: the buffer contents
func (s *VisibleLightStore) MarshalLightBuffer(result visibility.Result, ambient colorful.Color) []byte {
	var header light.GPULightHeader
	var gl light.GPULight
	headerSize, lightSize := header.Size(), gl.Size()

	var lights []visibility.VisibleLight
	if result != nil {
		lights = result.VisibleLights()
	}
	keys := s.SortKeys()
	n := min(len(keys), light.MaxGPULights)
	buf := make([]byte, headerSize+n*lightSize)

	written := 0
	for _, key := range keys[:n] {
		_, _, index := UnpackSortKey(key)
		if index >= len(lights) || lights[index].Light == nil {
			continue
		}
		entry := s.processed[index]
		gl = light.ToGPULight(lights[index].Light, entry.DistanceFade, uint32(entry.ShadowMapFlags))
		gl.MarshalTo(buf[headerSize+written*lightSize:])
		written++
	}

	r, g, b := ambient.LinearRgb()
	header.AmbientColor = [3]float32{float32(r), float32(g), float32(b)}
	header.LightCount = uint32(written)
	header.MarshalTo(buf)
	return buf[:headerSize+written*lightSize]
}
