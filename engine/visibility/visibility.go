// Package visibility produces the per-view culling result the light loop
// consumes: the ordered list of lights that can affect the view, and the
// bounds of the shadow casters each of them sees.
package visibility

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-lightloop/common"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// VisibleLight is a per-frame snapshot of a light that passed culling.
type VisibleLight struct {
	Light     light.Light
	Type      light.LightType
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Range     float32
}

// NewVisibleLight snapshots the current state of l.
func NewVisibleLight(l light.Light) VisibleLight {
	return VisibleLight{
		Light:     l,
		Type:      l.Type(),
		Position:  l.Position(),
		Direction: l.Direction(),
		Range:     l.Range(),
	}
}

// Result is the output of culling a single view.
type Result interface {
	// VisibleLights returns the lights that can affect the view, in culling order.
	//
	// Returns:
	//   - []VisibleLight: the visible lights (callers must not modify)
	VisibleLights() []VisibleLight

	// ShadowCasterBounds returns the combined bounds of the shadow casters a
	// visible light affects.
	//
	// Parameters:
	//   - lightIndex: index into VisibleLights
	//
	// Returns:
	//   - common.Bounds: the caster bounds
	//   - bool: false when the light has no casters in range or the index is out of range
	ShadowCasterBounds(lightIndex int) (common.Bounds, bool)
}

// CullingResult is the concrete Result produced by Cull. It can also be built
// directly with NewCullingResult.
type CullingResult struct {
	lights       []VisibleLight
	casterBounds []common.Bounds
	hasBounds    []bool
}

var _ Result = &CullingResult{}

// NewCullingResult builds a result from an explicit light list and caster bounds
// keyed by light index. Indices missing from casterBounds report no bounds.
func NewCullingResult(lights []VisibleLight, casterBounds map[int]common.Bounds) *CullingResult {
	r := &CullingResult{
		lights:       lights,
		casterBounds: make([]common.Bounds, len(lights)),
		hasBounds:    make([]bool, len(lights)),
	}
	for i, b := range casterBounds {
		if i < 0 || i >= len(lights) {
			continue
		}
		r.casterBounds[i] = b
		r.hasBounds[i] = true
	}
	return r
}

func (r *CullingResult) VisibleLights() []VisibleLight {
	return r.lights
}

func (r *CullingResult) ShadowCasterBounds(lightIndex int) (common.Bounds, bool) {
	if lightIndex < 0 || lightIndex >= len(r.lights) || !r.hasBounds[lightIndex] {
		return common.Bounds{}, false
	}
	return r.casterBounds[lightIndex], true
}
