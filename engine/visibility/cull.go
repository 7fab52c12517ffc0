package visibility

import (
	"github.com/Carmen-Shannon/oxy-lightloop/common"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/camera"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// Cull tests every enabled light against the camera frustum and gathers the
// shadow-caster bounds each shadow-casting light sees.
//
// Directional lights are always visible and see every caster inside the view
// frustum. Other lights are bounded by a sphere of their range and see the
// casters that sphere touches.
//
// Parameters:
//   - cam: the view to cull for
//   - lights: every light in the scene
//   - casters: world-space bounds of every shadow-casting object
//
// Returns:
//   - *CullingResult: the visible lights in input order, with caster bounds
func Cull(cam camera.Camera, lights []light.Light, casters []common.Bounds) *CullingResult {
	frustum := common.ExtractFrustum(cam.ViewProjectionMatrix())

	r := &CullingResult{}
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		vl := NewVisibleLight(l)
		if vl.Type != light.LightTypeDirectional && !frustum.IntersectsSphere(vl.Position, vl.Range) {
			continue
		}

		var bounds common.Bounds
		found := false
		if l.CastsShadows() {
			for _, c := range casters {
				var hit bool
				if vl.Type == light.LightTypeDirectional {
					hit = frustum.IntersectsBounds(c)
				} else {
					hit = c.IntersectsSphere(vl.Position, vl.Range)
				}
				if !hit {
					continue
				}
				if found {
					bounds = bounds.Encapsulate(c)
				} else {
					bounds = c
					found = true
				}
			}
		}

		r.lights = append(r.lights, vl)
		r.casterBounds = append(r.casterBounds, bounds)
		r.hasBounds = append(r.hasBounds, found)
	}
	return r
}
