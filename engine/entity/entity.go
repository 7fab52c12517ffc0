// Package entity holds the persistent light-entity registry. Every light that
// can appear in a frame is registered once and keeps a stable entity index and
// data slot for its lifetime, independent of per-frame visibility.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// EntityData addresses a registered light entity.
type EntityData struct {
	// EntityIndex is the entity's slot in the registry's entity table.
	EntityIndex int
	// DataIndex is the slot holding the entity's light data and scene object.
	DataIndex int
	// Valid is false for the Invalid sentinel and for lookups that found nothing.
	Valid bool
}

// Invalid is the sentinel stored for records that must be skipped.
var Invalid = EntityData{EntityIndex: -1, DataIndex: -1, Valid: false}

// SceneObject is the scene-facing identity of a light entity, used by output
// selection to decide whether a light belongs to a render pass.
type SceneObject interface {
	ID() uuid.UUID
	Name() string
}

// AdditionalLightData is the per-entity data that outlives a single frame:
// the light itself, its world transform and its shadow resolution override.
type AdditionalLightData struct {
	Light light.Light

	// LocalToWorld is refreshed by the registry's transform jobs.
	LocalToWorld mgl32.Mat4

	// ShadowResolution overrides the light's own shadow resolution when non-zero.
	ShadowResolution int
}

// ResolvedShadowResolution returns the shadow map resolution to request for the light.
func (d *AdditionalLightData) ResolvedShadowResolution() int {
	if d.ShadowResolution > 0 {
		return d.ShadowResolution
	}
	if r := d.Light.Shadows().Resolution; r > 0 {
		return r
	}
	return light.ShadowMapResolution
}

// lightToWorld builds the light's local-to-world matrix from its position and
// direction. The light looks down its local -Z axis.
func lightToWorld(l light.Light) mgl32.Mat4 {
	pos := l.Position()
	dir := l.Direction()
	if dir.LenSqr() == 0 {
		return mgl32.Translate3D(pos[0], pos[1], pos[2])
	}
	up := mgl32.Vec3{0, 1, 0}
	if d := dir.Dot(up); d > 0.999 || d < -0.999 {
		up = mgl32.Vec3{1, 0, 0}
	}
	view := mgl32.LookAtV(pos, pos.Add(dir), up)
	return view.Inv()
}
