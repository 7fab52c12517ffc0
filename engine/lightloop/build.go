package lightloop

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/entity"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

// EntityRegistry resolves lights to their persistent entities.
// *entity.Collection implements it.
type EntityRegistry interface {
	// CompleteTransformJobs blocks until background writes to entity data finish.
	CompleteTransformJobs()
	// FindEntity returns entity.Invalid when id is unknown.
	FindEntity(id uuid.UUID) entity.EntityData
	// DefaultEntity is substituted for lights that cannot be resolved.
	DefaultEntity() entity.EntityData
	// SceneObject returns nil when the data slot is empty.
	SceneObject(dataIndex int) entity.SceneObject
	// AdditionalData returns nil when the light was destroyed.
	AdditionalData(dataIndex int) *entity.AdditionalLightData
}

// Build fills the store from a view's culling result. Each visible light is
// resolved to its persistent entity; lights the registry does not know are
// backed by the registry's default entity, so every record is resolved.
// A nil registry panics.
//
// Parameters:
//   - result: the culling result for the view
//   - registry: the persistent entity registry
func (s *VisibleLightStore) Build(result visibility.Result, registry EntityRegistry) {
	if registry == nil {
		panic("lightloop: Build requires an entity registry")
	}
	s.size = 0
	s.resetCounts()
	registry.CompleteTransformJobs()

	if result == nil {
		return
	}
	visibleLights := result.VisibleLights()
	count := len(visibleLights)
	if count == 0 {
		return
	}
	if count > MaxVisibleLights {
		panic(fmt.Sprintf("lightloop: %d visible lights exceeds the limit of %d", count, MaxVisibleLights))
	}

	if count > s.capacity {
		s.Resize(count)
	}
	s.size = count
	s.checkInvariants()

	var fallback entity.EntityData
	haveFallback := false
	for i, vl := range visibleLights {
		var e entity.EntityData
		if vl.Light != nil {
			e = registry.FindEntity(vl.Light.ID())
		}
		if !e.Valid {
			if !haveFallback {
				fallback = registry.DefaultEntity()
				if !fallback.Valid {
					panic("lightloop: registry returned an invalid default entity")
				}
				haveFallback = true
			}
			e = fallback
		}

		s.visibleEntities[i] = e
		if vl.Light != nil {
			s.bakingOutput[i] = vl.Light.BakingOutput()
			s.shadows[i] = vl.Light.Shadows()
		} else {
			s.bakingOutput[i] = light.RealtimeBakingOutput
			s.shadows[i] = light.DefaultShadowSettings()
		}
	}
}
