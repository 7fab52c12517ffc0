package lightloop

import "github.com/Carmen-Shannon/oxy-lightloop/engine/entity"

// OutputSelection decides which lights a specialized render pass keeps.
// aov.Request implements it.
type OutputSelection interface {
	HasLightFilter() bool
	IsLightEnabled(obj entity.SceneObject) bool
}

// FilterByOutputSelection overwrites the records of lights the selection
// excludes with entity.Invalid. Records whose scene object cannot be resolved
// are kept. Size is unchanged; later stages skip invalid records.
//
// Parameters:
//   - sel: the output selection, may be nil
//   - registry: the persistent entity registry
func (s *VisibleLightStore) FilterByOutputSelection(sel OutputSelection, registry EntityRegistry) {
	if sel == nil || registry == nil || !sel.HasLightFilter() {
		return
	}

	for i := 0; i < s.size; i++ {
		e := s.visibleEntities[i]
		if !e.Valid {
			continue
		}
		obj := registry.SceneObject(e.DataIndex)
		if obj == nil {
			continue
		}
		if !sel.IsLightEnabled(obj) {
			s.visibleEntities[i] = entity.Invalid
		}
	}
}
