// Package lightloop turns a view's culling result into the ordered, classified
// light set consumed by the lighting stage, and reserves shadow maps for the
// lights that need them.
//
// Per view and frame the pipeline runs Build, FilterByOutputSelection,
// ProcessVisibleLights, SortLightKeys and ProcessShadows on a VisibleLightStore.
// LightLoop.PreprocessVisibleLights runs the whole sequence.
package lightloop

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/entity"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// ArrayCapacity is the minimum capacity a store grows to.
const ArrayCapacity = 32

// CountSlot indexes the per-frame light counters.
type CountSlot int

const (
	CountProcessedLights CountSlot = iota
	CountDirectionalLights
	CountPunctualLights
	CountAreaLights
	CountShadowLights

	countSlotCount
)

// ShadowMapFlags is the set of shadow techniques a light uses this frame.
type ShadowMapFlags uint32

const (
	ShadowMapFlagsNone        ShadowMapFlags = 0
	ShadowMapFlagsShadowMap   ShadowMapFlags = 1 << 0
	ShadowMapFlagsScreenSpace ShadowMapFlags = 1 << 1
	ShadowMapFlagsRayTraced   ShadowMapFlags = 1 << 2
)

// ProcessedEntry is the classification of one visible light.
type ProcessedEntry struct {
	// DataIndex addresses the light's slot in the entity registry.
	DataIndex              int
	GPULightType           light.GPULightType
	LightType              light.LightType
	DistanceFade           float32
	VolumetricDistanceFade float32
	DistanceToCamera       float32
	ShadowMapFlags         ShadowMapFlags
	IsBakedShadowMask      bool
}

// VisibleLightStore holds the structure-of-arrays records for the lights of a
// single view. Every per-light column has length Capacity; entries below Size
// are defined for the current frame.
//
// A store is owned by one view's processing at a time and is not safe for
// concurrent use apart from the internal classification fan-out.
type VisibleLightStore struct {
	capacity int
	size     int

	owner  *StorePool
	pooled bool

	counts [countSlotCount]atomic.Int32

	visibleEntities []entity.EntityData
	bakingOutput    []light.BakingOutput
	shadows         []light.ShadowSettings

	volumeTypes   []light.VolumeType
	processed     []ProcessedEntry
	sortKeys      []uint32
	shadowIndices []int

	// sortSupport is the merge/radix scratch buffer, allocated on first use.
	sortSupport []uint32
}

// NewVisibleLightStore returns an empty store with no backing storage.
// Stores used across frames should come from a StorePool instead.
func NewVisibleLightStore() *VisibleLightStore {
	return &VisibleLightStore{}
}

// Resize grows every column to hold at least n entries. Capacity grows to
// max(n, ArrayCapacity, 2*Capacity) and never shrinks; existing entries are kept.
// Resize is a no-op when n <= Capacity.
func (s *VisibleLightStore) Resize(n int) {
	if n <= s.capacity {
		return
	}
	s.capacity = max(n, ArrayCapacity, s.capacity*2)

	s.visibleEntities = resizeArray(s.visibleEntities, s.capacity)
	s.bakingOutput = resizeArray(s.bakingOutput, s.capacity)
	s.shadows = resizeArray(s.shadows, s.capacity)

	s.volumeTypes = resizeArray(s.volumeTypes, s.capacity)
	s.processed = resizeArray(s.processed, s.capacity)
	s.sortKeys = resizeArray(s.sortKeys, s.capacity)
	s.shadowIndices = resizeArray(s.shadowIndices, s.capacity)
}

// Reset empties the store for a new frame without releasing storage. A pooled
// store also re-registers itself with its pool so a later Cleanup disposes it.
func (s *VisibleLightStore) Reset() {
	s.size = 0
	s.resetCounts()
	if s.owner != nil {
		s.owner.track(s)
	}
}

// Dispose releases all backing storage. Safe to call more than once.
func (s *VisibleLightStore) Dispose() {
	s.sortSupport = nil

	if s.capacity == 0 {
		return
	}

	s.visibleEntities = nil
	s.bakingOutput = nil
	s.shadows = nil

	s.volumeTypes = nil
	s.processed = nil
	s.sortKeys = nil
	s.shadowIndices = nil

	s.capacity = 0
	s.size = 0
	s.resetCounts()
}

// Size returns the number of visible-light records this frame, including
// records invalidated by output filtering.
func (s *VisibleLightStore) Size() int {
	return s.size
}

// Capacity returns the number of entries every column can hold.
func (s *VisibleLightStore) Capacity() int {
	return s.capacity
}

// Count returns a per-frame counter.
func (s *VisibleLightStore) Count(slot CountSlot) int {
	return int(s.counts[slot].Load())
}

// ProcessedCount returns the number of lights that survived classification.
func (s *VisibleLightStore) ProcessedCount() int { return s.Count(CountProcessedLights) }

// DirectionalCount returns the number of processed directional lights.
func (s *VisibleLightStore) DirectionalCount() int { return s.Count(CountDirectionalLights) }

// PunctualCount returns the number of processed point and spot lights.
func (s *VisibleLightStore) PunctualCount() int { return s.Count(CountPunctualLights) }

// AreaCount returns the number of processed area lights.
func (s *VisibleLightStore) AreaCount() int { return s.Count(CountAreaLights) }

// ShadowLightCount returns the number of shadow-casting candidates.
func (s *VisibleLightStore) ShadowLightCount() int { return s.Count(CountShadowLights) }

// VisibleEntities returns the resolved entity per record, indexed like the
// culling result. Invalid entries were excluded by output filtering.
func (s *VisibleLightStore) VisibleEntities() []entity.EntityData {
	return s.visibleEntities[:s.size]
}

// BakingOutputs returns the baking output snapshot per record.
func (s *VisibleLightStore) BakingOutputs() []light.BakingOutput {
	return s.bakingOutput[:s.size]
}

// ShadowSettings returns the shadow configuration snapshot per record.
func (s *VisibleLightStore) ShadowSettings() []light.ShadowSettings {
	return s.shadows[:s.size]
}

// ProcessedEntities returns the classification per record. Entries of
// records skipped by classification hold stale data; use SortKeys or
// ShadowLightIndices to find the entries that were processed.
func (s *VisibleLightStore) ProcessedEntities() []ProcessedEntry {
	return s.processed[:s.size]
}

// ProcessedVolumeTypes returns the bounding volume type per record.
func (s *VisibleLightStore) ProcessedVolumeTypes() []light.VolumeType {
	return s.volumeTypes[:s.size]
}

// SortKeys returns the keys of every processed light, sorted after SortLightKeys.
func (s *VisibleLightStore) SortKeys() []uint32 {
	return s.sortKeys[:s.ProcessedCount()]
}

// SortedEntryIndex returns the record index of the i-th light in sort order.
func (s *VisibleLightStore) SortedEntryIndex(i int) int {
	_, _, index := UnpackSortKey(s.SortKeys()[i])
	return index
}

// ShadowLightIndices returns the record indices of the shadow-casting candidates
// in ascending order.
func (s *VisibleLightStore) ShadowLightIndices() []int {
	return s.shadowIndices[:s.ShadowLightCount()]
}

func (s *VisibleLightStore) resetCounts() {
	for i := range s.counts {
		s.counts[i].Store(0)
	}
}

// checkInvariants panics when the SoA columns disagree with the store's size or capacity.
func (s *VisibleLightStore) checkInvariants() {
	if s.size < 0 || s.size > s.capacity {
		panic(fmt.Sprintf("lightloop: store size %d outside capacity %d", s.size, s.capacity))
	}
	columns := [...]struct {
		name string
		n    int
	}{
		{"visibleEntities", len(s.visibleEntities)},
		{"bakingOutput", len(s.bakingOutput)},
		{"shadows", len(s.shadows)},
		{"volumeTypes", len(s.volumeTypes)},
		{"processed", len(s.processed)},
		{"sortKeys", len(s.sortKeys)},
		{"shadowIndices", len(s.shadowIndices)},
	}
	for _, c := range columns {
		if c.n != s.capacity {
			panic(fmt.Sprintf("lightloop: column %s has length %d, capacity is %d", c.name, c.n, s.capacity))
		}
	}
}

// resizeArray returns a slice of length n holding the contents of a.
func resizeArray[T any](a []T, n int) []T {
	out := make([]T, n)
	copy(out, a)
	return out
}
