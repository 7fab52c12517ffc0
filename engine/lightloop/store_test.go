package lightloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/entity"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

func TestVisibleLightStore_ResizeGrowth(t *testing.T) {
	s := NewVisibleLightStore()
	assert.Equal(t, 0, s.Capacity())

	s.Resize(10)
	assert.Equal(t, ArrayCapacity, s.Capacity(), "small requests grow to the baseline")

	s.Resize(33)
	assert.Equal(t, 64, s.Capacity(), "growth doubles when that beats the request")

	s.Resize(64)
	assert.Equal(t, 64, s.Capacity())

	s.Resize(200)
	assert.Equal(t, 200, s.Capacity(), "large requests win over doubling")

	s.Resize(201)
	assert.Equal(t, 400, s.Capacity())

	s.Resize(5)
	assert.Equal(t, 400, s.Capacity(), "capacity never shrinks")

	s.checkInvariants()
}

func TestVisibleLightStore_ResizeNoopKeepsStorage(t *testing.T) {
	s := NewVisibleLightStore()
	s.Resize(40)
	before := &s.visibleEntities[0]

	s.Resize(40)
	s.Resize(1)
	assert.Same(t, before, &s.visibleEntities[0])
}

func TestVisibleLightStore_ResizePreservesEntries(t *testing.T) {
	s := NewVisibleLightStore()
	s.Resize(2)
	s.visibleEntities[1] = entity.EntityData{EntityIndex: 7, DataIndex: 3, Valid: true}
	s.sortKeys[1] = 99

	s.Resize(100)
	assert.Equal(t, entity.EntityData{EntityIndex: 7, DataIndex: 3, Valid: true}, s.visibleEntities[1])
	assert.Equal(t, uint32(99), s.sortKeys[1])
}

func TestVisibleLightStore_ResetKeepsCapacity(t *testing.T) {
	reg := &stubRegistry{defaultEntity: entity.EntityData{Valid: true}}
	lights := make([]visibility.VisibleLight, 20)
	for i := range lights {
		lights[i] = visibility.NewVisibleLight(pointLight("p", float32(i), 0, 0, false))
	}

	s := NewVisibleLightStore()
	s.Build(visibility.NewCullingResult(lights, nil), reg)
	require.Equal(t, 20, s.Size())
	capacity := s.Capacity()
	storage := &s.visibleEntities[0]

	s.Reset()
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, capacity, s.Capacity())
	s.Reset()
	assert.Equal(t, 0, s.Size())

	s.Build(visibility.NewCullingResult(lights[:10], nil), reg)
	assert.Equal(t, 10, s.Size())
	assert.Same(t, storage, &s.visibleEntities[0], "a smaller build must not reallocate")
}

func TestVisibleLightStore_DisposeTwice(t *testing.T) {
	s := NewVisibleLightStore()
	s.Resize(50)
	s.sortSupport = make([]uint32, 64)

	s.Dispose()
	assert.Equal(t, 0, s.Capacity())
	assert.Equal(t, 0, s.Size())
	assert.Nil(t, s.sortKeys)
	assert.Nil(t, s.sortSupport)

	assert.NotPanics(t, s.Dispose)
}

func TestVisibleLightStore_InvariantViolationPanics(t *testing.T) {
	s := NewVisibleLightStore()
	s.Resize(8)
	s.processed = s.processed[:4]
	assert.Panics(t, s.checkInvariants)
}

func TestVisibleLightStore_ColumnsCoverSize(t *testing.T) {
	reg := &stubRegistry{defaultEntity: entity.EntityData{Valid: true}}
	cam := newTestCamera()
	lights := visibleLights(
		directionalLight("sun", false),
		pointLight("a", 0, 0, 0, false),
		pointLight("b", 1, 0, 0, false),
	)
	result := visibility.NewCullingResult(lights, nil)

	s := NewVisibleLightStore()
	runPipeline(s, cam, result, reg, nil, &recordingReserver{})

	assert.Len(t, s.VisibleEntities(), 3)
	assert.Len(t, s.BakingOutputs(), 3)
	assert.Len(t, s.ShadowSettings(), 3)
	assert.Len(t, s.ProcessedEntities(), 3)
	assert.Len(t, s.ProcessedVolumeTypes(), 3)
	assert.Len(t, s.SortKeys(), 3)
	assert.GreaterOrEqual(t, s.Capacity(), s.Size())

	assert.Equal(t, light.VolumeTypeNone, s.ProcessedVolumeTypes()[0])
	assert.Equal(t, light.VolumeTypeSphere, s.ProcessedVolumeTypes()[1])
}

func TestVisibleLightStore_CheckInvariantsReportsFirstBadColumn(t *testing.T) {
	s := NewVisibleLightStore()
	s.Resize(40)
	assert.NotPanics(t, s.checkInvariants)

	s.processed = s.processed[:10]
	s.shadowIndices = s.shadowIndices[:20]
	for range 5 {
		assert.PanicsWithValue(t, "lightloop: column processed has length 10, capacity is 40", s.checkInvariants)
	}
}
