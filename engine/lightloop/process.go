package lightloop

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-lightloop/common"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/camera"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/shadow"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

// DefaultBatchSize is the number of records classified per worker task.
const DefaultBatchSize = 32

// TaskSubmitter runs classification batches. worker.DynamicWorkerPool implements it.
type TaskSubmitter interface {
	SubmitTask(t worker.Task)
}

// ProcessContext is the read-only view state the classifier needs.
type ProcessContext struct {
	Camera camera.Camera
	// Result must be the culling result the store was built from.
	Result         visibility.Result
	ShadowSettings shadow.Settings
	// MaxPriorityDistance is the distance mapped to the lowest sort priority.
	// Zero uses the camera's far plane.
	MaxPriorityDistance float32
}

// ProcessVisibleLights classifies every valid record below Size. Batches of
// batchSize records run on submitter, or inline when submitter is nil. The call
// returns only after every batch has finished, so the counters, sort keys and
// shadow indices are complete when it returns.
//
// Records invalidated by output filtering, lights that were disabled since
// culling, and non-directional lights past their fade distance are skipped and
// do not count.
//
// Parameters:
//   - ctx: the view state
//   - submitter: the worker pool for batches, may be nil
//   - batchSize: records per batch, DefaultBatchSize when <= 0
func (s *VisibleLightStore) ProcessVisibleLights(ctx ProcessContext, submitter TaskSubmitter, batchSize int) {
	s.resetCounts()
	if s.size == 0 {
		return
	}
	if ctx.Camera == nil {
		panic("lightloop: process context has no camera")
	}
	if ctx.Result == nil {
		panic("lightloop: process context has no culling result")
	}
	lights := ctx.Result.VisibleLights()
	if len(lights) != s.size {
		panic(fmt.Sprintf("lightloop: culling result has %d lights, store was built with %d", len(lights), s.size))
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	view := classifyView{
		cameraPos:   ctx.Camera.Position(),
		frame:       ctx.Camera.FrameSettings(),
		shadows:     ctx.ShadowSettings,
		maxPriority: common.Coalesce(ctx.MaxPriorityDistance, ctx.Camera.Far()),
	}

	if submitter == nil || s.size <= batchSize {
		s.classifyRange(&view, lights, 0, s.size)
	} else {
		var wg sync.WaitGroup
		taskID := 0
		for start := 0; start < s.size; start += batchSize {
			end := min(start+batchSize, s.size)
			wg.Add(1)
			submitter.SubmitTask(worker.Task{
				ID: taskID,
				Do: func() (any, error) {
					defer wg.Done()
					s.classifyRange(&view, lights, start, end)
					return nil, nil
				},
			})
			taskID++
		}
		wg.Wait()
	}

	// Batches append shadow indices in completion order.
	slices.Sort(s.shadowIndices[:s.ShadowLightCount()])
}

// classifyView holds the per-view values shared by every batch.
type classifyView struct {
	cameraPos   mgl32.Vec3
	frame       camera.FrameSettings
	shadows     shadow.Settings
	maxPriority float32
}

func (s *VisibleLightStore) classifyRange(view *classifyView, lights []visibility.VisibleLight, start, end int) {
	for i := start; i < end; i++ {
		s.classify(view, lights, i)
	}
}

func (s *VisibleLightStore) classify(view *classifyView, lights []visibility.VisibleLight, i int) {
	e := s.visibleEntities[i]
	if !e.Valid {
		return
	}
	vl := lights[i]
	if vl.Light != nil && !vl.Light.Enabled() {
		return
	}

	lightType := vl.Type
	category := lightType.Category()
	directional := category == light.CategoryDirectional

	fadeDistance, volumetricFadeDistance := light.DefaultFadeDistance, light.DefaultFadeDistance
	if vl.Light != nil {
		fadeDistance = vl.Light.FadeDistance()
		volumetricFadeDistance = vl.Light.VolumetricFadeDistance()
	}

	var distance float32
	distanceFade, volumetricFade := float32(1), float32(1)
	if !directional {
		distance = vl.Position.Sub(view.cameraPos).Len()
		distanceFade = common.LinearDistanceFade(distance, fadeDistance)
		if distanceFade <= 0 {
			return
		}
		volumetricFade = common.LinearDistanceFade(distance, volumetricFadeDistance)
	}
	if !view.frame.Volumetrics {
		volumetricFade = 0
	}

	flags := s.shadowFlags(view, vl, i, distance)

	s.processed[i] = ProcessedEntry{
		DataIndex:              e.DataIndex,
		GPULightType:           lightType.GPUType(),
		LightType:              lightType,
		DistanceFade:           distanceFade,
		VolumetricDistanceFade: volumetricFade,
		DistanceToCamera:       distance,
		ShadowMapFlags:         flags,
		IsBakedShadowMask:      s.bakingOutput[i].UsesShadowMask(),
	}
	s.volumeTypes[i] = lightType.VolumeType()

	var priority uint16
	if !directional {
		priority = QuantizeDistance(distance, view.maxPriority)
	}
	slot := s.counts[CountProcessedLights].Add(1) - 1
	s.sortKeys[slot] = PackSortKey(category, priority, i)

	switch category {
	case light.CategoryDirectional:
		s.counts[CountDirectionalLights].Add(1)
	case light.CategoryPunctual:
		s.counts[CountPunctualLights].Add(1)
	case light.CategoryArea:
		s.counts[CountAreaLights].Add(1)
	}

	if flags != ShadowMapFlagsNone {
		shadowSlot := s.counts[CountShadowLights].Add(1) - 1
		s.shadowIndices[shadowSlot] = i
	}
}

// shadowFlags decides which shadow techniques record i uses this frame. Lights
// beyond the view's max shadow distance get none.
func (s *VisibleLightStore) shadowFlags(view *classifyView, vl visibility.VisibleLight, i int, distance float32) ShadowMapFlags {
	settings := s.shadows[i]
	if !settings.Enabled() {
		return ShadowMapFlagsNone
	}
	if vl.Type.Category() != light.CategoryDirectional &&
		view.shadows.MaxShadowDistance > 0 &&
		distance-vl.Range > view.shadows.MaxShadowDistance {
		return ShadowMapFlagsNone
	}

	flags := ShadowMapFlagsNone
	if view.frame.ShadowMaps {
		flags |= ShadowMapFlagsShadowMap
	}
	if view.frame.ScreenSpaceShadows && settings.ScreenSpace {
		flags |= ShadowMapFlagsScreenSpace
	}
	if view.frame.RayTracedShadows && settings.RayTraced {
		flags |= ShadowMapFlagsRayTraced
	}
	return flags
}
