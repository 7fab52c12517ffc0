package lightloop

import (
	"github.com/Carmen-Shannon/oxy-lightloop/engine/camera"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/shadow"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

// ShadowReserver accepts shadow-map reservations. *shadow.Manager implements it.
type ShadowReserver interface {
	ReserveShadowMap(req shadow.Request) (shadow.Reservation, error)
}

// ShadowContext is everything shadow dispatch needs for one view.
type ShadowContext struct {
	Camera     camera.Camera
	Result     visibility.Result
	Registry   EntityRegistry
	Shadows    ShadowReserver
	Settings   shadow.Settings
	InitParams shadow.InitParameters
	// Logger receives reservation failures. Nil discards them.
	Logger Logger
}

// ProcessShadows issues one shadow-map reservation per shadow-casting light.
// A light whose casters are all out of view has its shadow flags cleared. A
// light whose entity data is gone is skipped. Reservation failures belong to
// the shadow subsystem and are only logged.
//
// Parameters:
//   - ctx: the view's shadow context
//
// Returns:
//   - int: the number of reservation requests issued
func (s *VisibleLightStore) ProcessShadows(ctx ShadowContext) int {
	count := s.ShadowLightCount()
	if count == 0 || ctx.Shadows == nil || ctx.Result == nil || ctx.Registry == nil {
		return 0
	}
	logger := ctx.Logger
	if logger == nil {
		logger = NopLogger()
	}
	lights := ctx.Result.VisibleLights()

	issued := 0
	for _, index := range s.shadowIndices[:count] {
		entry := &s.processed[index]

		bounds, ok := ctx.Result.ShadowCasterBounds(index)
		if !ok {
			entry.ShadowMapFlags = ShadowMapFlagsNone
			continue
		}

		additional := ctx.Registry.AdditionalData(entry.DataIndex)
		if additional == nil {
			continue
		}

		_, err := ctx.Shadows.ReserveShadowMap(shadow.Request{
			View:         ctx.Camera,
			Settings:     ctx.Settings,
			InitParams:   ctx.InitParams,
			Light:        lights[index],
			LightType:    entry.LightType,
			LocalToWorld: additional.LocalToWorld,
			CasterBounds: bounds,
			Resolution:   additional.ResolvedShadowResolution(),
		})
		issued++
		if err != nil {
			logger.Warnf("shadow reservation for record %d (%s): %v", index, entry.LightType, err)
		}
	}
	return issued
}
