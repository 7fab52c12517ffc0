package lightloop

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-lightloop/common"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/camera"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/entity"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/shadow"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

// recordingReserver counts reservation requests and accepts all of them.
type recordingReserver struct {
	requests []shadow.Request
}

func (r *recordingReserver) ReserveShadowMap(req shadow.Request) (shadow.Reservation, error) {
	r.requests = append(r.requests, req)
	var id uuid.UUID
	if req.Light.Light != nil {
		id = req.Light.Light.ID()
	}
	return shadow.Reservation{LightID: id, LightType: req.LightType}, nil
}

func (r *recordingReserver) lightIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.requests))
	for _, req := range r.requests {
		ids = append(ids, req.Light.Light.ID())
	}
	return ids
}

// stubRegistry resolves nothing and returns a configurable default entity.
type stubRegistry struct {
	defaultEntity entity.EntityData
	completed     int
}

func (r *stubRegistry) CompleteTransformJobs()                         { r.completed++ }
func (r *stubRegistry) FindEntity(uuid.UUID) entity.EntityData         { return entity.Invalid }
func (r *stubRegistry) DefaultEntity() entity.EntityData               { return r.defaultEntity }
func (r *stubRegistry) SceneObject(int) entity.SceneObject             { return nil }
func (r *stubRegistry) AdditionalData(int) *entity.AdditionalLightData { return nil }

func newTestCollection(t *testing.T, lights ...light.Light) *entity.Collection {
	t.Helper()
	c := entity.NewCollection(entity.WithTransformWorkers(2))
	t.Cleanup(c.Close)
	for _, l := range lights {
		_, err := c.Register(l)
		require.NoError(t, err)
	}
	return c
}

func newTestCamera(opts ...camera.CameraBuilderOption) camera.Camera {
	opts = append([]camera.CameraBuilderOption{
		camera.WithName("test_view"),
		camera.WithLookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}),
		camera.WithClipPlanes(0.1, 100),
	}, opts...)
	return camera.NewCamera(opts...)
}

func directionalLight(name string, shadows bool) light.Light {
	opts := []light.LightBuilderOption{light.WithName(name), light.WithDirection(0, -1, 0)}
	if shadows {
		opts = append(opts, light.WithShadowMode(light.ShadowModeSoft))
	}
	return light.NewLight(light.LightTypeDirectional, opts...)
}

func pointLight(name string, x, y, z float32, shadows bool) light.Light {
	opts := []light.LightBuilderOption{light.WithName(name), light.WithPosition(x, y, z), light.WithRange(10)}
	if shadows {
		opts = append(opts, light.WithShadowMode(light.ShadowModeHard))
	}
	return light.NewLight(light.LightTypePoint, opts...)
}

func visibleLights(lights ...light.Light) []visibility.VisibleLight {
	out := make([]visibility.VisibleLight, 0, len(lights))
	for _, l := range lights {
		out = append(out, visibility.NewVisibleLight(l))
	}
	return out
}

// casterBoundsFor gives every listed light index a unit box of casters.
func casterBoundsFor(indices ...int) map[int]common.Bounds {
	m := make(map[int]common.Bounds, len(indices))
	for _, i := range indices {
		m[i] = common.Bounds{Extents: mgl32.Vec3{1, 1, 1}}
	}
	return m
}

// runPipeline runs every step on store the way LightLoop does, serially.
func runPipeline(store *VisibleLightStore, cam camera.Camera, result visibility.Result, registry EntityRegistry, sel OutputSelection, reserver ShadowReserver) int {
	store.Build(result, registry)
	if store.Size() == 0 {
		return 0
	}
	store.FilterByOutputSelection(sel, registry)
	store.ProcessVisibleLights(ProcessContext{
		Camera:         cam,
		Result:         result,
		ShadowSettings: shadow.DefaultSettings(),
	}, nil, 0)
	store.SortLightKeys()
	return store.ProcessShadows(ShadowContext{
		Camera:     cam,
		Result:     result,
		Registry:   registry,
		Shadows:    reserver,
		Settings:   shadow.DefaultSettings(),
		InitParams: shadow.DefaultInitParameters(),
	})
}
