package lightloop

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/camera"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/shadow"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

// Profiler scope names, one per pipeline step.
const (
	ScopeBuildVisibleLights   = "BuildVisibleLightEntities"
	ScopeFilterVisibleLights  = "FilterVisibleLightsByAOV"
	ScopeProcessVisibleLights = "ProcessVisibleLights"
	ScopeSortVisibleLights    = "SortVisibleLights"
	ScopeProcessShadows       = "ProcessShadows"
)

// FrameContext is the per-view input of one PreprocessVisibleLights call.
type FrameContext struct {
	Camera   camera.Camera
	Result   visibility.Result
	Registry EntityRegistry
	// Selection restricts the processed lights. Nil keeps every light.
	Selection OutputSelection
	// Shadows receives reservations. Nil skips shadow dispatch.
	Shadows        ShadowReserver
	ShadowSettings shadow.Settings
	// ShadowInitParams defaults to the reserver's own parameters when it exposes them.
	ShadowInitParams    shadow.InitParameters
	MaxPriorityDistance float32
}

// FrameStats summarizes one preprocessed view.
type FrameStats struct {
	Visible        int
	Processed      int
	Directional    int
	Punctual       int
	Area           int
	ShadowLights   int
	ShadowRequests int
	Algorithm      SortAlgorithm
}

// LightLoop runs the visible-light pipeline for views. One LightLoop may serve
// several views concurrently as long as each view uses its own store.
type LightLoop struct {
	mu *sync.Mutex

	workers     int
	batchSize   int
	idleTimeout time.Duration
	serial      bool

	pool     worker.DynamicWorkerPool
	stores   *StorePool
	profiler *profiler.Profiler
	logger   Logger
	closed   bool
}

// NewLightLoop creates a LightLoop with its own classification worker pool and store pool.
//
// Parameters:
//   - opts: functional options to configure the light loop
//
// Returns:
//   - *LightLoop: the new light loop
func NewLightLoop(opts ...LightLoopBuilderOption) *LightLoop {
	ll := &LightLoop{
		mu:          &sync.Mutex{},
		workers:     max(runtime.NumCPU()-1, 1),
		batchSize:   DefaultBatchSize,
		idleTimeout: time.Second,
		stores:      NewStorePool(),
		logger:      NopLogger(),
	}
	for _, opt := range opts {
		opt(ll)
	}
	if !ll.serial {
		ll.pool = worker.NewDynamicWorkerPool(ll.workers, 256, ll.idleTimeout)
	}
	return ll
}

// Stores returns the loop's store pool.
func (ll *LightLoop) Stores() *StorePool {
	return ll.stores
}

// PreprocessVisibleLights runs build, output filtering, classification, sorting
// and shadow dispatch on store for one view. The store's outputs are valid
// until its next Reset. Calling it after Close panics.
//
// Parameters:
//   - store: the store to fill, owned by the caller for this frame
//   - ctx: the view's inputs
//
// Returns:
//   - FrameStats: counts for the view
func (ll *LightLoop) PreprocessVisibleLights(store *VisibleLightStore, ctx FrameContext) FrameStats {
	ll.mustBeOpen("PreprocessVisibleLights")

	endBuild := ll.profiler.Scope(ScopeBuildVisibleLights)
	store.Build(ctx.Result, ctx.Registry)
	endBuild()

	stats := FrameStats{Visible: store.Size()}
	if store.Size() == 0 {
		return stats
	}

	endFilter := ll.profiler.Scope(ScopeFilterVisibleLights)
	store.FilterByOutputSelection(ctx.Selection, ctx.Registry)
	endFilter()

	endProcess := ll.profiler.Scope(ScopeProcessVisibleLights)
	var submitter TaskSubmitter
	if ll.pool != nil {
		submitter = ll.pool
	}
	store.ProcessVisibleLights(ProcessContext{
		Camera:              ctx.Camera,
		Result:              ctx.Result,
		ShadowSettings:      ctx.ShadowSettings,
		MaxPriorityDistance: ctx.MaxPriorityDistance,
	}, submitter, ll.batchSize)
	endProcess()

	endSort := ll.profiler.Scope(ScopeSortVisibleLights)
	stats.Algorithm = store.SortLightKeys()
	endSort()

	endShadows := ll.profiler.Scope(ScopeProcessShadows)
	stats.ShadowRequests = store.ProcessShadows(ShadowContext{
		Camera:     ctx.Camera,
		Result:     ctx.Result,
		Registry:   ctx.Registry,
		Shadows:    ctx.Shadows,
		Settings:   ctx.ShadowSettings,
		InitParams: shadowInitParams(ctx),
		Logger:     ll.logger,
	})
	endShadows()

	stats.Processed = store.ProcessedCount()
	stats.Directional = store.DirectionalCount()
	stats.Punctual = store.PunctualCount()
	stats.Area = store.AreaCount()
	stats.ShadowLights = store.ShadowLightCount()

	ll.logger.Debugf("view %s: %d visible, %d processed (%d/%d/%d), %d shadow lights, %d requests, %s sort",
		cameraName(ctx.Camera), stats.Visible, stats.Processed, stats.Directional, stats.Punctual, stats.Area,
		stats.ShadowLights, stats.ShadowRequests, stats.Algorithm)
	return stats
}

// ProcessView takes a store from the pool, preprocesses the view into it and
// hands it to consume. The store returns to the pool when consume returns, so
// consume must not keep it.
func (ll *LightLoop) ProcessView(ctx FrameContext, consume func(store *VisibleLightStore, stats FrameStats)) FrameStats {
	ll.mustBeOpen("ProcessView")

	var stats FrameStats
	ll.stores.WithStore(func(store *VisibleLightStore) {
		stats = ll.PreprocessVisibleLights(store, ctx)
		if consume != nil {
			consume(store, stats)
		}
	})
	return stats
}

// Close stops the worker pool and disposes every pooled store. Safe to call
// more than once; the loop cannot process views afterwards.
func (ll *LightLoop) Close() {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	if ll.closed {
		return
	}
	ll.closed = true
	if ll.pool != nil {
		ll.pool.Stop()
	}
	ll.stores.Cleanup()
}

// mustBeOpen panics once Close has run. Stopped workers never pick up new
// batches, so a closed loop would otherwise block forever.
func (ll *LightLoop) mustBeOpen(op string) {
	ll.mu.Lock()
	closed := ll.closed
	ll.mu.Unlock()
	if closed {
		panic("lightloop: " + op + " on a closed LightLoop")
	}
}

func shadowInitParams(ctx FrameContext) shadow.InitParameters {
	if ctx.ShadowInitParams != (shadow.InitParameters{}) {
		return ctx.ShadowInitParams
	}
	if p, ok := ctx.Shadows.(interface{ InitParameters() shadow.InitParameters }); ok {
		return p.InitParameters()
	}
	return ctx.ShadowInitParams
}

func cameraName(c camera.Camera) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name()
}
