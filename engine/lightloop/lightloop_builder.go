package lightloop

import (
	"time"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/profiler"
)

// LightLoopBuilderOption is a function that configures a LightLoop during construction.
type LightLoopBuilderOption func(*LightLoop)

// WithWorkers sets the number of classification workers.
//
// Parameters:
//   - n: maximum worker count, values below 1 are raised to 1
//
// Returns:
//   - LightLoopBuilderOption: a function that applies the worker option to a LightLoop
func WithWorkers(n int) LightLoopBuilderOption {
	return func(ll *LightLoop) {
		ll.workers = max(n, 1)
	}
}

// WithBatchSize sets how many records one classification task handles.
func WithBatchSize(n int) LightLoopBuilderOption {
	return func(ll *LightLoop) {
		if n > 0 {
			ll.batchSize = n
		}
	}
}

// WithIdleTimeout sets the idle timeout of the classification workers.
func WithIdleTimeout(d time.Duration) LightLoopBuilderOption {
	return func(ll *LightLoop) {
		ll.idleTimeout = d
	}
}

// WithSerialProcessing classifies on the calling goroutine instead of a worker pool.
func WithSerialProcessing() LightLoopBuilderOption {
	return func(ll *LightLoop) {
		ll.serial = true
	}
}

// WithProfiler records a scope per pipeline step on p.
func WithProfiler(p *profiler.Profiler) LightLoopBuilderOption {
	return func(ll *LightLoop) {
		ll.profiler = p
	}
}

// WithLogger sets the logger for per-view summaries and shadow reservation failures.
//
// Parameters:
//   - logger: the logger, nil restores the no-op logger
//
// Returns:
//   - LightLoopBuilderOption: a function that applies the logger option to a LightLoop
func WithLogger(logger Logger) LightLoopBuilderOption {
	return func(ll *LightLoop) {
		if logger == nil {
			logger = NopLogger()
		}
		ll.logger = logger
	}
}

// WithStorePool shares a store pool between light loops.
func WithStorePool(p *StorePool) LightLoopBuilderOption {
	return func(ll *LightLoop) {
		if p != nil {
			ll.stores = p
		}
	}
}
