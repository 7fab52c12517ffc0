package entity

import (
	"time"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// CollectionBuilderOption is a function that configures a Collection during construction.
type CollectionBuilderOption func(*Collection)

// WithTransformWorkers sets how many pooled goroutines refresh entity transforms.
//
// Parameters:
//   - workers: worker count (values < 1 use a single worker)
//
// Returns:
//   - CollectionBuilderOption: a function that sets the worker count
func WithTransformWorkers(workers int) CollectionBuilderOption {
	return func(c *Collection) {
		c.workers = max(workers, 1)
	}
}

// WithTransformBatchSize sets how many entities a single transform job updates.
func WithTransformBatchSize(size int) CollectionBuilderOption {
	return func(c *Collection) {
		c.batchSize = max(size, 1)
	}
}

// WithWorkerIdleTimeout sets the idle timeout handed to the transform worker pool.
func WithWorkerIdleTimeout(d time.Duration) CollectionBuilderOption {
	return func(c *Collection) {
		c.idleTimeout = d
	}
}

// WithDefaultLight replaces the light backing the default entity.
func WithDefaultLight(l light.Light) CollectionBuilderOption {
	return func(c *Collection) {
		c.defaultLight = l
	}
}
