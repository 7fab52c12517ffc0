package aov

import "github.com/Carmen-Shannon/oxy-lightloop/engine/entity"

// RequestBuilderOption is a function that configures a Request during construction.
type RequestBuilderOption func(*requestImpl)

// WithLightFilter restricts the request to the given lights.
//
// Parameters:
//   - objs: scene objects of the lights to keep
//
// Returns:
//   - RequestBuilderOption: a function that installs the filter
func WithLightFilter(objs ...entity.SceneObject) RequestBuilderOption {
	return func(r *requestImpl) {
		r.setFilter(objs)
	}
}
