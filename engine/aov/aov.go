// Package aov describes output-variable requests: specialized render passes
// that only want a chosen subset of the scene's lights.
package aov

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/entity"
)

// requestImpl is the implementation of the Request interface.
type requestImpl struct {
	mu *sync.RWMutex

	name        string
	lightFilter map[uuid.UUID]struct{}
	hasFilter   bool
}

// Request is an output-variable request for a view.
type Request interface {
	// Name returns the request name.
	Name() string

	// HasLightFilter reports whether the request restricts which lights are processed.
	//
	// Returns:
	//   - bool: true if only the lights in the filter should be kept
	HasLightFilter() bool

	// IsLightEnabled reports whether a light's scene object passes the filter.
	// Always true when the request has no light filter.
	//
	// Parameters:
	//   - obj: the scene object backing the light
	//
	// Returns:
	//   - bool: true if the light should be kept
	IsLightEnabled(obj entity.SceneObject) bool

	// SetLightFilter replaces the filter with the given objects. Passing no
	// objects keeps the filter active with nothing enabled.
	SetLightFilter(objs ...entity.SceneObject)

	// ClearLightFilter removes the filter so every light is kept.
	ClearLightFilter()
}

var _ Request = &requestImpl{}

// NewRequest creates a Request with no light filter, then applies options.
//
// Parameters:
//   - name: the request name
//   - opts: functional options to configure the request
//
// Returns:
//   - Request: the new request
func NewRequest(name string, opts ...RequestBuilderOption) Request {
	r := &requestImpl{
		mu:          &sync.RWMutex{},
		name:        name,
		lightFilter: make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the request used when a view renders every output normally.
func Default() Request {
	return NewRequest("default")
}

func (r *requestImpl) Name() string {
	return r.name
}

func (r *requestImpl) HasLightFilter() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasFilter
}

func (r *requestImpl) IsLightEnabled(obj entity.SceneObject) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasFilter {
		return true
	}
	if obj == nil {
		return false
	}
	_, ok := r.lightFilter[obj.ID()]
	return ok
}

func (r *requestImpl) SetLightFilter(objs ...entity.SceneObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setFilter(objs)
}

func (r *requestImpl) ClearLightFilter() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.lightFilter)
	r.hasFilter = false
}

func (r *requestImpl) setFilter(objs []entity.SceneObject) {
	clear(r.lightFilter)
	for _, o := range objs {
		if o == nil {
			continue
		}
		r.lightFilter[o.ID()] = struct{}{}
	}
	r.hasFilter = true
}
