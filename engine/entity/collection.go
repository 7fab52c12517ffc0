package entity

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// DefaultTransformBatchSize is the number of entities refreshed per transform job.
const DefaultTransformBatchSize = 64

var (
	// ErrDuplicateLight is returned when a light id is registered twice.
	ErrDuplicateLight = errors.New("entity: light already registered")
	// ErrNilLight is returned when registering a nil light.
	ErrNilLight = errors.New("entity: light is nil")
)

// Collection is the registry of persistent light entities.
//
// Lookups, registration and destruction are safe for concurrent use. Transform
// jobs run on a pooled set of goroutines and write each entity's LocalToWorld;
// readers of AdditionalLightData must call CompleteTransformJobs first.
//
// Schedule transform jobs between frames only. ScheduleTransformJobs and
// CompleteTransformJobs are serialized with each other, but a view still
// reading LocalToWorld while jobs are rescheduled sees torn matrices.
type Collection struct {
	mu *sync.RWMutex

	lookup     map[uuid.UUID]int // light id -> entity index
	entities   []EntityData      // indexed by entity index
	objects    []light.Light     // indexed by data index; nil once destroyed
	additional []*AdditionalLightData

	defaultEntity int
	defaultLight  light.Light

	workers     int
	batchSize   int
	idleTimeout time.Duration
	pool        worker.DynamicWorkerPool

	// jobsMu orders jobs.Add against jobs.Wait and guards closed.
	jobsMu *sync.Mutex
	jobs   sync.WaitGroup
	closed bool
}

// NewCollection creates an empty registry holding only the default entity.
//
// Parameters:
//   - opts: functional options to configure the collection
//
// Returns:
//   - *Collection: the new registry
func NewCollection(opts ...CollectionBuilderOption) *Collection {
	c := &Collection{
		mu:          &sync.RWMutex{},
		jobsMu:      &sync.Mutex{},
		lookup:      make(map[uuid.UUID]int),
		workers:     max(runtime.NumCPU()-1, 1),
		batchSize:   DefaultTransformBatchSize,
		idleTimeout: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.defaultLight == nil {
		c.defaultLight = light.NewLight(light.LightTypePoint, light.WithName("default_light"))
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, 256, c.idleTimeout)

	def, _ := c.register(c.defaultLight)
	c.defaultEntity = def.EntityIndex
	return c
}

// Register adds a light to the registry and returns its entity.
//
// Parameters:
//   - l: the light to register
//
// Returns:
//   - EntityData: the new entity
//   - error: ErrNilLight or ErrDuplicateLight
func (c *Collection) Register(l light.Light) (EntityData, error) {
	if l == nil {
		return Invalid, ErrNilLight
	}
	c.CompleteTransformJobs()
	return c.register(l)
}

func (c *Collection) register(l light.Light) (EntityData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup[l.ID()]; ok {
		return Invalid, fmt.Errorf("register %s (%s): %w", l.Name(), l.ID(), ErrDuplicateLight)
	}

	e := EntityData{
		EntityIndex: len(c.entities),
		DataIndex:   len(c.objects),
		Valid:       true,
	}
	c.entities = append(c.entities, e)
	c.objects = append(c.objects, l)
	c.additional = append(c.additional, &AdditionalLightData{
		Light:        l,
		LocalToWorld: lightToWorld(l),
	})
	c.lookup[l.ID()] = e.EntityIndex
	return e, nil
}

// Destroy removes a light from the registry. Its entity becomes invalid and its
// data slot is cleared, so frames still holding the entity see nil data.
// Returns false if the light was not registered. The default entity cannot be destroyed.
func (c *Collection) Destroy(id uuid.UUID) bool {
	c.CompleteTransformJobs()

	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.lookup[id]
	if !ok || idx == c.defaultEntity {
		return false
	}
	e := c.entities[idx]
	c.objects[e.DataIndex] = nil
	c.additional[e.DataIndex] = nil
	c.entities[idx].Valid = false
	delete(c.lookup, id)
	return true
}

// Len returns the number of live entities, including the default entity.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lookup)
}

// FindEntity resolves a light id to its entity. Returns Invalid when the id is unknown.
//
// Parameters:
//   - id: the light's identity
//
// Returns:
//   - EntityData: the entity, or Invalid
func (c *Collection) FindEntity(id uuid.UUID) EntityData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.lookup[id]
	if !ok {
		return Invalid
	}
	return c.entities[idx]
}

// DefaultEntity returns the entity that stands in for lights that were never registered.
func (c *Collection) DefaultEntity() EntityData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entities[c.defaultEntity]
}

// Entity returns the entity at an entity index, or Invalid when out of range.
func (c *Collection) Entity(entityIndex int) EntityData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entityIndex < 0 || entityIndex >= len(c.entities) {
		return Invalid
	}
	return c.entities[entityIndex]
}

// SceneObject returns the scene object stored at a data index, or nil if the
// slot is empty or out of range.
func (c *Collection) SceneObject(dataIndex int) SceneObject {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if dataIndex < 0 || dataIndex >= len(c.objects) || c.objects[dataIndex] == nil {
		return nil
	}
	return c.objects[dataIndex]
}

// AdditionalData returns the per-entity light data at a data index, or nil if
// the light was destroyed or the index is out of range.
func (c *Collection) AdditionalData(dataIndex int) *AdditionalLightData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if dataIndex < 0 || dataIndex >= len(c.additional) {
		return nil
	}
	return c.additional[dataIndex]
}

// ScheduleTransformJobs queues background jobs that refresh every entity's
// LocalToWorld from its light. Jobs from a previous call are completed first.
// Scheduling on a closed collection panics.
func (c *Collection) ScheduleTransformJobs() {
	c.jobsMu.Lock()
	defer c.jobsMu.Unlock()
	if c.closed {
		panic("entity: ScheduleTransformJobs on a closed Collection")
	}
	c.jobs.Wait()

	c.mu.RLock()
	snapshot := make([]*AdditionalLightData, len(c.additional))
	copy(snapshot, c.additional)
	c.mu.RUnlock()

	taskID := 0
	for start := 0; start < len(snapshot); start += c.batchSize {
		batch := snapshot[start:min(start+c.batchSize, len(snapshot))]
		c.jobs.Add(1)
		c.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer c.jobs.Done()
				for _, d := range batch {
					if d == nil {
						continue
					}
					d.LocalToWorld = lightToWorld(d.Light)
				}
				return nil, nil
			},
		})
		taskID++
	}
}

// CompleteTransformJobs blocks until every scheduled transform job has finished.
func (c *Collection) CompleteTransformJobs() {
	c.jobsMu.Lock()
	defer c.jobsMu.Unlock()
	c.jobs.Wait()
}

// Close completes outstanding jobs and stops the transform worker pool.
// Safe to call more than once.
func (c *Collection) Close() {
	c.jobsMu.Lock()
	defer c.jobsMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.jobs.Wait()
	c.pool.Stop()
}
