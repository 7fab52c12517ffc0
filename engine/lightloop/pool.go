package lightloop

import "sync"

// StorePool recycles VisibleLightStore instances across frames and views.
//
// Every store the pool hands out stays tracked until Cleanup, whether it is
// checked out or sitting in the free list, so Cleanup releases all of them.
type StorePool struct {
	mu *sync.Mutex

	free    []*VisibleLightStore
	tracked map[*VisibleLightStore]struct{}
}

// NewStorePool creates an empty pool.
func NewStorePool() *StorePool {
	return &StorePool{
		mu:      &sync.Mutex{},
		tracked: make(map[*VisibleLightStore]struct{}),
	}
}

// Get returns a reset store owned by the caller until Release.
func (p *StorePool) Get() *VisibleLightStore {
	p.mu.Lock()
	var s *VisibleLightStore
	if n := len(p.free); n > 0 {
		s = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		s = NewVisibleLightStore()
		s.owner = p
	}
	s.pooled = false
	p.mu.Unlock()

	s.Reset()
	return s
}

// Release returns a store to the free list. Releasing a store twice, or one
// this pool did not hand out, panics.
func (p *StorePool) Release(s *VisibleLightStore) {
	if s == nil {
		return
	}
	if s.owner != p {
		panic("lightloop: releasing a store to a pool that does not own it")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if s.pooled {
		panic("lightloop: store released twice")
	}
	s.pooled = true
	p.free = append(p.free, s)
	p.tracked[s] = struct{}{}
}

// WithStore runs fn with a store from the pool and releases it afterwards,
// including when fn panics.
func (p *StorePool) WithStore(fn func(s *VisibleLightStore)) {
	s := p.Get()
	defer p.Release(s)
	fn(s)
}

// Cleanup disposes every tracked store and empties the pool. Stores still
// checked out lose their storage too; a later Reset re-registers them.
func (p *StorePool) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for s := range p.tracked {
		s.Dispose()
	}
	clear(p.tracked)
	clear(p.free)
	p.free = p.free[:0]
}

// Tracked returns the number of stores Cleanup would dispose.
func (p *StorePool) Tracked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tracked)
}

// Free returns the number of stores waiting in the free list.
func (p *StorePool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

func (p *StorePool) track(s *VisibleLightStore) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracked[s] = struct{}{}
}
