package lightloop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePool_GetReleaseReuses(t *testing.T) {
	p := NewStorePool()
	s := p.Get()
	s.Resize(100)
	s.size = 10
	p.Release(s)
	assert.Equal(t, 1, p.Free())

	again := p.Get()
	assert.Same(t, s, again)
	assert.Equal(t, 0, again.Size(), "stores come back reset")
	assert.Equal(t, 100, again.Capacity(), "storage survives reuse")
	assert.Equal(t, 1, p.Tracked())
}

func TestStorePool_ReleaseTwicePanics(t *testing.T) {
	p := NewStorePool()
	s := p.Get()
	p.Release(s)
	assert.Panics(t, func() { p.Release(s) })
}

func TestStorePool_ReleaseForeignStorePanics(t *testing.T) {
	p := NewStorePool()
	other := NewStorePool()
	assert.Panics(t, func() { p.Release(other.Get()) })
	assert.Panics(t, func() { p.Release(NewVisibleLightStore()) })
}

func TestStorePool_CleanupDisposesCheckedOutStores(t *testing.T) {
	p := NewStorePool()
	out := p.Get()
	out.Resize(64)
	idle := p.Get()
	idle.Resize(32)
	p.Release(idle)
	require.Equal(t, 2, p.Tracked())

	p.Cleanup()
	assert.Equal(t, 0, p.Tracked())
	assert.Equal(t, 0, p.Free())
	assert.Equal(t, 0, out.Capacity())
	assert.Equal(t, 0, idle.Capacity())

	// A store still held after a purge registers again on reset.
	out.Reset()
	assert.Equal(t, 1, p.Tracked())
	p.Release(out)
	assert.Equal(t, 1, p.Free())
}

func TestStorePool_WithStoreReleasesOnPanic(t *testing.T) {
	p := NewStorePool()
	assert.Panics(t, func() {
		p.WithStore(func(s *VisibleLightStore) {
			s.Resize(1)
			panic("consumer failed")
		})
	})
	assert.Equal(t, 1, p.Free())

	var got *VisibleLightStore
	p.WithStore(func(s *VisibleLightStore) { got = s })
	assert.Equal(t, 1, p.Free())
	assert.Equal(t, ArrayCapacity, got.Capacity())
}

func TestStorePool_ConcurrentGetRelease(t *testing.T) {
	p := NewStorePool()
	const goroutines = 8
	const rounds = 200

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rounds {
				p.WithStore(func(s *VisibleLightStore) {
					s.Resize(ArrayCapacity + g + i%4)
					s.size = g
				})
				_ = p.Free()
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, p.Tracked(), goroutines)
	assert.Equal(t, p.Tracked(), p.Free(), "every store came back")

	p.Cleanup()
	assert.Equal(t, 0, p.Tracked())
	assert.Equal(t, 0, p.Free())
}
