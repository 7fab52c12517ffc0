package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_Scopes(t *testing.T) {
	p := NewProfiler()
	p.SetUpdateInterval(time.Hour)

	for range 3 {
		end := p.Scope("SortVisibleLights")
		time.Sleep(time.Millisecond)
		end()
	}
	calls, total := p.ScopeStats("SortVisibleLights")
	assert.Equal(t, 3, calls)
	assert.GreaterOrEqual(t, total, 3*time.Millisecond)

	calls, total = p.ScopeStats("missing")
	assert.Zero(t, calls)
	assert.Zero(t, total)

	assert.False(t, p.Tick(), "interval not elapsed")
}

func TestProfiler_TickReportsAndClears(t *testing.T) {
	p := NewProfiler()
	p.SetUpdateInterval(0)
	p.Scope("ProcessShadows")()

	assert.True(t, p.Tick())
	calls, _ := p.ScopeStats("ProcessShadows")
	assert.Zero(t, calls, "scopes reset after a report")
}

func TestProfiler_NilIsNoop(t *testing.T) {
	var p *Profiler
	assert.NotPanics(t, func() {
		p.SetUpdateInterval(time.Second)
		p.Scope("x")()
		assert.False(t, p.Tick())
		calls, _ := p.ScopeStats("x")
		assert.Zero(t, calls)
	})
}
