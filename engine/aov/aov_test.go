package aov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

func TestRequest_LightFilter(t *testing.T) {
	a := light.NewLight(light.LightTypePoint)
	b := light.NewLight(light.LightTypePoint)

	r := NewRequest("only_a", WithLightFilter(a, nil))
	assert.Equal(t, "only_a", r.Name())
	assert.True(t, r.HasLightFilter())
	assert.True(t, r.IsLightEnabled(a))
	assert.False(t, r.IsLightEnabled(b))
	assert.False(t, r.IsLightEnabled(nil))

	r.SetLightFilter(b)
	assert.False(t, r.IsLightEnabled(a))
	assert.True(t, r.IsLightEnabled(b))

	r.ClearLightFilter()
	assert.False(t, r.HasLightFilter())
	assert.True(t, r.IsLightEnabled(a))
}

func TestRequest_EmptyFilterExcludesEverything(t *testing.T) {
	r := NewRequest("none")
	r.SetLightFilter()
	assert.True(t, r.HasLightFilter())
	assert.False(t, r.IsLightEnabled(light.NewLight(light.LightTypeDirectional)))
}

func TestDefault(t *testing.T) {
	r := Default()
	assert.False(t, r.HasLightFilter())
	assert.True(t, r.IsLightEnabled(light.NewLight(light.LightTypeSpot)))
}
