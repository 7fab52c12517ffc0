package lightloop

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

func TestSelectSortAlgorithm_Boundaries(t *testing.T) {
	tests := []struct {
		count int
		want  SortAlgorithm
	}{
		{0, SortInsertion},
		{1, SortInsertion},
		{32, SortInsertion},
		{33, SortMerge},
		{200, SortMerge},
		{201, SortRadix},
		{5000, SortRadix},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectSortAlgorithm(tt.count, tt.count), "count %d", tt.count)
	}

	assert.Equal(t, SortInsertion, SelectSortAlgorithm(32, 1000), "few processed lights in a large store")
	assert.Equal(t, SortRadix, SelectSortAlgorithm(33, 201), "a large store uses radix even when few lights survive")
}

func TestSortAlgorithms_Equivalent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 2, 7, 32, 33, 64, 199, 200, 201, 1000} {
		keys := make([]uint32, n)
		for i := range keys {
			switch rng.IntN(3) {
			case 0:
				keys[i] = rng.Uint32()
			case 1:
				keys[i] = rng.Uint32() & 0xff // many collisions in the high digits
			default:
				keys[i] = PackSortKey(light.Category(rng.IntN(3)), uint16(rng.IntN(1<<16)), i%MaxVisibleLights)
			}
		}
		want := slices.Clone(keys)
		slices.Sort(want)

		insertion := slices.Clone(keys)
		InsertionSort(insertion, n)

		var support []uint32
		merged := slices.Clone(keys)
		MergeSort(merged, n, &support)

		radixed := slices.Clone(keys)
		RadixSort(radixed, n, &support)

		assert.Equal(t, want, insertion, "insertion n=%d", n)
		assert.Equal(t, want, merged, "merge n=%d", n)
		assert.Equal(t, want, radixed, "radix n=%d", n)
	}
}

func TestSortAlgorithms_OnlyPrefix(t *testing.T) {
	keys := []uint32{5, 3, 1, 9, 0, 2}
	var support []uint32

	a := slices.Clone(keys)
	InsertionSort(a, 3)
	b := slices.Clone(keys)
	MergeSort(b, 3, &support)
	c := slices.Clone(keys)
	RadixSort(c, 3, &support)

	want := []uint32{1, 3, 5, 9, 0, 2}
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
	assert.Equal(t, want, c)
}

func TestMergeSort_SupportAllocatedOnceAtKeyLength(t *testing.T) {
	keys := make([]uint32, 64)
	for i := range keys {
		keys[i] = uint32(64 - i)
	}
	var support []uint32

	MergeSort(keys, 40, &support)
	require.Len(t, support, 64)
	first := &support[0]

	RadixSort(keys, 50, &support)
	assert.Same(t, first, &support[0], "the scratch buffer is reused")
	assert.True(t, slices.IsSorted(keys[:50]))
}

func TestSortKey_PackUnpack(t *testing.T) {
	key := PackSortKey(light.CategoryArea, 1234, 567)
	category, priority, index := UnpackSortKey(key)
	assert.Equal(t, light.CategoryArea, category)
	assert.Equal(t, uint16(1234), priority)
	assert.Equal(t, 567, index)

	assert.Panics(t, func() { PackSortKey(light.CategoryPunctual, 0, MaxVisibleLights) })
	assert.Panics(t, func() { PackSortKey(light.CategoryPunctual, 0, -1) })
}

func TestSortKey_Ordering(t *testing.T) {
	farDirectional := PackSortKey(light.CategoryDirectional, 0xffff, MaxVisibleLights-1)
	nearPunctual := PackSortKey(light.CategoryPunctual, 0, 0)
	assert.Less(t, farDirectional, nearPunctual, "category dominates priority and index")

	near := PackSortKey(light.CategoryPunctual, 10, 900)
	far := PackSortKey(light.CategoryPunctual, 11, 0)
	assert.Less(t, near, far, "priority dominates index")

	a := PackSortKey(light.CategoryArea, 5, 1)
	b := PackSortKey(light.CategoryArea, 5, 2)
	assert.Less(t, a, b, "equal priorities keep record order")
}

func TestQuantizeDistance(t *testing.T) {
	assert.Equal(t, uint16(0), QuantizeDistance(0, 100))
	assert.Equal(t, uint16(0), QuantizeDistance(50, 0))
	assert.Equal(t, uint16(0xffff), QuantizeDistance(100, 100))
	assert.Equal(t, uint16(0xffff), QuantizeDistance(1e6, 100))
	assert.Less(t, QuantizeDistance(10, 100), QuantizeDistance(20, 100))
}

func TestVisibleLightStore_SortLightKeysPicksBySize(t *testing.T) {
	s := NewVisibleLightStore()
	s.Resize(300)

	fill := func(size, count int) {
		s.size = size
		s.counts[CountProcessedLights].Store(int32(count))
		for i := range count {
			s.sortKeys[i] = uint32(count - i)
		}
	}

	fill(5, 5)
	assert.Equal(t, SortInsertion, s.SortLightKeys())
	assert.True(t, slices.IsSorted(s.SortKeys()))
	assert.Nil(t, s.sortSupport, "insertion sort needs no scratch")

	fill(100, 90)
	assert.Equal(t, SortMerge, s.SortLightKeys())
	assert.True(t, slices.IsSorted(s.SortKeys()))
	assert.Len(t, s.sortSupport, s.Capacity())

	fill(300, 250)
	assert.Equal(t, SortRadix, s.SortLightKeys())
	assert.True(t, slices.IsSorted(s.SortKeys()))
}
