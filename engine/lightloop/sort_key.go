package lightloop

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
)

// Sort key layout, most significant first:
//
//	[31:30] category   directional < punctual < area
//	[29:14] priority   quantized distance to the camera, nearest first
//	[13:0]  index      record index, the stable tie-break
const (
	sortKeyIndexBits    = 14
	sortKeyPriorityBits = 16
	sortKeyCategoryBits = 2

	sortKeyIndexMask    = 1<<sortKeyIndexBits - 1
	sortKeyPriorityMask = 1<<sortKeyPriorityBits - 1
	sortKeyCategoryMask = 1<<sortKeyCategoryBits - 1

	sortKeyPriorityShift = sortKeyIndexBits
	sortKeyCategoryShift = sortKeyIndexBits + sortKeyPriorityBits
)

// MaxVisibleLights is the number of records a single view can hold; record
// indices must fit the tie-break field of the sort key.
const MaxVisibleLights = 1 << sortKeyIndexBits

// PackSortKey builds the sort key of one processed light.
//
// Parameters:
//   - category: the light's category
//   - priority: the quantized priority, lower sorts first
//   - index: the record index, in [0, MaxVisibleLights)
//
// Returns:
//   - uint32: the packed key
func PackSortKey(category light.Category, priority uint16, index int) uint32 {
	if index < 0 || index >= MaxVisibleLights {
		panic(fmt.Sprintf("lightloop: sort key index %d out of range", index))
	}
	return uint32(category&sortKeyCategoryMask)<<sortKeyCategoryShift |
		uint32(priority)<<sortKeyPriorityShift |
		uint32(index)
}

// UnpackSortKey splits a key produced by PackSortKey back into its fields.
func UnpackSortKey(key uint32) (light.Category, uint16, int) {
	category := light.Category(key >> sortKeyCategoryShift & sortKeyCategoryMask)
	priority := uint16(key >> sortKeyPriorityShift & sortKeyPriorityMask)
	index := int(key & sortKeyIndexMask)
	return category, priority, index
}

// QuantizeDistance maps a distance in [0, maxDistance] onto the priority range.
// Distances past maxDistance saturate. A non-positive maxDistance yields 0.
func QuantizeDistance(distance, maxDistance float32) uint16 {
	if maxDistance <= 0 || distance <= 0 {
		return 0
	}
	t := distance / maxDistance
	if t >= 1 {
		return sortKeyPriorityMask
	}
	return uint16(t * sortKeyPriorityMask)
}
