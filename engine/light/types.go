package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	LightTypeSpot

	// LightTypeRectangle is a one-sided rectangular area light.
	LightTypeRectangle

	// LightTypeTube is a line-segment area light.
	LightTypeTube

	// LightTypeDisc is a one-sided disc area light.
	LightTypeDisc
)

// String returns a readable name for the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	case LightTypeRectangle:
		return "rectangle"
	case LightTypeTube:
		return "tube"
	case LightTypeDisc:
		return "disc"
	}
	return "unknown"
}

// Category returns the coarse grouping the light loop sorts and counts by.
func (t LightType) Category() Category {
	switch t {
	case LightTypeDirectional:
		return CategoryDirectional
	case LightTypePoint, LightTypeSpot:
		return CategoryPunctual
	default:
		return CategoryArea
	}
}

// GPUType returns the shader-facing light type for t.
func (t LightType) GPUType() GPULightType {
	switch t {
	case LightTypeDirectional:
		return GPULightTypeDirectional
	case LightTypePoint:
		return GPULightTypePoint
	case LightTypeSpot:
		return GPULightTypeSpot
	case LightTypeRectangle:
		return GPULightTypeRectangle
	case LightTypeTube:
		return GPULightTypeTube
	default:
		return GPULightTypeDisc
	}
}

// VolumeType returns the bounding volume used to cluster the light.
func (t LightType) VolumeType() VolumeType {
	switch t {
	case LightTypeDirectional:
		return VolumeTypeNone
	case LightTypePoint:
		return VolumeTypeSphere
	case LightTypeSpot:
		return VolumeTypeCone
	case LightTypeTube:
		return VolumeTypeBoundingBox
	default:
		return VolumeTypeBox
	}
}

// Category groups light types by how they are shaded and shadowed.
// The numeric order is the order lights appear after sorting.
type Category uint32

const (
	CategoryDirectional Category = iota
	CategoryPunctual
	CategoryArea

	// CategoryCount is the number of categories.
	CategoryCount = 3
)

func (c Category) String() string {
	switch c {
	case CategoryDirectional:
		return "directional"
	case CategoryPunctual:
		return "punctual"
	case CategoryArea:
		return "area"
	}
	return "unknown"
}

// GPULightType is the light type value written into GPU light buffers.
type GPULightType uint32

const (
	GPULightTypeDirectional GPULightType = iota
	GPULightTypePoint
	GPULightTypeSpot
	GPULightTypeRectangle
	GPULightTypeTube
	GPULightTypeDisc
)

// VolumeType is the shape used to bound a light's influence.
type VolumeType uint32

const (
	VolumeTypeNone VolumeType = iota
	VolumeTypeCone
	VolumeTypeSphere
	VolumeTypeBox
	VolumeTypeBoundingBox
)
