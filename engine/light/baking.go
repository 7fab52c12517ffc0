package light

// BakeType describes how much of a light's contribution is precomputed.
type BakeType int

const (
	BakeTypeRealtime BakeType = iota
	BakeTypeMixed
	BakeTypeBaked
)

// MixedLightingMode selects what a mixed light bakes.
type MixedLightingMode int

const (
	MixedLightingIndirectOnly MixedLightingMode = iota
	MixedLightingShadowmask
	MixedLightingSubtractive
)

// BakingOutput is the result of the last lightmap bake for a light.
type BakingOutput struct {
	IsBaked   bool
	BakeType  BakeType
	MixedMode MixedLightingMode
	// OcclusionMaskChannel is the shadowmask channel assigned to the light, or -1.
	OcclusionMaskChannel int
}

// RealtimeBakingOutput is the baking output of a light that was never baked.
var RealtimeBakingOutput = BakingOutput{OcclusionMaskChannel: -1}

// UsesShadowMask reports whether the light's static shadows come from a baked shadowmask channel.
func (b BakingOutput) UsesShadowMask() bool {
	return b.IsBaked &&
		b.BakeType == BakeTypeMixed &&
		b.MixedMode == MixedLightingShadowmask &&
		b.OcclusionMaskChannel != -1
}
