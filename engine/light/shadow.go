package light

// ShadowMapResolution is the default width and height in texels of a single
// light's shadow map tile.
const ShadowMapResolution = 512

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// DefaultShadowNormalBiasScale is the multiplier applied to the shadow map
// texel world-size to compute the normal-offset bias. Typical values are 2.0–4.0.
const DefaultShadowNormalBiasScale float32 = 3.0

// ShadowMode selects the shadow filtering a light requests.
type ShadowMode int

const (
	ShadowModeNone ShadowMode = iota
	ShadowModeHard
	ShadowModeSoft
)

// ShadowSettings is the per-light shadow configuration.
type ShadowSettings struct {
	Mode       ShadowMode
	Resolution int
	Bias       float32
	NormalBias float32

	// ScreenSpace requests contact/screen-space shadows in addition to the shadow map.
	ScreenSpace bool
	// RayTraced requests ray-traced shadows when the view supports them.
	RayTraced bool
}

// DefaultShadowSettings returns settings for a light that casts no shadows.
func DefaultShadowSettings() ShadowSettings {
	return ShadowSettings{
		Mode:       ShadowModeNone,
		Resolution: ShadowMapResolution,
		Bias:       DefaultShadowBias,
		NormalBias: DefaultShadowNormalBiasScale,
	}
}

// Enabled reports whether any shadow mode is requested.
func (s ShadowSettings) Enabled() bool {
	return s.Mode != ShadowModeNone
}
