package camera

// FrameSettings are the per-view toggles the light loop reads to decide which
// lighting features are eligible this frame.
type FrameSettings struct {
	// ShadowMaps enables shadow-map rendering for shadow-casting lights.
	ShadowMaps bool
	// ScreenSpaceShadows enables screen-space (contact) shadows.
	ScreenSpaceShadows bool
	// RayTracedShadows enables ray-traced shadows. Requires ray tracing support on the device.
	RayTracedShadows bool
	// Volumetrics enables volumetric fog lighting.
	Volumetrics bool
}

// DefaultFrameSettings returns the settings used by new cameras: shadow maps and
// volumetrics on, screen-space and ray-traced shadows off.
func DefaultFrameSettings() FrameSettings {
	return FrameSettings{
		ShadowMaps:  true,
		Volumetrics: true,
	}
}
