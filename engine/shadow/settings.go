package shadow

import "github.com/cogentcore/webgpu/wgpu"

// Defaults for Settings and InitParameters.
const (
	DefaultMaxShadowDistance float32 = 150
	DefaultCascadeCount              = 4
	DefaultAtlasResolution           = 4096
	DefaultMaxShadowRequests         = 128
)

// Settings are the per-view shadow settings (normally driven by a volume stack).
type Settings struct {
	// MaxShadowDistance is the view distance beyond which punctual and area
	// lights do not render shadow maps.
	MaxShadowDistance float32
	// CascadeCount is the number of directional shadow cascades (1–4).
	CascadeCount int
}

// DefaultSettings returns the default per-view shadow settings.
func DefaultSettings() Settings {
	return Settings{
		MaxShadowDistance: DefaultMaxShadowDistance,
		CascadeCount:      DefaultCascadeCount,
	}
}

// InitParameters are fixed for the lifetime of a shadow manager.
type InitParameters struct {
	AtlasResolution   int
	MaxShadowRequests int
	Format            wgpu.TextureFormat
}

// DefaultInitParameters returns a 4096² depth atlas with a 128 request budget.
func DefaultInitParameters() InitParameters {
	return InitParameters{
		AtlasResolution:   DefaultAtlasResolution,
		MaxShadowRequests: DefaultMaxShadowRequests,
		Format:            wgpu.TextureFormatDepth32Float,
	}
}
