package light

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithID sets a fixed identity instead of a random one.
//
// Parameters:
//   - id: the identity to assign
//
// Returns:
//   - LightBuilderOption: a function that applies the id option to a lightImpl
func WithID(id uuid.UUID) LightBuilderOption {
	return func(l *lightImpl) {
		l.id = id
	}
}

// WithName sets the display name of the light.
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = normalize3(x, y, z)
	}
}

// WithColor is an option builder that sets the color of the light.
//
// Parameters:
//   - c: the sRGB color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c colorful.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the maximum attenuation distance for
// non-directional lights.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the inner and outer cone half-angles
// for spot lights. Angles are specified in degrees and converted to cosines internally,
// which is the format required by the GPU shader.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerCone = cosDeg(innerDeg)
		l.outerCone = cosDeg(outerDeg)
	}
}

// WithAreaSize sets the size of an area light.
func WithAreaSize(width, height float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.areaSize = mgl32.Vec2{width, height}
	}
}

// WithFadeDistance sets the view distances at which the light and its volumetric
// contribution are fully faded out.
//
// Parameters:
//   - fade: distance fade for direct lighting
//   - volumetricFade: distance fade for volumetric fog
//
// Returns:
//   - LightBuilderOption: a function that applies the fade option to a lightImpl
func WithFadeDistance(fade, volumetricFade float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.fadeDistance = fade
		l.volumetricFadeDistance = volumetricFade
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithShadows replaces the light's shadow configuration.
//
// Parameters:
//   - shadows: the shadow settings to apply
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a lightImpl
func WithShadows(shadows ShadowSettings) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadows = shadows
	}
}

// WithShadowMode enables shadow casting with the given filtering mode, keeping
// the remaining shadow settings.
func WithShadowMode(mode ShadowMode) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadows.Mode = mode
	}
}

// WithBakingOutput sets the light's lightmap baking result.
func WithBakingOutput(baking BakingOutput) LightBuilderOption {
	return func(l *lightImpl) {
		l.baking = baking
	}
}
