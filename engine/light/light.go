package light

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultFadeDistance is the distance from the viewer at which a light is fully
// faded out unless overridden.
const DefaultFadeDistance float32 = 10000

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.RWMutex

	id        uuid.UUID
	name      string
	lightType LightType

	position  mgl32.Vec3
	direction mgl32.Vec3
	color     colorful.Color
	intensity float32

	lightRange float32
	innerCone  float32 // stored as cos(angle in radians)
	outerCone  float32 // stored as cos(angle in radians)
	areaSize   mgl32.Vec2

	fadeDistance           float32
	volumetricFadeDistance float32

	enabled bool
	shadows ShadowSettings
	baking  BakingOutput
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties (cone angles
// for spot lights, area size for area lights) return their stored values even
// when not applicable. Lights are safe for concurrent reads from the light
// loop's classification workers.
type Light interface {
	// ID returns the stable identity of the light. The entity registry
	// resolves lights to persistent entities by this value.
	//
	// Returns:
	//   - uuid.UUID: the light's identity
	ID() uuid.UUID

	// Name returns the display name of the light.
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	Position() mgl32.Vec3

	// Direction returns the normalized direction of the light.
	// For directional lights this is the light direction. For spot and area
	// lights this is the emission axis. Meaningless for point lights.
	Direction() mgl32.Vec3

	// Color returns the sRGB color of the light.
	Color() colorful.Color

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Range returns the maximum attenuation distance for non-directional lights.
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	OuterCone() float32

	// AreaSize returns the width and height of an area light (length and radius for tubes).
	AreaSize() mgl32.Vec2

	// FadeDistance returns the view distance at which the light is fully faded out.
	//
	// Returns:
	//   - float32: the fade distance in world units
	FadeDistance() float32

	// VolumetricFadeDistance returns the view distance at which the light stops
	// contributing to volumetric fog.
	//
	// Returns:
	//   - float32: the volumetric fade distance in world units
	VolumetricFadeDistance() float32

	// Enabled returns whether this light is active for rendering.
	Enabled() bool

	// Shadows returns a snapshot of the light's shadow configuration.
	//
	// Returns:
	//   - ShadowSettings: the shadow settings
	Shadows() ShadowSettings

	// CastsShadows returns whether this light requests any shadow mode.
	CastsShadows() bool

	// BakingOutput returns a snapshot of the light's lightmap baking result.
	//
	// Returns:
	//   - BakingOutput: the baking output
	BakingOutput() BakingOutput

	// SetPosition sets the world-space position of the light.
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	SetDirection(x, y, z float32)

	// SetColor sets the color of the light.
	SetColor(c colorful.Color)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetRange sets the maximum attenuation distance.
	SetRange(lightRange float32)

	// SetEnabled enables or disables the light for rendering.
	SetEnabled(enabled bool)

	// SetShadows replaces the light's shadow configuration.
	//
	// Parameters:
	//   - shadows: the new shadow settings
	SetShadows(shadows ShadowSettings)

	// SetBakingOutput replaces the light's baking output, typically after a lightmap bake.
	SetBakingOutput(baking BakingOutput)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied. A random identity is assigned unless WithID is given.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:                     &sync.RWMutex{},
		id:                     uuid.New(),
		lightType:              lightType,
		direction:              mgl32.Vec3{0, -1, 0},
		color:                  colorful.Color{R: 1, G: 1, B: 1},
		intensity:              1.0,
		lightRange:             10.0,
		innerCone:              0.9063, // cos(25°)
		outerCone:              0.8192, // cos(35°)
		areaSize:               mgl32.Vec2{1, 1},
		fadeDistance:           DefaultFadeDistance,
		volumetricFadeDistance: DefaultFadeDistance,
		enabled:                true,
		shadows:                DefaultShadowSettings(),
		baking:                 RealtimeBakingOutput,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.name == "" {
		l.name = lightType.String()
	}
	return l
}

func (l *lightImpl) ID() uuid.UUID {
	return l.id
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.direction
}

func (l *lightImpl) Color() colorful.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.outerCone
}

func (l *lightImpl) AreaSize() mgl32.Vec2 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.areaSize
}

func (l *lightImpl) FadeDistance() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fadeDistance
}

func (l *lightImpl) VolumetricFadeDistance() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.volumetricFadeDistance
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) Shadows() ShadowSettings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.shadows
}

func (l *lightImpl) CastsShadows() bool {
	return l.Shadows().Enabled()
}

func (l *lightImpl) BakingOutput() BakingOutput {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baking
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(c colorful.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lightRange = lightRange
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) SetShadows(shadows ShadowSettings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shadows = shadows
}

func (l *lightImpl) SetBakingOutput(baking BakingOutput) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baking = baking
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(x, y, z float32) mgl32.Vec3 {
	v := mgl32.Vec3{x, y, z}
	length := v.Len()
	if length == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1.0 / length)
}

// cosDeg converts an angle in degrees to the cosine of that angle in radians.
func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * math.Pi / 180.0))
}
