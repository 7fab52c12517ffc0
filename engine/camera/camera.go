package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount is an atomic counter used to generate unique default camera names.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	name string

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	frameSettings FrameSettings
}

// Camera defines the view a frame is rendered from.
// The camera holds perspective settings and a look-at transform, and recomputes
// its view/projection matrices whenever one of them changes. The light loop
// reads it as read-only context while classifying lights.
type Camera interface {
	// Name returns the camera's name, used in logs and profiler scopes.
	Name() string

	// Position returns the world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Forward returns the normalized view direction.
	Forward() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// FrameSettings returns the feature toggles for this view.
	//
	// Returns:
	//   - FrameSettings: a copy of the current settings
	FrameSettings() FrameSettings

	// LookAt moves the camera to eye and points it at target.
	//
	// Parameters:
	//   - eye: new world-space position
	//   - target: world-space point to look at
	LookAt(eye, target mgl32.Vec3)

	// SetFov sets the field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes matrices.
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	SetFar(far float32)

	// SetFrameSettings replaces the view's feature toggles.
	SetFrameSettings(fs FrameSettings)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (0, 0, 5) looking at the origin with a 45° field
// of view, then applies the given options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:            &sync.Mutex{},
		position:      mgl32.Vec3{0, 0, 5},
		up:            mgl32.Vec3{0, 1, 0},
		fov:           45.0 * (math.Pi / 180.0),
		aspect:        1.0,
		near:          0.1,
		far:           100.0,
		frameSettings: DefaultFrameSettings(),
	}
	for _, option := range options {
		option(c)
	}
	if c.name == "" {
		c.name = "camera_" + strconv.FormatUint(cameraCount.Load(), 10)
	}
	cameraCount.Add(1)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Name() string {
	return c.name
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.target.Sub(c.position)
	if d.LenSqr() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) FrameSettings() FrameSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameSettings
}

func (c *cameraImpl) LookAt(eye, target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = eye
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetFrameSettings(fs FrameSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameSettings = fs
}

// updateMatrices recomputes the view, projection and view-projection matrices.
// Callers must hold c.mu (or own c exclusively during construction).
func (c *cameraImpl) updateMatrices() {
	up := c.up
	forward := c.target.Sub(c.position)
	if forward.LenSqr() > 0 && absF32(forward.Normalize().Dot(up)) > 0.999 {
		// Looking straight along the up axis; pick a stable alternative.
		up = mgl32.Vec3{0, 0, 1}
	}
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, up)
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
