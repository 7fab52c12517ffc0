// Package shadow is the shadow-map subsystem: it accepts reservation requests
// for shadow-casting lights and hands out tiles of a shared depth atlas.
package shadow

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/oxy-lightloop/common"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/camera"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/light"
	"github.com/Carmen-Shannon/oxy-lightloop/engine/visibility"
)

var (
	// ErrRequestBudget is returned once MaxShadowRequests reservations were made this frame.
	ErrRequestBudget = errors.New("shadow: request budget exhausted")
	// ErrAtlasFull is returned when the atlas has no room for the requested tiles.
	ErrAtlasFull = errors.New("shadow: atlas full")
)

// Request asks the shadow subsystem to reserve shadow maps for one light.
type Request struct {
	View         camera.Camera
	Settings     Settings
	InitParams   InitParameters
	Light        visibility.VisibleLight
	LightType    light.LightType
	LocalToWorld mgl32.Mat4
	CasterBounds common.Bounds
	// Resolution is the per-tile resolution in texels.
	Resolution int
}

// Reservation records the atlas tiles handed to one light this frame.
type Reservation struct {
	LightID   uuid.UUID
	LightType light.LightType
	View      string
	Viewports []Viewport
}

// Manager owns the shadow atlas and the reservations made against it.
// It is safe for concurrent use, though the light loop calls it sequentially.
type Manager struct {
	mu *sync.Mutex

	params       InitParameters
	atlas        *Atlas
	reservations []Reservation
	verbose      bool
}

// NewManager creates a Manager with an atlas sized from params.
//
// Parameters:
//   - params: fixed shadow parameters
//   - opts: functional options
//
// Returns:
//   - *Manager: the new manager
func NewManager(params InitParameters, opts ...ManagerBuilderOption) *Manager {
	params.AtlasResolution = common.Coalesce(params.AtlasResolution, DefaultAtlasResolution)
	params.MaxShadowRequests = common.Coalesce(params.MaxShadowRequests, DefaultMaxShadowRequests)
	m := &Manager{
		mu:     &sync.Mutex{},
		params: params,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.atlas = NewAtlas("Shadow Atlas", params.AtlasResolution, params.Format)
	return m
}

// TileCount returns how many atlas tiles a light of type t needs: one per
// cascade for directional lights, six cube faces for point lights, one otherwise.
func TileCount(t light.LightType, settings Settings) int {
	switch t {
	case light.LightTypeDirectional:
		return common.Clamp(settings.CascadeCount, 1, 4)
	case light.LightTypePoint:
		return 6
	default:
		return 1
	}
}

// ReserveShadowMap reserves the atlas tiles for one light. Either every tile
// needed by the light is reserved or none are.
//
// Parameters:
//   - req: the reservation request
//
// Returns:
//   - Reservation: the reserved tiles
//   - error: ErrRequestBudget or ErrAtlasFull
func (m *Manager) ReserveShadowMap(req Request) (Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lightID uuid.UUID
	if req.Light.Light != nil {
		lightID = req.Light.Light.ID()
	}
	if len(m.reservations) >= m.params.MaxShadowRequests {
		return Reservation{}, fmt.Errorf("light %s: %w", lightID, ErrRequestBudget)
	}

	res := common.Clamp(common.Coalesce(req.Resolution, light.ShadowMapResolution), 16, m.atlas.Resolution())
	tiles := TileCount(req.LightType, req.Settings)

	state := m.atlas.snapshot()
	viewports := make([]Viewport, 0, tiles)
	for range tiles {
		vp, ok := m.atlas.Allocate(res)
		if !ok {
			m.atlas.restore(state)
			return Reservation{}, fmt.Errorf("light %s: %d tiles of %d²: %w", lightID, tiles, res, ErrAtlasFull)
		}
		viewports = append(viewports, vp)
	}

	view := ""
	if req.View != nil {
		view = req.View.Name()
	}
	r := Reservation{
		LightID:   lightID,
		LightType: req.LightType,
		View:      view,
		Viewports: viewports,
	}
	m.reservations = append(m.reservations, r)
	if m.verbose {
		log.Printf("[Shadow] reserved %d tile(s) of %d² for %s light %s (view %q)", tiles, res, req.LightType, lightID, view)
	}
	return r, nil
}

// Reservations returns a copy of this frame's reservations, in request order.
func (m *Manager) Reservations() []Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Reservation, len(m.reservations))
	copy(out, m.reservations)
	return out
}

// Atlas returns the shadow atlas.
func (m *Manager) Atlas() *Atlas {
	return m.atlas
}

// InitParameters returns the parameters the manager was created with.
func (m *Manager) InitParameters() InitParameters {
	return m.params
}

// Reset clears every reservation and frees the atlas for a new frame.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations = m.reservations[:0]
	m.atlas.Reset()
}
