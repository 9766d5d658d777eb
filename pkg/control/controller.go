package control

import (
	"log/slog"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

const (
	// DefaultFPS is the frame rate the speeds below were tuned at.
	DefaultFPS = 80

	DefaultMoveSpeed  = 0.07 * DefaultFPS // units per second
	DefaultTurnSpeed  = 3.0 * DefaultFPS  // degrees per second
	DefaultZoomSpeed  = 0.01 * DefaultFPS // FOV scale per second
	DefaultPitchLimit = 90.0
	DefaultMinFOV     = 0.5
	DefaultMaxFOV     = 1.5

	springFrequency = 8.0
	springDamping   = 1.0 // critically damped, no overshoot
)

// axis eases a velocity toward a target with a spring.
type axis struct {
	vel    float64
	accel  float64 // spring velocity of vel
	spring harmonica.Spring
}

func (a *axis) update(target float64) float64 {
	a.vel, a.accel = a.spring.Update(a.vel, a.accel, target)
	return a.vel
}

// Controller moves a camera from held actions. Velocities ease toward the
// held direction and back to rest with harmonica springs instead of
// starting and stopping instantly.
type Controller struct {
	MoveSpeed  float64 // Units per second
	TurnSpeed  float64 // Degrees per second
	ZoomSpeed  float64 // FOV scale per second
	PitchLimit float64 // Pitch is clamped to ±PitchLimit degrees
	MinFOV     float64
	MaxFOV     float64

	move       [3]axis // camera-local x, y, z
	yaw, pitch axis
	zoom       axis

	dt float64 // spring time step
}

// NewController returns a controller with the default speeds and limits,
// stepping its springs at fps.
func NewController(fps int) *Controller {
	if fps <= 0 {
		fps = DefaultFPS
	}
	c := &Controller{
		MoveSpeed:  DefaultMoveSpeed,
		TurnSpeed:  DefaultTurnSpeed,
		ZoomSpeed:  DefaultZoomSpeed,
		PitchLimit: DefaultPitchLimit,
		MinFOV:     DefaultMinFOV,
		MaxFOV:     DefaultMaxFOV,
	}
	c.setStep(harmonica.FPS(fps))
	return c
}

func (c *Controller) setStep(dt float64) {
	c.dt = dt
	s := harmonica.NewSpring(dt, springFrequency, springDamping)
	for i := range c.move {
		c.move[i].spring = s
	}
	c.yaw.spring = s
	c.pitch.spring = s
	c.zoom.spring = s
}

// Reset brings every velocity to rest.
func (c *Controller) Reset() {
	for i := range c.move {
		c.move[i].vel, c.move[i].accel = 0, 0
	}
	for _, a := range []*axis{&c.yaw, &c.pitch, &c.zoom} {
		a.vel, a.accel = 0, 0
	}
}

// Moving reports whether any velocity is still noticeably non-zero.
func (c *Controller) Moving() bool {
	const eps = 1e-4
	for _, a := range []*axis{&c.move[0], &c.move[1], &c.move[2], &c.yaw, &c.pitch, &c.zoom} {
		if math.Abs(a.vel) > eps {
			return true
		}
	}
	return false
}

// Update advances cam by dt seconds with the actions in held, then wraps
// yaw to [0, 360), clamps pitch to ±PitchLimit and clamps FOV to
// [MinFOV, MaxFOV].
func (c *Controller) Update(cam *render.Camera, held Set, dt float64) {
	if dt <= 0 {
		return
	}
	if dt != c.dt {
		c.setStep(dt)
	}

	v := math3d.V3(
		c.move[0].update(held.axis(Right, Left)*c.MoveSpeed),
		c.move[1].update(held.axis(Up, Down)*c.MoveSpeed),
		c.move[2].update(held.axis(Forward, Back)*c.MoveSpeed),
	)
	yaw := c.yaw.update(held.axis(YawRight, YawLeft) * c.TurnSpeed)
	pitch := c.pitch.update(held.axis(PitchUp, PitchDown) * c.TurnSpeed)
	zoom := c.zoom.update(held.axis(ZoomIn, ZoomOut) * c.ZoomSpeed)

	cam.Translate(v.Scale(dt))
	cam.Rotate(yaw*dt, pitch*dt)
	cam.FOV += zoom * dt

	c.applyLimits(cam)
}

func (c *Controller) applyLimits(cam *render.Camera) {
	cam.XRot = math.Mod(cam.XRot, 360)
	if cam.XRot < 0 {
		cam.XRot += 360
	}

	if p := max(-c.PitchLimit, min(c.PitchLimit, cam.YRot)); p != cam.YRot {
		render.Logger().Debug("pitch clamped", slog.Float64("pitch", cam.YRot))
		cam.YRot = p
		c.pitch.vel, c.pitch.accel = 0, 0
	}

	if f := max(c.MinFOV, min(c.MaxFOV, cam.FOV)); f != cam.FOV {
		cam.FOV = f
		c.zoom.vel, c.zoom.accel = 0, 0
	}
}
