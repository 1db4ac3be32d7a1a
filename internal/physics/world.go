// Package physics is the scene collaborator of the interaction pipeline:
// kinematic points mirroring the tracked hand skeleton, dynamic bodies the
// force field acts on, and a small fixed-step rigid-body integrator.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Handle identifies a point or body for its whole lifetime. It is issued
// once at creation and never recycled, so it is safe as an aggregation key.
type Handle = uuid.UUID

type kinematicPoint struct {
	pos mgl32.Vec3
}

type rigidBody struct {
	pos      mgl32.Vec3
	vel      mgl32.Vec3
	force    mgl32.Vec3
	halfSize float32
	mass     float32
}

// Config tunes integration. Zero values are valid (no gravity, ground at 0).
type Config struct {
	Gravity        float32
	GroundLevel    float32
	Restitution    float32
	GroundFriction float32
}

// World owns all kinematic points and dynamic bodies. It is not safe for
// concurrent use; the simulation touches it from a single goroutine per tick.
type World struct {
	cfg Config

	points map[Handle]*kinematicPoint

	bodies map[Handle]*rigidBody
	// Creation order, kept so per-frame iteration is deterministic.
	order []Handle
}

func NewWorld(cfg Config) *World {
	return &World{
		cfg:    cfg,
		points: make(map[Handle]*kinematicPoint),
		bodies: make(map[Handle]*rigidBody),
	}
}

// CreateKinematicPoint registers a position-driven point and returns its
// handle.
func (w *World) CreateKinematicPoint(pos mgl32.Vec3) Handle {
	h := uuid.New()
	w.points[h] = &kinematicPoint{pos: pos}
	return h
}

// SetPointPosition moves a kinematic point. Unknown handles are ignored.
func (w *World) SetPointPosition(h Handle, pos mgl32.Vec3) {
	if p, ok := w.points[h]; ok {
		p.pos = pos
	}
}

// PointPosition reports a kinematic point's position.
func (w *World) PointPosition(h Handle) (mgl32.Vec3, bool) {
	p, ok := w.points[h]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return p.pos, true
}

// SpawnDynamicBody creates a cubic dynamic body and returns its handle.
func (w *World) SpawnDynamicBody(pos mgl32.Vec3, size, density float32) Handle {
	h := uuid.New()
	w.bodies[h] = &rigidBody{
		pos:      pos,
		halfSize: size / 2,
		mass:     density * size * size * size,
	}
	w.order = append(w.order, h)
	return h
}

// ApplyExternalForce sets the force acting on a body for the next step.
// Overwrite semantics: the previous value is replaced, not accumulated.
func (w *World) ApplyExternalForce(h Handle, f mgl32.Vec3) {
	if b, ok := w.bodies[h]; ok {
		b.force = f
	}
}

// BodyForce reports the force currently set on a body.
func (w *World) BodyForce(h Handle) (mgl32.Vec3, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return b.force, true
}

// BodyVelocity reports a dynamic body's velocity.
func (w *World) BodyVelocity(h Handle) (mgl32.Vec3, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return b.vel, true
}

// BodyPosition reports a dynamic body's position.
func (w *World) BodyPosition(h Handle) (mgl32.Vec3, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return b.pos, true
}

// DynamicBodies returns all dynamic body handles in creation order.
func (w *World) DynamicBodies() []Handle {
	out := make([]Handle, len(w.order))
	copy(out, w.order)
	return out
}

// BodyCount reports the number of dynamic bodies.
func (w *World) BodyCount() int {
	return len(w.order)
}

// Step advances every dynamic body by dt seconds using semi-implicit Euler.
// Bodies rest on the ground plane with restitution and ground friction;
// kinematic points are position-driven and are not integrated.
func (w *World) Step(dt float32) {
	for _, h := range w.order {
		b := w.bodies[h]

		accel := b.force.Mul(1 / b.mass)
		accel[1] += w.cfg.Gravity
		b.vel = b.vel.Add(accel.Mul(dt))
		b.pos = b.pos.Add(b.vel.Mul(dt))

		floor := w.cfg.GroundLevel + b.halfSize
		if b.pos.Y() <= floor {
			b.pos[1] = floor
			if b.vel.Y() < 0 {
				b.vel[1] = -b.vel.Y() * w.cfg.Restitution
			}
			// Ground friction bleeds horizontal velocity while in
			// contact.
			damp := 1 - w.cfg.GroundFriction*dt
			if damp < 0 {
				damp = 0
			}
			b.vel[0] *= damp
			b.vel[2] *= damp
		}
	}
}
