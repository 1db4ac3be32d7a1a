package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/config"
	"masterhand/internal/physics"
	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// ForceFieldSystem turns the current hand state into one force vector per
// dynamic body and applies it with overwrite semantics. Contributions are
// keyed by the stable body handle and summed per frame starting from zero;
// a body with no active contribution gets an explicit zero so no stale force
// outlives its triggering gesture.
type ForceFieldSystem struct {
	cfg  config.ForceConfig
	phys *physics.World

	forces map[physics.Handle]mgl32.Vec3
}

func NewForceFieldSystem(cfg config.ForceConfig, phys *physics.World) *ForceFieldSystem {
	return &ForceFieldSystem{
		cfg:    cfg,
		phys:   phys,
		forces: make(map[physics.Handle]mgl32.Vec3),
	}
}

func (s *ForceFieldSystem) Initialize(_ *ecs.World) {}

func (s *ForceFieldSystem) Update(w *ecs.World) {
	// Debug markers are immediate-mode: cleared every tick, so a silent
	// tick draws nothing even though the applied forces persist.
	debug := ecs.GetResource[components.DebugState](w)
	debug.Reset()

	in := ecs.GetResource[components.FrameInput](w)
	if !in.Fresh {
		return
	}
	state := ecs.GetResource[components.HandState](w)

	bodies := s.phys.DynamicBodies()
	clear(s.forces)

	s.attract(state, bodies, debug)
	s.wind(state, bodies, debug)

	// Forces are set, not accumulated across frames: every body is written
	// every packet frame, zero when nothing acted on it.
	for _, h := range bodies {
		s.phys.ApplyExternalForce(h, s.forces[h])
	}
}

func (s *ForceFieldSystem) Finalize(_ *ecs.World) {}

// attract pulls every body toward each fisted hand's center with an
// inverse-square falloff. The squared distance is floored so a body sitting
// on the hand center cannot blow up the magnitude.
func (s *ForceFieldSystem) attract(state *components.HandState, bodies []physics.Handle, debug *components.DebugState) {
	for _, side := range wire.Sides {
		hand := state.Hands[side]
		if !hand.Tracked || hand.Gesture != wire.GestureFist || !hand.HasCenter {
			continue
		}
		debug.FistCenters = append(debug.FistCenters, hand.Center)

		for _, h := range bodies {
			pos, ok := s.phys.BodyPosition(h)
			if !ok {
				continue
			}
			dir := hand.Center.Sub(pos)
			distSq := dir.LenSqr()
			if distSq < s.cfg.MinDistanceSq {
				distSq = s.cfg.MinDistanceSq
			}
			force := normalizeOrZero(dir).Mul(s.cfg.AttractStrength / distSq)
			s.forces[h] = s.forces[h].Add(force)
		}
	}
}

// wind applies a uniform push to every body when both palms are open and
// face a similar direction. Alignment is the dot of the two unit normals.
func (s *ForceFieldSystem) wind(state *components.HandState, bodies []physics.Handle, debug *components.DebugState) {
	right := state.Hands[wire.Right]
	left := state.Hands[wire.Left]

	if !right.Tracked || !left.Tracked {
		return
	}
	if right.Gesture != wire.GestureOpen || left.Gesture != wire.GestureOpen {
		return
	}
	if !right.HasNormal || !left.HasNormal {
		return
	}
	if right.Normal.Dot(left.Normal) <= s.cfg.WindAlignment {
		return
	}

	dir := normalizeOrZero(right.Normal.Add(left.Normal))
	force := dir.Mul(s.cfg.WindStrength)
	for _, h := range bodies {
		s.forces[h] = s.forces[h].Add(force)
	}

	debug.WindActive = true
	debug.WindDir = dir
	if right.HasCenter {
		debug.WindOrigin = right.Center
	} else if left.HasCenter {
		debug.WindOrigin = left.Center
	}
}
