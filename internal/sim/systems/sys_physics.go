package systems

import (
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/physics"
	"masterhand/internal/sim/components"
)

// PhysicsSystem steps the rigid-body world once per tick. It runs on every
// tick, packet or not: applied forces persist until the force field rewrites
// them on the next packet frame.
type PhysicsSystem struct {
	phys *physics.World
}

func NewPhysicsSystem(phys *physics.World) *PhysicsSystem {
	return &PhysicsSystem{phys: phys}
}

func (s *PhysicsSystem) Initialize(_ *ecs.World) {}

func (s *PhysicsSystem) Update(w *ecs.World) {
	clock := ecs.GetResource[components.Clock](w)
	s.phys.Step(clock.Delta)
}

func (s *PhysicsSystem) Finalize(_ *ecs.World) {}
