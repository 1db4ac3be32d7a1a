package systems

import (
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/sim/components"
)

// ClockSystem advances simulated time by a fixed step per tick. Running
// fixed-step keeps every downstream stage deterministic for a given packet
// sequence; the smoothing clamp still guards against large configured steps.
type ClockSystem struct {
	delta float32
}

func NewClockSystem(delta float32) *ClockSystem {
	return &ClockSystem{delta: delta}
}

func (s *ClockSystem) Initialize(_ *ecs.World) {}

func (s *ClockSystem) Update(w *ecs.World) {
	clock := ecs.GetResource[components.Clock](w)
	clock.Now += float64(s.delta)
	clock.Delta = s.delta
}

func (s *ClockSystem) Finalize(_ *ecs.World) {}
