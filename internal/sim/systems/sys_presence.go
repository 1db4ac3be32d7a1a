package systems

import (
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// PresenceSystem stamps the last-seen time of every side present in the
// current packet. It only writes timestamps; consumers derive visibility
// through Presence.Visible, which masks brief sensor dropouts with the
// configured fade timeout.
type PresenceSystem struct{}

func NewPresenceSystem() *PresenceSystem {
	return &PresenceSystem{}
}

func (s *PresenceSystem) Initialize(_ *ecs.World) {}

func (s *PresenceSystem) Update(w *ecs.World) {
	in := ecs.GetResource[components.FrameInput](w)
	if !in.Fresh {
		return
	}
	clock := ecs.GetResource[components.Clock](w)
	presence := ecs.GetResource[components.Presence](w)
	for _, side := range wire.Sides {
		if _, ok := in.Packet.HandFor(side); ok {
			presence.Mark(side, clock.Now)
		}
	}
}

func (s *PresenceSystem) Finalize(_ *ecs.World) {}
