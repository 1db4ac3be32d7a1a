package systems

import (
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// PacketSource yields the latest decodable packet queued since the previous
// poll. It must never block.
type PacketSource interface {
	Poll() (wire.Packet, bool)
}

// IngestSystem runs first on every tick: it drains the datagram source and
// publishes the freshest packet as the frame input. An empty socket is a
// normal outcome; the tick then proceeds with no-update semantics.
type IngestSystem struct {
	source PacketSource
}

func NewIngestSystem(source PacketSource) *IngestSystem {
	return &IngestSystem{source: source}
}

func (s *IngestSystem) Initialize(_ *ecs.World) {}

func (s *IngestSystem) Update(w *ecs.World) {
	in := ecs.GetResource[components.FrameInput](w)
	p, ok := s.source.Poll()
	in.Fresh = ok
	if ok {
		in.Packet = p
	} else {
		// Drop last frame's packet so stale hands can never be re-read.
		in.Packet = wire.Packet{}
	}
}

func (s *IngestSystem) Finalize(_ *ecs.World) {}
