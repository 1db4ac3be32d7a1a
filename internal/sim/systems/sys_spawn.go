package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/config"
	"masterhand/internal/logger"
	"masterhand/internal/physics"
	"masterhand/internal/sim/components"
)

// SpawnSystem creates one dynamic body per tick whose packet carries the
// snap flag. No debouncing: consecutive snap frames each spawn. The body
// appears above the scene with a time-oscillated horizontal offset, a purely
// cosmetic scatter.
type SpawnSystem struct {
	cfg  config.SpawnConfig
	phys *physics.World
	log  logger.Logger
}

func NewSpawnSystem(cfg config.SpawnConfig, phys *physics.World, log logger.Logger) *SpawnSystem {
	return &SpawnSystem{cfg: cfg, phys: phys, log: log}
}

func (s *SpawnSystem) Initialize(_ *ecs.World) {}

func (s *SpawnSystem) Update(w *ecs.World) {
	in := ecs.GetResource[components.FrameInput](w)
	if !in.Fresh || !in.Packet.Snap {
		return
	}
	clock := ecs.GetResource[components.Clock](w)

	x := float32(math.Sin(clock.Now*float64(s.cfg.Frequency))) * s.cfg.Amplitude
	pos := mgl32.Vec3{x, s.cfg.Height, 0}
	h := s.phys.SpawnDynamicBody(pos, s.cfg.BoxSize, s.cfg.Density)

	s.log.Debug("spawned dynamic body",
		logger.String("handle", h.String()),
		logger.Float32("x", x),
		logger.Int("bodies", s.phys.BodyCount()),
	)
}

func (s *SpawnSystem) Finalize(_ *ecs.World) {}
