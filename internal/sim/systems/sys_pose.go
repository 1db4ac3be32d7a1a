package systems

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
	"github.com/panjf2000/ants/v2"

	"masterhand/internal/config"
	"masterhand/internal/logger"
	"masterhand/internal/physics"
	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// handContext is the once-per-hand part of the mapping: the observation and
// its depth offset derived from apparent on-screen hand size.
type handContext struct {
	hand  *wire.Hand
	depth float32
	ok    bool
}

type pointUpdate struct {
	pt     *components.TrackedPoint
	target mgl32.Vec3
}

// PoseSystem maps normalized landmarks to world-space targets and smooths
// every tracked point toward its target with a clamped first-order filter.
// Smoothing runs on a worker pool; the WaitGroup barrier guarantees all 42
// points are final before the gesture and force stages read them.
type PoseSystem struct {
	cfg    config.MappingConfig
	phys   *physics.World
	pool   *ants.Pool
	log    logger.Logger
	filter *ecs.Filter1[components.TrackedPoint]

	// absentTarget is the policy for a hand side missing from the packet.
	// The default holds the previous pose; swapping in a decay-to-rest
	// variant touches nothing else in the pipeline.
	absentTarget func(*components.TrackedPoint) (mgl32.Vec3, bool)

	updates []pointUpdate
}

func NewPoseSystem(world *ecs.World, cfg config.MappingConfig, phys *physics.World, pool *ants.Pool, log logger.Logger) *PoseSystem {
	return &PoseSystem{
		cfg:          cfg,
		phys:         phys,
		pool:         pool,
		log:          log,
		filter:       ecs.NewFilter1[components.TrackedPoint](world),
		absentTarget: holdPose,
		updates:      make([]pointUpdate, 0, wire.SideCount*wire.LandmarkCount),
	}
}

// holdPose freezes an unobserved hand's points in place.
func holdPose(*components.TrackedPoint) (mgl32.Vec3, bool) {
	return mgl32.Vec3{}, false
}

func (s *PoseSystem) Initialize(_ *ecs.World) {
	s.filter.Register()
}

func (s *PoseSystem) Update(w *ecs.World) {
	in := ecs.GetResource[components.FrameInput](w)
	if !in.Fresh {
		return
	}
	clock := ecs.GetResource[components.Clock](w)

	var hands [wire.SideCount]handContext
	for _, side := range wire.Sides {
		hands[side] = s.handContextFor(&in.Packet, side)
	}

	// Phase 1: single-threaded collection of target positions.
	s.updates = s.updates[:0]
	query := s.filter.Query()
	for query.Next() {
		pt := query.Get()
		hc := hands[pt.Side]
		if !hc.ok {
			target, move := s.absentTarget(pt)
			if move {
				s.updates = append(s.updates, pointUpdate{pt: pt, target: target})
			}
			continue
		}
		lm, ok := hc.hand.Landmark(pt.Index)
		if !ok {
			// Missing landmark: the point holds its prior position
			// rather than teleporting to a default.
			continue
		}
		s.updates = append(s.updates, pointUpdate{pt: pt, target: s.mapToWorld(lm, hc.depth)})
	}

	// Phase 2: parallel smoothing over disjoint points, barrier before the
	// physics mirror so later stages only ever see finalized positions.
	t := clamp01(s.cfg.SmoothRate * clock.Delta)
	var wg sync.WaitGroup
	for i := range s.updates {
		u := &s.updates[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			u.pt.Pos = lerp(u.pt.Pos, u.target, t)
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool saturated or released: fall back inline, the barrier
			// semantics stay intact.
			task()
		}
	}
	wg.Wait()

	for i := range s.updates {
		s.phys.SetPointPosition(s.updates[i].pt.Point, s.updates[i].pt.Pos)
	}
}

func (s *PoseSystem) Finalize(_ *ecs.World) {}

// handContextFor resolves the observation for a side and computes its depth
// offset from the wrist to middle-MCP distance in image space. A hand whose
// anchors are missing is skipped entirely this frame.
func (s *PoseSystem) handContextFor(p *wire.Packet, side wire.Side) handContext {
	hand, ok := p.HandFor(side)
	if !ok {
		return handContext{}
	}
	wrist, okW := hand.Landmark(wire.LandmarkWrist)
	middle, okM := hand.Landmark(wire.LandmarkMiddleMCP)
	if !okW || !okM {
		s.log.Debug("hand missing depth anchors, holding pose",
			logger.String("side", side.String()))
		return handContext{}
	}
	dx := wrist.X - middle.X
	dy := wrist.Y - middle.Y
	handSize := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	return handContext{
		hand:  hand,
		depth: s.cfg.DepthBase - handSize*s.cfg.DepthScale,
		ok:    true,
	}
}

// mapToWorld converts one normalized landmark to world coordinates. The
// sensor's y axis points down, the world's up, hence the flip.
func (s *PoseSystem) mapToWorld(lm wire.Landmark, depth float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(lm.X - 0.5) * s.cfg.Scale,
		(0.5-lm.Y)*s.cfg.Scale + s.cfg.YOffset,
		depth + lm.Z*s.cfg.Scale,
	}
}
