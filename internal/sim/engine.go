// Package sim assembles the interaction engine: the ECS world, its shared
// resources, the 42 persistent tracked-point entities, and the ordered
// system chain that runs once per simulation tick.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark-tools/app"
	"github.com/mlange-42/ark/ecs"
	"github.com/panjf2000/ants/v2"

	"masterhand/internal/config"
	"masterhand/internal/logger"
	"masterhand/internal/physics"
	"masterhand/internal/render"
	"masterhand/internal/sim/components"
	"masterhand/internal/sim/systems"
	"masterhand/internal/wire"
)

// Tracked points start far below the floor so an unobserved hand is neither
// visible nor part of any skeleton line until its first packet.
var offSceneStart = mgl32.Vec3{0, -100, 0}

// Engine owns the simulation for the process lifetime.
type Engine struct {
	cfg   config.Config
	log   logger.Logger
	app   *app.App
	world *ecs.World
	phys  *physics.World
	pool  *ants.Pool

	source      systems.PacketSource
	initialized bool
}

// New builds a fully wired engine. The packet source must already be bound;
// sink may be nil for headless operation.
func New(cfg config.Config, log logger.Logger, source systems.PacketSource, sink render.Sink) (*Engine, error) {
	if sink == nil {
		sink = render.NullSink{}
	}

	// The app is stepped from our own ticker (Run/Step), so its built-in
	// rate limiter is never engaged; cfg.Sim.TPS drives the ticker instead.
	arkApp := app.New(1024)
	world := &arkApp.World

	phys := physics.NewWorld(physics.Config{
		Gravity:        cfg.Physics.Gravity,
		GroundLevel:    cfg.Physics.GroundLevel,
		Restitution:    cfg.Physics.Restitution,
		GroundFriction: cfg.Physics.GroundFriction,
	})

	pool, err := ants.NewPool(cfg.Mapping.Workers)
	if err != nil {
		return nil, fmt.Errorf("create pose worker pool: %w", err)
	}

	clock := components.Clock{Delta: cfg.Delta()}
	input := components.FrameInput{}
	presence := components.NewPresence()
	handState := components.HandState{}
	debugState := components.DebugState{}
	ecs.AddResource(world, &clock)
	ecs.AddResource(world, &input)
	ecs.AddResource(world, &presence)
	ecs.AddResource(world, &handState)
	ecs.AddResource(world, &debugState)

	createTrackedPoints(world, phys)

	// Pipeline order is the contract: decode, presence, spawn, pose,
	// gesture, force, step, draw.
	arkApp.AddSystem(systems.NewClockSystem(cfg.Delta()))
	arkApp.AddSystem(systems.NewIngestSystem(source))
	arkApp.AddSystem(systems.NewPresenceSystem())
	arkApp.AddSystem(systems.NewSpawnSystem(cfg.Spawn, phys, log))
	arkApp.AddSystem(systems.NewPoseSystem(world, cfg.Mapping, phys, pool, log))
	arkApp.AddSystem(systems.NewGestureSystem(world))
	arkApp.AddSystem(systems.NewForceFieldSystem(cfg.Forces, phys))
	arkApp.AddSystem(systems.NewPhysicsSystem(phys))
	arkApp.AddSystem(systems.NewRenderSystem(world, cfg.Presence.FadeTimeout, sink))

	return &Engine{
		cfg:    cfg,
		log:    log,
		app:    arkApp,
		world:  world,
		phys:   phys,
		pool:   pool,
		source: source,
	}, nil
}

// createTrackedPoints spawns the 42 persistent hand-point entities and
// their kinematic mirrors, once, at engine construction.
func createTrackedPoints(world *ecs.World, phys *physics.World) {
	mapper := ecs.NewMap1[components.TrackedPoint](world)
	for _, side := range wire.Sides {
		for i := 0; i < wire.LandmarkCount; i++ {
			handle := phys.CreateKinematicPoint(offSceneStart)
			mapper.NewEntity(&components.TrackedPoint{
				Side:  side,
				Index: i,
				Point: handle,
				Pos:   offSceneStart,
			})
		}
	}
}

// Physics exposes the scene world, mainly for bootstrap and tests.
func (e *Engine) Physics() *physics.World {
	return e.phys
}

// Step advances the simulation by exactly one tick. Run drives it from a
// ticker; embedders and tests may call it directly instead.
func (e *Engine) Step() {
	if !e.initialized {
		e.app.Initialize()
		e.initialized = true
	}
	e.app.Update()
}

// Run drives the tick loop until the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if !e.initialized {
		e.app.Initialize()
		e.initialized = true
	}
	defer e.finalize()

	interval := time.Second / time.Duration(e.cfg.Sim.TPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info("engine running",
		logger.Int("tps", e.cfg.Sim.TPS),
		logger.Int("tracked_points", wire.SideCount*wire.LandmarkCount),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Step()
		}
	}
}

func (e *Engine) finalize() {
	if e.initialized {
		e.app.Finalize()
	}
	e.pool.Release()
	if counter, ok := e.source.(interface{ Stats() (int64, int64) }); ok {
		received, dropped := counter.Stats()
		e.log.Info("datagram totals",
			logger.Int64("received", received),
			logger.Int64("dropped", dropped),
		)
	}
	e.log.Info("engine stopped", logger.Int("bodies", e.phys.BodyCount()))
}
