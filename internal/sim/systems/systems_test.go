package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/config"
	"masterhand/internal/physics"
	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// testEnv is a bare world with the pipeline resources, without the ark-tools
// app wrapper, so single systems can be exercised in isolation.
type testEnv struct {
	world    *ecs.World
	phys     *physics.World
	clock    *components.Clock
	input    *components.FrameInput
	presence *components.Presence
	state    *components.HandState
	debug    *components.DebugState
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	world := ecs.NewWorld()

	env := &testEnv{
		world: &world,
		phys: physics.NewWorld(physics.Config{
			Gravity:        -9.81,
			GroundLevel:    -5,
			Restitution:    0.1,
			GroundFriction: 1,
		}),
		clock:    &components.Clock{Delta: 1.0 / 60.0},
		input:    &components.FrameInput{},
		state:    &components.HandState{},
		debug:    &components.DebugState{},
	}
	p := components.NewPresence()
	env.presence = &p

	ecs.AddResource(env.world, env.clock)
	ecs.AddResource(env.world, env.input)
	ecs.AddResource(env.world, env.presence)
	ecs.AddResource(env.world, env.state)
	ecs.AddResource(env.world, env.debug)
	return env
}

// addTrackedPoints mirrors the engine bootstrap: 21 points per side, parked
// far below the scene.
func (e *testEnv) addTrackedPoints() {
	start := mgl32.Vec3{0, -100, 0}
	mapper := ecs.NewMap1[components.TrackedPoint](e.world)
	for _, side := range wire.Sides {
		for i := 0; i < wire.LandmarkCount; i++ {
			handle := e.phys.CreateKinematicPoint(start)
			mapper.NewEntity(&components.TrackedPoint{
				Side:  side,
				Index: i,
				Point: handle,
				Pos:   start,
			})
		}
	}
}

// setFresh publishes a packet as this tick's frame input.
func (e *testEnv) setFresh(p wire.Packet) {
	e.input.Packet = p
	e.input.Fresh = true
}

func (e *testEnv) setStale() {
	e.input.Packet = wire.Packet{}
	e.input.Fresh = false
}

// trackedPoint finds one of the 42 point components by side and index.
func (e *testEnv) trackedPoint(t *testing.T, side wire.Side, index int) *components.TrackedPoint {
	t.Helper()
	filter := ecs.NewFilter1[components.TrackedPoint](e.world)
	query := filter.Query()
	for query.Next() {
		pt := query.Get()
		if pt.Side == side && pt.Index == index {
			query.Close()
			return pt
		}
	}
	t.Fatalf("no tracked point for side=%v index=%d", side, index)
	return nil
}

// fullHand builds a hand with all 21 landmarks at the given base position,
// finger landmarks spread slightly so depth and normal anchors are distinct.
func fullHand(label, gesture string, baseX, baseY float32) wire.Hand {
	h := wire.Hand{Label: label, Gesture: gesture}
	for i := 0; i < wire.LandmarkCount; i++ {
		h.Landmarks = append(h.Landmarks, wire.Landmark{
			ID: i,
			X:  baseX + float32(i%5)*0.02,
			Y:  baseY - float32(i/5)*0.03,
			Z:  0,
		})
	}
	return h
}

func defaultForceConfig() config.ForceConfig {
	return config.ForceConfig{
		AttractStrength: 50000,
		MinDistanceSq:   1,
		WindStrength:    1500,
		WindAlignment:   0.5,
	}
}

func defaultMappingConfig() config.MappingConfig {
	return config.MappingConfig{
		Scale:      20,
		YOffset:    3,
		DepthBase:  20,
		DepthScale: 80,
		SmoothRate: 40,
		Workers:    2,
	}
}

func vecNear(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() <= tol
}

func floatNear(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}
