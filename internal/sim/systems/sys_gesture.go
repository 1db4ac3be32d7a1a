package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// GestureSystem rebuilds the per-hand state on every packet frame: the
// gesture label verbatim from the observation, the palm normal from wrist,
// index-MCP and pinky-MCP, and the hand center from the smoothed middle-MCP
// tracked point. State for a side absent from the packet stays undefined.
type GestureSystem struct {
	filter *ecs.Filter1[components.TrackedPoint]
}

func NewGestureSystem(world *ecs.World) *GestureSystem {
	return &GestureSystem{
		filter: ecs.NewFilter1[components.TrackedPoint](world),
	}
}

func (s *GestureSystem) Initialize(_ *ecs.World) {
	s.filter.Register()
}

func (s *GestureSystem) Update(w *ecs.World) {
	in := ecs.GetResource[components.FrameInput](w)
	if !in.Fresh {
		return
	}
	state := ecs.GetResource[components.HandState](w)
	state.Reset()

	var wantCenter [wire.SideCount]bool
	for _, side := range wire.Sides {
		hand, ok := in.Packet.HandFor(side)
		if !ok {
			continue
		}
		frame := &state.Hands[side]
		frame.Tracked = true
		frame.Gesture = hand.Gesture

		if n, ok := palmNormal(hand, side); ok {
			frame.Normal = n
			frame.HasNormal = true
		}
		// The center is only valid when this frame's observation actually
		// carried the middle MCP; otherwise the tracked point is stale.
		_, wantCenter[side] = hand.Landmark(wire.LandmarkMiddleMCP)
	}

	query := s.filter.Query()
	for query.Next() {
		pt := query.Get()
		if pt.Index != wire.LandmarkMiddleMCP || !wantCenter[pt.Side] {
			continue
		}
		frame := &state.Hands[pt.Side]
		frame.Center = pt.Pos
		frame.HasCenter = true
	}
}

func (s *GestureSystem) Finalize(_ *ecs.World) {}

// palmNormal builds the outward palm normal in the same y-flipped convention
// the pose mapper uses for world coordinates. The cross order is reversed
// for the left hand so both normals point out of the palm; the y component
// is negated to undo the mapper's vertical flip.
func palmNormal(hand *wire.Hand, side wire.Side) (mgl32.Vec3, bool) {
	wrist, okW := hand.Landmark(wire.LandmarkWrist)
	index, okI := hand.Landmark(wire.LandmarkIndexMCP)
	pinky, okP := hand.Landmark(wire.LandmarkPinkyMCP)
	if !okW || !okI || !okP {
		return mgl32.Vec3{}, false
	}

	toIndex := mgl32.Vec3{index.X - wrist.X, wrist.Y - index.Y, index.Z - wrist.Z}
	toPinky := mgl32.Vec3{pinky.X - wrist.X, wrist.Y - pinky.Y, pinky.Z - wrist.Z}

	var n mgl32.Vec3
	if side == wire.Right {
		n = normalizeOrZero(toIndex.Cross(toPinky))
	} else {
		n = normalizeOrZero(toPinky.Cross(toIndex))
	}
	n[1] = -n[1]
	return n, true
}
