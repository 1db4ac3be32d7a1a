// Package components defines the ECS components and shared resources of the
// interaction pipeline. Resources replace ambient globals: each one has a
// single owning system per tick and is read by the stages after it.
package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"masterhand/internal/physics"
	"masterhand/internal/wire"
)

// TrackedPoint is one persistent smoothed hand landmark. 42 of these exist
// for the whole process lifetime, one per (side, landmark index). Pos is
// written only by the pose system; Point mirrors it into the physics world.
type TrackedPoint struct {
	Side  wire.Side
	Index int
	Point physics.Handle
	Pos   mgl32.Vec3
}

// Clock is the simulated time resource, advanced once per tick by a fixed
// delta.
type Clock struct {
	Now   float64
	Delta float32
}

// FrameInput carries the freshest decoded packet into the current tick.
// Fresh is false on ticks where no datagram arrived; the packet contents are
// then meaningless and must not be read.
type FrameInput struct {
	Packet wire.Packet
	Fresh  bool
}

// Presence records the last simulated time each side was observed.
type Presence struct {
	LastSeen [wire.SideCount]float64
}

// NewPresence starts with both sides never seen.
func NewPresence() Presence {
	return Presence{
		LastSeen: [wire.SideCount]float64{math.Inf(-1), math.Inf(-1)},
	}
}

// Mark stamps a side as seen at the given simulated time.
func (p *Presence) Mark(side wire.Side, now float64) {
	p.LastSeen[side] = now
}

// Elapsed returns the simulated seconds since the side was last seen.
func (p *Presence) Elapsed(side wire.Side, now float64) float64 {
	return now - p.LastSeen[side]
}

// Visible reports whether the side was seen within the fade timeout.
func (p *Presence) Visible(side wire.Side, now, fadeTimeout float64) bool {
	return p.Elapsed(side, now) < fadeTimeout
}

// HandFrame is the per-side state derived from the current packet. All of it
// is undefined when Tracked is false, and HasCenter/HasNormal gate fields
// whose source landmarks were missing from the observation.
type HandFrame struct {
	Tracked   bool
	Gesture   string
	Center    mgl32.Vec3
	HasCenter bool
	Normal    mgl32.Vec3
	HasNormal bool
}

// HandState holds both hands' frame state. Rebuilt on every packet frame.
type HandState struct {
	Hands [wire.SideCount]HandFrame
}

// Reset clears both hands before re-extraction.
func (h *HandState) Reset() {
	h.Hands = [wire.SideCount]HandFrame{}
}

// DebugState collects the markers the force field wants drawn this frame.
type DebugState struct {
	FistCenters []mgl32.Vec3
	WindActive  bool
	WindOrigin  mgl32.Vec3
	WindDir     mgl32.Vec3
}

// Reset clears the per-frame markers, keeping allocations.
func (d *DebugState) Reset() {
	d.FistCenters = d.FistCenters[:0]
	d.WindActive = false
}
