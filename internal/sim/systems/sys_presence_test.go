package systems

import (
	"testing"

	"masterhand/internal/wire"
)

func TestPresenceStampsObservedSides(t *testing.T) {
	env := newTestEnv(t)
	sys := NewPresenceSystem()

	env.clock.Now = 10.0
	env.setFresh(wire.Packet{Hands: []wire.Hand{{Label: "Right"}}})
	sys.Update(env.world)

	if !env.presence.Visible(wire.Right, 10.0, 0.5) {
		t.Error("right hand should be visible immediately after observation")
	}
	if env.presence.Visible(wire.Left, 10.0, 0.5) {
		t.Error("left hand was never observed")
	}
}

func TestPresenceFadesAfterTimeout(t *testing.T) {
	env := newTestEnv(t)
	sys := NewPresenceSystem()

	env.clock.Now = 10.0
	env.setFresh(wire.Packet{Hands: []wire.Hand{{Label: "Left"}}})
	sys.Update(env.world)

	// Within the timeout the hand still counts as visible even though no
	// packet mentioned it since.
	if !env.presence.Visible(wire.Left, 10.4, 0.5) {
		t.Error("hand should survive a short dropout")
	}
	if env.presence.Visible(wire.Left, 10.5, 0.5) {
		t.Error("hand should fade once the timeout elapses")
	}
}

func TestPresenceRefreshedByLaterPacket(t *testing.T) {
	env := newTestEnv(t)
	sys := NewPresenceSystem()

	env.clock.Now = 10.0
	env.setFresh(wire.Packet{Hands: []wire.Hand{{Label: "Left"}}})
	sys.Update(env.world)

	env.clock.Now = 10.4
	env.setFresh(wire.Packet{Hands: []wire.Hand{{Label: "Left"}}})
	sys.Update(env.world)

	if !env.presence.Visible(wire.Left, 10.8, 0.5) {
		t.Error("re-observation should extend visibility")
	}
}

func TestPresenceIgnoresStaleFrames(t *testing.T) {
	env := newTestEnv(t)
	sys := NewPresenceSystem()

	env.clock.Now = 10.0
	env.setStale()
	sys.Update(env.world)

	if env.presence.Visible(wire.Right, 10.0, 0.5) || env.presence.Visible(wire.Left, 10.0, 0.5) {
		t.Error("stale frames must not stamp presence")
	}
}

func TestPresenceNeverSeen(t *testing.T) {
	env := newTestEnv(t)
	// Fresh state: both sides start infinitely far in the past.
	if env.presence.Visible(wire.Right, 0, 1e9) {
		t.Error("a never-seen side must not be visible, however long the timeout")
	}
}
