package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"masterhand/internal/wire"
)

func TestConnectionsTopology(t *testing.T) {
	degree := make(map[int]int)
	seen := make(map[[2]int]bool)
	for _, conn := range Connections {
		for _, idx := range conn {
			if idx < 0 || idx >= wire.LandmarkCount {
				t.Errorf("connection %v references landmark out of range", conn)
			}
			degree[idx]++
		}
		if conn[0] == conn[1] {
			t.Errorf("self connection %v", conn)
		}
		key := conn
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			t.Errorf("duplicate connection %v", conn)
		}
		seen[key] = true
	}
	// Every landmark takes part in the skeleton.
	for i := 0; i < wire.LandmarkCount; i++ {
		if degree[i] == 0 {
			t.Errorf("landmark %d not connected", i)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	c := SideColors[wire.Right].WithAlpha(FadedAlpha)
	if c.A != FadedAlpha {
		t.Errorf("alpha = %g, want %g", c.A, FadedAlpha)
	}
	// The receiver is untouched.
	if SideColors[wire.Right].A != 1 {
		t.Error("WithAlpha must not mutate the original color")
	}
}

func TestStreamSinkWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf)

	sink.Publish(Frame{
		Tick:  7,
		Lines: []Line{{From: mgl32.Vec3{1, 2, 3}, To: mgl32.Vec3{4, 5, 6}, Color: SideColors[wire.Left]}},
	})
	sink.Publish(Frame{Tick: 8})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}

	var first Frame
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("frame line is not valid JSON: %v", err)
	}
	if first.Tick != 7 || len(first.Lines) != 1 {
		t.Errorf("round-tripped frame = %+v", first)
	}
	if first.Lines[0].From != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("line endpoint lost: %v", first.Lines[0].From)
	}
}

func TestNullSinkDiscards(t *testing.T) {
	// Must simply not panic, whatever the frame.
	NullSink{}.Publish(Frame{Tick: 1, Markers: []Marker{{Kind: MarkerArrow}}})
}
