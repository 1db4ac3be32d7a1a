// Package render models the debug-draw output of the pipeline: skeleton
// line segments, gesture markers, and the sink they are published to. The
// engine owns no renderer; whoever consumes Frames decides how to draw them.
package render

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"masterhand/internal/wire"
)

// Connections is the fixed skeleton topology: 21 joint pairs per hand,
// wrist to finger tips plus the knuckle arc.
var Connections = [21][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	{9, 10}, {10, 11}, {11, 12},
	{13, 14}, {14, 15}, {15, 16},
	{0, 17}, {17, 18}, {18, 19}, {19, 20},
	{5, 9}, {9, 13}, {13, 17},
}

// Color is an RGBA color with components in [0,1].
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// Per-side skeleton colors: cyan for the right hand, magenta for the left.
var SideColors = [wire.SideCount]Color{
	{R: 0, G: 1, B: 1, A: 1},
	{R: 1, G: 0, B: 1, A: 1},
}

// FadedAlpha is the alpha applied to a hand that has not been seen within
// the presence fade timeout.
const FadedAlpha = 0.1

// WithAlpha returns the color with a replaced alpha component.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Line is one debug line segment in world space.
type Line struct {
	From  mgl32.Vec3 `json:"from"`
	To    mgl32.Vec3 `json:"to"`
	Color Color      `json:"color"`
}

// MarkerKind discriminates debug markers.
type MarkerKind string

const (
	MarkerSphere MarkerKind = "sphere"
	MarkerArrow  MarkerKind = "arrow"
)

// Marker is a gesture indicator: a sphere at a fist center or an arrow along
// the wind direction.
type Marker struct {
	Kind  MarkerKind `json:"kind"`
	At    mgl32.Vec3 `json:"at"`
	Dir   mgl32.Vec3 `json:"dir,omitempty"`
	Size  float32    `json:"size"`
	Color Color      `json:"color"`
}

// Frame is one tick's worth of debug geometry.
type Frame struct {
	Tick    int64    `json:"tick"`
	Lines   []Line   `json:"lines"`
	Markers []Marker `json:"markers"`
}

// Sink consumes debug frames. Publish is called once per tick from the
// simulation goroutine and must not block it for long.
type Sink interface {
	Publish(Frame)
}

// NullSink discards frames.
type NullSink struct{}

func (NullSink) Publish(Frame) {}

// StreamSink writes each frame as one JSON line. Safe for a concurrent
// reader on the other end of the writer.
type StreamSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{enc: json.NewEncoder(w)}
}

func (s *StreamSink) Publish(f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Encode errors are deliberately dropped: a broken debug consumer must
	// never stall the frame loop.
	_ = s.enc.Encode(f)
}
