package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark-tools/resource"
	"github.com/mlange-42/ark/ecs"

	"masterhand/internal/render"
	"masterhand/internal/sim/components"
	"masterhand/internal/wire"
)

// Points below this height are considered off-scene and are not drawn.
// Tracked points start far below the floor until first observed.
const offSceneY = -50.0

const (
	fistMarkerSize  = 1.0
	windArrowLength = 5.0
)

var (
	fistColor = render.Color{R: 1, G: 0, B: 0, A: 1}
	windColor = render.Color{R: 0, G: 1, B: 0, A: 1}
)

// RenderSystem assembles the per-tick debug frame: the hand skeletons with
// presence-faded colors, fist spheres, and the wind arrow. It runs on every
// tick so hands keep fading even when no packets arrive.
type RenderSystem struct {
	fadeTimeout float64
	sink        render.Sink
	filter      *ecs.Filter1[components.TrackedPoint]
}

func NewRenderSystem(world *ecs.World, fadeTimeout float64, sink render.Sink) *RenderSystem {
	return &RenderSystem{
		fadeTimeout: fadeTimeout,
		sink:        sink,
		filter:      ecs.NewFilter1[components.TrackedPoint](world),
	}
}

func (s *RenderSystem) Initialize(_ *ecs.World) {
	s.filter.Register()
}

func (s *RenderSystem) Update(w *ecs.World) {
	clock := ecs.GetResource[components.Clock](w)
	presence := ecs.GetResource[components.Presence](w)
	debug := ecs.GetResource[components.DebugState](w)

	var tickNo int64
	if tick := ecs.GetResource[resource.Tick](w); tick != nil {
		tickNo = tick.Tick
	}

	var positions [wire.SideCount][wire.LandmarkCount]mgl32.Vec3
	var onScene [wire.SideCount][wire.LandmarkCount]bool

	query := s.filter.Query()
	for query.Next() {
		pt := query.Get()
		if pt.Pos.Y() <= offSceneY {
			continue
		}
		positions[pt.Side][pt.Index] = pt.Pos
		onScene[pt.Side][pt.Index] = true
	}

	frame := render.Frame{Tick: tickNo}

	for _, side := range wire.Sides {
		color := render.SideColors[side]
		if !presence.Visible(side, clock.Now, s.fadeTimeout) {
			color = color.WithAlpha(render.FadedAlpha)
		}
		for _, conn := range render.Connections {
			if !onScene[side][conn[0]] || !onScene[side][conn[1]] {
				continue
			}
			frame.Lines = append(frame.Lines, render.Line{
				From:  positions[side][conn[0]],
				To:    positions[side][conn[1]],
				Color: color,
			})
		}
	}

	for _, center := range debug.FistCenters {
		frame.Markers = append(frame.Markers, render.Marker{
			Kind:  render.MarkerSphere,
			At:    center,
			Size:  fistMarkerSize,
			Color: fistColor,
		})
	}
	if debug.WindActive {
		frame.Markers = append(frame.Markers, render.Marker{
			Kind:  render.MarkerArrow,
			At:    debug.WindOrigin,
			Dir:   debug.WindDir,
			Size:  windArrowLength,
			Color: windColor,
		})
	}

	s.sink.Publish(frame)
}

func (s *RenderSystem) Finalize(_ *ecs.World) {}
