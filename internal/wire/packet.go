package wire

import (
	"encoding/json"
	"fmt"
)

// Landmark count and ids follow the MediaPipe hand model: 21 points per
// hand, id 0 = wrist, 9 = middle-finger MCP.
const (
	LandmarkCount = 21

	LandmarkWrist     = 0
	LandmarkIndexMCP  = 5
	LandmarkMiddleMCP = 9
	LandmarkPinkyMCP  = 17
)

// Gesture labels produced by the vision process, consumed verbatim.
const (
	GestureFist = "Fist"
	GestureOpen = "Open"
)

// Side identifies a hand. Values index fixed-size per-side arrays.
type Side int

const (
	Right Side = iota
	Left

	SideCount = 2
)

func (s Side) String() string {
	switch s {
	case Right:
		return "Right"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Sides lists both hand sides in iteration order.
var Sides = [SideCount]Side{Right, Left}

// SideFromLabel maps a wire label to a Side. Unknown labels are reported
// rather than guessed.
func SideFromLabel(label string) (Side, bool) {
	switch label {
	case "Right":
		return Right, true
	case "Left":
		return Left, true
	}
	return 0, false
}

// Landmark is one tracked anatomical point in normalized sensor space.
// X and Y are in [0,1] image coordinates, Z is a relative depth estimate.
type Landmark struct {
	ID int     `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
	Z  float32 `json:"z"`
}

// Hand is one observed hand in a packet.
type Hand struct {
	Label     string     `json:"label"`
	Landmarks []Landmark `json:"landmarks"`
	Gesture   string     `json:"gesture"`
}

// Landmark returns the landmark with the given id, if present.
func (h *Hand) Landmark(id int) (Landmark, bool) {
	for _, lm := range h.Landmarks {
		if lm.ID == id {
			return lm, true
		}
	}
	return Landmark{}, false
}

// Packet is one decoded datagram. It lives for a single frame only.
type Packet struct {
	Hands []Hand `json:"hands"`
	Snap  bool   `json:"snap"`
}

// HandFor returns the first observation for the given side. A malformed
// sender may repeat a side within one packet; the first match wins.
func (p *Packet) HandFor(side Side) (*Hand, bool) {
	for i := range p.Hands {
		if s, ok := SideFromLabel(p.Hands[i].Label); ok && s == side {
			return &p.Hands[i], true
		}
	}
	return nil, false
}

// Decode parses one datagram payload. Unknown JSON fields are ignored;
// a payload that does not match the expected structure, or that carries a
// landmark id outside 0..20, is rejected.
func Decode(data []byte) (Packet, error) {
	var p Packet
	if err := json.Unmarshal(data, &p); err != nil {
		return Packet{}, fmt.Errorf("decode packet: %w", err)
	}
	for i := range p.Hands {
		for _, lm := range p.Hands[i].Landmarks {
			if lm.ID < 0 || lm.ID >= LandmarkCount {
				return Packet{}, fmt.Errorf("decode packet: landmark id %d out of range", lm.ID)
			}
		}
	}
	return p, nil
}
