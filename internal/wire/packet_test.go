package wire

import (
	"encoding/json"
	"testing"
)

func TestDecodeValidPacket(t *testing.T) {
	data := []byte(`{"hands":[{"label":"Right","landmarks":[{"id":0,"x":0.5,"y":0.5,"z":0.0},{"id":9,"x":0.6,"y":0.4,"z":-0.01}],"gesture":"Fist"}],"snap":true}`)

	p, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !p.Snap {
		t.Error("expected snap to be true")
	}
	if len(p.Hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(p.Hands))
	}
	hand, ok := p.HandFor(Right)
	if !ok {
		t.Fatal("expected a Right hand")
	}
	if hand.Gesture != GestureFist {
		t.Errorf("expected gesture %q, got %q", GestureFist, hand.Gesture)
	}
	lm, ok := hand.Landmark(LandmarkMiddleMCP)
	if !ok {
		t.Fatal("expected landmark 9")
	}
	if lm.X != 0.6 {
		t.Errorf("expected landmark x 0.6, got %g", lm.X)
	}
}

func TestDecodeSnapDefaultsFalse(t *testing.T) {
	p, err := Decode([]byte(`{"hands":[]}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.Snap {
		t.Error("snap must default to false")
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	data := []byte(`{"hands":[],"snap":false,"version":3,"extra":{"a":1}}`)
	if _, err := Decode(data); err != nil {
		t.Fatalf("unknown fields must be ignored, got error: %v", err)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"truncated", `{"hands":[{"label":"Right"`},
		{"not json", `hello world`},
		{"wrong shape", `{"hands":"nope"}`},
		{"landmark id too big", `{"hands":[{"label":"Right","landmarks":[{"id":21,"x":0,"y":0,"z":0}]}]}`},
		{"landmark id negative", `{"hands":[{"label":"Left","landmarks":[{"id":-1,"x":0,"y":0,"z":0}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.data)); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestHandForFirstMatchWins(t *testing.T) {
	p := Packet{Hands: []Hand{
		{Label: "Right", Gesture: "Open"},
		{Label: "Right", Gesture: "Fist"},
	}}
	hand, ok := p.HandFor(Right)
	if !ok {
		t.Fatal("expected a Right hand")
	}
	if hand.Gesture != "Open" {
		t.Errorf("first observation must win, got gesture %q", hand.Gesture)
	}
}

func TestHandForUnknownLabel(t *testing.T) {
	p := Packet{Hands: []Hand{{Label: "Middle"}}}
	if _, ok := p.HandFor(Right); ok {
		t.Error("unknown labels must not match any side")
	}
	if _, ok := p.HandFor(Left); ok {
		t.Error("unknown labels must not match any side")
	}
}

func TestSideFromLabel(t *testing.T) {
	if s, ok := SideFromLabel("Right"); !ok || s != Right {
		t.Errorf("Right label: got %v, %v", s, ok)
	}
	if s, ok := SideFromLabel("Left"); !ok || s != Left {
		t.Errorf("Left label: got %v, %v", s, ok)
	}
	if _, ok := SideFromLabel("right"); ok {
		t.Error("labels are case-sensitive")
	}
}

func TestDecodeRoundTripFromSenderShape(t *testing.T) {
	// Mirror of what the vision process actually sends: 21 landmarks,
	// no gesture field on some hands.
	type senderLandmark struct {
		ID int     `json:"id"`
		X  float32 `json:"x"`
		Y  float32 `json:"y"`
		Z  float32 `json:"z"`
	}
	type senderHand struct {
		Label     string           `json:"label"`
		Landmarks []senderLandmark `json:"landmarks"`
	}
	lms := make([]senderLandmark, LandmarkCount)
	for i := range lms {
		lms[i] = senderLandmark{ID: i, X: 0.5, Y: 0.5}
	}
	raw, err := json.Marshal(map[string]interface{}{
		"hands": []senderHand{{Label: "Left", Landmarks: lms}},
		"snap":  false,
	})
	if err != nil {
		t.Fatal(err)
	}

	p, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	hand, ok := p.HandFor(Left)
	if !ok {
		t.Fatal("expected a Left hand")
	}
	if hand.Gesture != "" {
		t.Errorf("missing gesture must decode as empty, got %q", hand.Gesture)
	}
	if len(hand.Landmarks) != LandmarkCount {
		t.Errorf("expected %d landmarks, got %d", LandmarkCount, len(hand.Landmarks))
	}
}
