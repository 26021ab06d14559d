package engine

import (
	"encoding/json"
	"reflect"
	"testing"
)

func playScripted(e *Engine, ticks int) {
	for i := 0; i < ticks; i++ {
		switch i % 45 {
		case 3:
			e.MoveLeft()
		case 7:
			e.RotateCW()
		case 11:
			e.PressShift(DirRight)
		case 19:
			e.ReleaseShift(DirRight)
		case 25:
			e.Hold()
		case 30:
			e.SoftDropStep()
		case 40:
			e.HardDrop()
		}
		e.Tick()
	}
}

func TestReplayReproducesSession(t *testing.T) {
	e := New(DefaultConfig(), 777)
	e.StartRecording()
	playScripted(e, 900)

	r := e.Replay()
	if len(r.Frames) == 0 {
		t.Fatal("no frames recorded")
	}

	replayed, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !reflect.DeepEqual(replayed.Snapshot(), e.Snapshot()) {
		t.Errorf("replayed snapshot = %+v, want %+v", replayed.Snapshot(), e.Snapshot())
	}
}

func TestReplaySurvivesJSON(t *testing.T) {
	e := New(DefaultConfig(), 31)
	e.StartRecording()
	playScripted(e, 400)

	data, err := json.Marshal(e.Replay())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var r Replay
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, err := r.Verify(); err != nil {
		t.Errorf("Verify() after JSON error = %v", err)
	}
}

func TestReplayDetectsTampering(t *testing.T) {
	e := New(DefaultConfig(), 5)
	e.StartRecording()
	playScripted(e, 300)

	r := e.Replay()
	r.Score += 1000
	if _, err := r.Verify(); err == nil {
		t.Error("Verify() accepted a tampered score")
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in      string
		want    Intent
		wantErr bool
	}{
		{"move_left", IntentMoveLeft, false},
		{"rotate_ccw", IntentRotateCCW, false},
		{"release_right", IntentReleaseRight, false},
		{"drop", IntentHardDrop, false},
		{"cw", IntentRotateCW, false},
		{"teleport", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntent(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIntent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIntent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindText(t *testing.T) {
	for _, k := range append(Kinds[:], KindNone) {
		text, _ := k.MarshalText()
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != k {
			t.Errorf("round trip of %v = %v", k, back)
		}
	}
	if _, err := ParseKind("X"); err == nil {
		t.Error("ParseKind(\"X\") succeeded")
	}
}
