package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/gordonklaus/portaudio"
)

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []int16
		want    float32
	}{
		{name: "empty", samples: nil, want: 0},
		{name: "silence", samples: make([]int16, 64), want: 0},
		{name: "full scale", samples: []int16{math.MaxInt16, -math.MaxInt16}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rms(tt.samples)
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Fatalf("rms() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFillPadsLastBlock(t *testing.T) {
	samples := []int16{1, 2, 3, 4, 5}
	out := []int16{9, 9, 9}

	pos := fill(out, samples, 0)
	if pos != 3 || out[0] != 1 || out[2] != 3 {
		t.Fatalf("first block: pos=%d out=%v", pos, out)
	}
	pos = fill(out, samples, pos)
	if pos != 5 {
		t.Fatalf("pos = %d, want 5", pos)
	}
	if out[0] != 4 || out[1] != 5 || out[2] != 0 {
		t.Fatalf("last block = %v, want [4 5 0]", out)
	}
}

func TestPickInput(t *testing.T) {
	devices := []*portaudio.DeviceInfo{
		{Name: "Speakers", MaxOutputChannels: 2},
		{Name: "USB Mic", MaxInputChannels: 1},
	}

	d, err := pickInput(devices, "USB Mic")
	if err != nil || d.Name != "USB Mic" {
		t.Fatalf("pickInput(USB Mic) = %v, %v", d, err)
	}
	if _, err := pickInput(devices, "Speakers"); !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("output-only device accepted: %v", err)
	}
	if _, err := pickInput(devices, "Gone"); !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("missing device: %v", err)
	}
}
