package indicator

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{999 * time.Millisecond, "0:00"},
		{9 * time.Second, "0:09"},
		{75 * time.Second, "1:15"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := formatElapsed(tt.d); got != tt.want {
				t.Fatalf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestHistoryKeepsNewestLast(t *testing.T) {
	h := newHistory(3)
	if got := h.snapshot(); len(got) != 0 {
		t.Fatalf("empty history snapshot = %v", got)
	}

	for _, l := range []float32{0.1, 0.2, 0.3, 0.4, 2} {
		h.push(l)
	}
	got := h.snapshot()
	want := []float32{0.3, 0.4, 1}
	if len(got) != len(want) {
		t.Fatalf("snapshot = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", got, want)
		}
	}

	h.reset()
	h.push(0.5)
	if got := h.snapshot(); len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("snapshot after reset = %v", got)
	}
}

func TestTopCentre(t *testing.T) {
	tests := []struct {
		name         string
		sw, sh, w, h int
		wantX, wantY int
		wantOK       bool
	}{
		{name: "full hd", sw: 1920, sh: 1080, w: 240, h: 72, wantX: 840, wantY: topMargin, wantOK: true},
		{name: "unknown screen", sw: 0, sh: 0, w: 240, h: 72},
		{name: "too narrow", sw: 200, sh: 600, w: 240, h: 72},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := topCentre(tt.sw, tt.sh, tt.w, tt.h)
			if ok != tt.wantOK || x != tt.wantX || y != tt.wantY {
				t.Fatalf("topCentre() = %d, %d, %v; want %d, %d, %v", x, y, ok, tt.wantX, tt.wantY, tt.wantOK)
			}
		})
	}
}

func TestParseGeometry(t *testing.T) {
	if w, h := parseGeometry("2560 1440\n"); w != 2560 || h != 1440 {
		t.Fatalf("parseGeometry = %d, %d", w, h)
	}
	if w, h := parseGeometry("garbage"); w != 0 || h != 0 {
		t.Fatalf("parseGeometry(garbage) = %d, %d", w, h)
	}
	if w, h := parseGeometry("a b"); w != 0 || h != 0 {
		t.Fatalf("parseGeometry(a b) = %d, %d", w, h)
	}
}
