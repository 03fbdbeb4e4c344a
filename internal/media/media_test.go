package media

import (
	"io"
	"math"
	"slices"
	"testing"
	"time"

	"skelreview/internal/logging"
)

func TestDrawMarkerFillsDiscAndClips(t *testing.T) {
	f := NewFrame(10, 10)
	DrawMarker(f, 0, 0, 2, MarkerColor)

	for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {1, 1}} {
		c, err := f.At(p[0], p[1])
		if err != nil {
			t.Fatalf("At(%d,%d): %v", p[0], p[1], err)
		}
		if c != MarkerColor {
			t.Fatalf("expected marker at (%d,%d), got %+v", p[0], p[1], c)
		}
	}
	if c, _ := f.At(2, 2); c != (Color{}) {
		t.Fatalf("corner outside radius should be untouched, got %+v", c)
	}
	if _, err := f.At(10, 0); err == nil {
		t.Fatal("expected error outside frame")
	}
}

func TestDrawLineConnectsEndpoints(t *testing.T) {
	f := NewFrame(8, 8)
	DrawLine(f, 1, 1, 6, 4, 1, BoneColor)

	for _, p := range [][2]int{{1, 1}, {6, 4}} {
		if c, _ := f.At(p[0], p[1]); c != BoneColor {
			t.Fatalf("expected line endpoint at (%d,%d)", p[0], p[1])
		}
	}
	painted := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if c, _ := f.At(x, y); c == BoneColor {
				painted++
			}
		}
	}
	if painted != 6 {
		t.Fatalf("expected 6 pixels along the line, got %d", painted)
	}
}

func TestDrawLineOffFrameDoesNotPanic(t *testing.T) {
	f := NewFrame(4, 4)
	DrawLine(f, -5, -5, 20, 20, 3, BoneColor)
	if c, _ := f.At(2, 2); c != BoneColor {
		t.Fatal("expected the visible part of the line to be painted")
	}
}

func TestDrawLineClipsFarEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{name: "far right", x0: 10, y0: 10, x1: 1_000_000_000, y1: 10, want: [][2]int{{10, 10}, {63, 10}}},
		{name: "far left", x0: 10, y0: 10, x1: math.MinInt, y1: 10, want: [][2]int{{0, 10}, {10, 10}}},
		{name: "both far", x0: math.MinInt, y0: 20, x1: math.MaxInt, y1: 20, want: [][2]int{{0, 20}, {63, 20}}},
		{name: "far below", x0: 5, y0: 5, x1: 5, y1: 1 << 40, want: [][2]int{{5, 5}, {5, 47}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFrame(64, 48)
			DrawLine(f, tc.x0, tc.y0, tc.x1, tc.y1, 2, BoneColor)
			for _, p := range tc.want {
				if c, _ := f.At(p[0], p[1]); c != BoneColor {
					t.Fatalf("expected bone pixel at (%d,%d)", p[0], p[1])
				}
			}
		})
	}
}

func TestDrawLineEntirelyOutsideFrame(t *testing.T) {
	f := NewFrame(16, 16)
	DrawLine(f, -100, -100, -50, 1_000_000, 1, BoneColor)
	for i, b := range f.Pix {
		if b != 0 {
			t.Fatalf("expected untouched frame, byte %d = %d", i, b)
		}
	}
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []string
	}{
		{"letters", []byte("xe"), []string{"x", "e"}},
		{"lone escape", []byte{0x1b}, []string{KeyEscape}},
		{"arrow swallowed", []byte("\x1b[Aq"), []string{"q"}},
		{"ss3 swallowed", []byte("\x1bOPx"), []string{"x"}},
		{"ctrl c", []byte{0x03}, []string{KeyCtrlC}},
		{"named", []byte(" \r\t"), []string{KeySpace, KeyEnter, KeyTab}},
		{"other controls ignored", []byte{0x01, 'i'}, []string{"i"}},
		{"utf8", []byte("é"), []string{"é"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeKeys(tc.in)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("DecodeKeys(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestKeyPollerDeliversKeys(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	k := newKeyPoller(r, logging.NewNop())
	defer k.Close()

	if key, ok := k.PollKey(10 * time.Millisecond); ok {
		t.Fatalf("expected no key, got %q", key)
	}
	go func() { _, _ = w.Write([]byte("x")) }()
	key, ok := k.PollKey(2 * time.Second)
	if !ok || key != "x" {
		t.Fatalf("expected key x, got %q ok=%v", key, ok)
	}
}

func TestPresenterCloseWithoutWindow(t *testing.T) {
	p := NewPresenter("", "test", 0, nil)
	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
