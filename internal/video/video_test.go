package video

import (
	"strings"
	"testing"
)

func TestPickStart_WithinBounds(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		start := pickStart(120, 12, seed)
		if start < 0 || start > 108 {
			t.Fatalf("seed %d: start %f outside [0, 108]", seed, start)
		}
	}
}

func TestPickStart_ShortBackground(t *testing.T) {
	if got := pickStart(8, 12, 1); got != 0 {
		t.Errorf("background shorter than clip must start at 0, got %f", got)
	}
	if got := pickStart(12, 12, 1); got != 0 {
		t.Errorf("exact-length background must start at 0, got %f", got)
	}
}

func TestPickStart_Deterministic(t *testing.T) {
	a := pickStart(300, 12, 42)
	b := pickStart(300, 12, 42)
	if a != b {
		t.Errorf("same seed must give same offset: %f vs %f", a, b)
	}
}

func TestBuildComposeArgs(t *testing.T) {
	opts := Opts{
		Background:  "bg.mp4",
		Overlay:     "frame.png",
		Output:      "out.mp4",
		ClipSeconds: 12,
		Width:       1080,
		Height:      1920,
	}.withDefaults()

	args := buildComposeArgs(opts, 33.5)
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "-ss 33.500 -i bg.mp4") {
		t.Errorf("expected seek before background input, got %q", joined)
	}
	if !strings.Contains(joined, "-i frame.png") {
		t.Errorf("expected overlay input, got %q", joined)
	}
	if !strings.Contains(joined, "overlay=(W-w)/2:(H-h)/2") {
		t.Errorf("expected centered overlay filter, got %q", joined)
	}
	if !strings.Contains(joined, "scale=1080:1920") || !strings.Contains(joined, "crop=1080:1920") {
		t.Errorf("expected 9:16 scale and crop, got %q", joined)
	}
	if !strings.Contains(joined, "-t 12.000") {
		t.Errorf("expected clip length limit, got %q", joined)
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("output path must be last, got %q", args[len(args)-1])
	}
}

func TestOptsWithDefaults(t *testing.T) {
	o := Opts{}.withDefaults()
	if o.FFmpeg != "ffmpeg" || o.FFprobe != "ffprobe" {
		t.Errorf("expected default binaries, got %q %q", o.FFmpeg, o.FFprobe)
	}
	if o.ClipSeconds != 12 || o.Width != 1080 || o.Height != 1920 {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestTail(t *testing.T) {
	if got := tail("short", 400); got != "short" {
		t.Errorf("short strings pass through, got %q", got)
	}
	long := strings.Repeat("x", 500)
	got := tail(long, 400)
	if len(got) != 403 || !strings.HasPrefix(got, "...") {
		t.Errorf("long strings keep the tail with a marker, got len %d", len(got))
	}
}
