// Package video composites a rendered overlay frame onto a random segment of
// a background video using ffmpeg/ffprobe.
package video

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Opts describes one composite job.
type Opts struct {
	FFmpeg  string // binary name or path; default "ffmpeg"
	FFprobe string // default "ffprobe"

	Background  string  // background footage
	Overlay     string  // transparent PNG from the overlay render
	Output      string  // output mp4
	ClipSeconds float64 // segment length; default 12
	Width       int     // output frame; default 1080
	Height      int     // default 1920
	Seed        int64   // 0: time-based
	Timeout     time.Duration
}

func (o Opts) withDefaults() Opts {
	if o.FFmpeg == "" {
		o.FFmpeg = "ffmpeg"
	}
	if o.FFprobe == "" {
		o.FFprobe = "ffprobe"
	}
	if o.ClipSeconds <= 0 {
		o.ClipSeconds = 12
	}
	if o.Width <= 0 {
		o.Width = 1080
	}
	if o.Height <= 0 {
		o.Height = 1920
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Minute
	}
	return o
}

// Compose probes the background duration, picks a random start offset that
// keeps the segment inside it, and renders the overlay on a 9:16 crop.
func Compose(ctx context.Context, opts Opts, logger *zap.Logger) error {
	opts = opts.withDefaults()

	duration, err := ProbeDuration(ctx, opts.FFprobe, opts.Background)
	if err != nil {
		return fmt.Errorf("probe background: %w", err)
	}

	start := pickStart(duration, opts.ClipSeconds, opts.Seed)
	logger.Info("compositing overlay",
		zap.String("background", opts.Background),
		zap.Float64("duration", duration),
		zap.Float64("start", start),
		zap.Float64("clip", opts.ClipSeconds))

	if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := buildComposeArgs(opts, start)
	return runFFmpeg(ctx, opts.FFmpeg, args, opts.Timeout, logger)
}

// pickStart returns a uniform random offset in [0, duration-clip]; clamps to 0
// when the background is shorter than the clip.
func pickStart(duration, clip float64, seed int64) float64 {
	slack := duration - clip
	if slack <= 0 {
		return 0
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)).Float64() * slack
}

// buildComposeArgs assembles the ffmpeg invocation: seek into the background,
// scale/crop it to the target frame, center the overlay, drop audio.
func buildComposeArgs(opts Opts, start float64) []string {
	filter := fmt.Sprintf(
		"[0:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d[bg];"+
			"[bg][1:v]overlay=(W-w)/2:(H-h)/2[out]",
		opts.Width, opts.Height, opts.Width, opts.Height)

	return []string{
		"-y",
		"-ss", fmtSec(start),
		"-i", opts.Background,
		"-i", opts.Overlay,
		"-t", fmtSec(opts.ClipSeconds),
		"-filter_complex", filter,
		"-map", "[out]",
		"-an",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "21",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		opts.Output,
	}
}

// ProbeDuration reads a media file's duration in seconds via ffprobe.
func ProbeDuration(ctx context.Context, ffprobe, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	s := strings.TrimSpace(string(out))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if sec < 0 {
		return 0, fmt.Errorf("negative duration for %q", path)
	}
	return sec, nil
}

func runFFmpeg(ctx context.Context, bin string, args []string, timeout time.Duration, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug("running ffmpeg", zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("ffmpeg timed out after %v", timeout)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(stderr.String(), 400))
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

func fmtSec(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
