// Package browser provides a scoped headless-Chrome rendering surface on top
// of rod. A Session covers exactly one document: open, load, measure, capture,
// close. Nothing is shared between sessions.
package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/ysmood/gson"
	"go.uber.org/zap"
)

// Opts sizes the rendering viewport. Width and Height are CSS pixels; Scale is
// the device scale factor applied on top (output pixels = CSS px × Scale).
type Opts struct {
	Width  int
	Height int
	Scale  float64
	Bin    string // Chrome binary; empty lets the launcher find one
}

// Rect is an on-surface bounding rectangle in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Snap rounds the origin down and the extent up to whole pixels, so the
// clipped capture never shaves off a sub-pixel edge of the frame.
func (r Rect) Snap() Rect {
	x := math.Floor(r.X)
	y := math.Floor(r.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Ceil(r.X + r.Width - x),
		Height: math.Ceil(r.Y + r.Height - y),
	}
}

// Session is a single-use rendering surface backed by one Chrome page.
type Session struct {
	id       string
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

const navigationTimeout = 30 * time.Second

// Open launches a headless Chrome, connects, and prepares a blank page with
// the requested viewport and device scale. The caller must Close the session
// on every path.
func Open(ctx context.Context, opts Opts, logger *zap.Logger) (*Session, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	l := launcher.New().Headless(true)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: opts.Scale,
		Mobile:            false,
	}).Call(page); err != nil {
		_ = page.Close()
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("set viewport %dx%d@%g: %w", opts.Width, opts.Height, opts.Scale, err)
	}

	s := &Session{
		id:       uuid.NewString(),
		launcher: l,
		browser:  b,
		page:     page,
		logger:   logger,
	}
	logger.Debug("rendering session opened",
		zap.String("session", s.id),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Float64("scale", opts.Scale))
	return s, nil
}

// Load replaces the page document with the given HTML and blocks until the
// load event fires, so subsequent measurements see final layout.
func (s *Session) Load(ctx context.Context, html string) error {
	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	page := s.page.Context(ctx).Timeout(navigationTimeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load event: %w", err)
	}
	return nil
}

// Measure returns the bounding rectangle of the first element matching the
// selector. The second return is false when no such element exists.
func (s *Session) Measure(ctx context.Context, selector string) (Rect, bool, error) {
	has, el, err := s.page.Context(ctx).Has(selector)
	if err != nil {
		return Rect{}, false, fmt.Errorf("query %q: %w", selector, err)
	}
	if !has {
		return Rect{}, false, nil
	}
	shape, err := el.Shape()
	if err != nil {
		return Rect{}, false, fmt.Errorf("shape of %q: %w", selector, err)
	}
	box := shape.Box()
	if box == nil {
		return Rect{}, false, nil
	}
	return Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, true, nil
}

// Capture rasterizes only the given rectangle to a PNG at path, creating
// parent directories. With opaque false the page background is made
// transparent first, so the PNG keeps its alpha channel.
func (s *Session) Capture(ctx context.Context, rect Rect, path string, opaque bool) error {
	if !opaque {
		if err := (proto.EmulationSetDefaultBackgroundColorOverride{
			Color: &proto.DOMRGBA{R: 0, G: 0, B: 0, A: gson.Num(0)},
		}).Call(s.page); err != nil {
			return fmt.Errorf("set transparent background: %w", err)
		}
	}

	data, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      rect.X,
			Y:      rect.Y,
			Width:  rect.Width,
			Height: rect.Height,
			Scale:  1,
		},
		FromSurface: true,
	})
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	s.logger.Debug("frame captured",
		zap.String("session", s.id),
		zap.String("path", path),
		zap.Float64("width", rect.Width),
		zap.Float64("height", rect.Height))
	return nil
}

// Close releases the page, the browser, and the launched Chrome process.
// Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.page != nil {
			s.closeErr = s.page.Close()
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil && s.closeErr == nil {
				s.closeErr = err
			}
		}
		if s.launcher != nil {
			s.launcher.Cleanup()
		}
		s.logger.Debug("rendering session closed", zap.String("session", s.id))
	})
	return s.closeErr
}
