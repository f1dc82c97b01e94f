// Package render produces styled "code window" raster images from source
// code. Highlighting is delegated to chroma, layout and rasterization to a
// headless Chrome surface; this package owns the sizing estimate, the document
// composition, and the crop-rectangle extraction.
package render

import (
	"context"
	"fmt"
	"html/template"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"snipreel/internal/browser"
	"snipreel/internal/highlight"
)

// Variant selects a presentation preset; both run the same pipeline.
type Variant int

const (
	// VariantStandalone renders a tight crop of the code frame with the
	// canvas background visible around rounded corners.
	VariantStandalone Variant = iota
	// VariantOverlay renders a 9:16 stage with a large heading and a
	// transparent background, for compositing over footage.
	VariantOverlay
)

// Request describes one render. Zero fields fall back to the defaults below;
// unknown Language/Theme identifiers degrade instead of failing.
type Request struct {
	Code          string
	Language      string
	Theme         string
	CanvasWidth   int
	CanvasPadding int
	FontFamily    string
	FontSizePx    int
	Label         string
	Background    string
	DeviceScale   float64
	OutputPath    string
	Variant       Variant
}

// Result reports the written image and its pixel dimensions.
type Result struct {
	ImagePath   string
	PixelWidth  int
	PixelHeight int
}

// Surface is the slice of a browser session the renderer needs. Satisfied by
// *browser.Session; faked in tests.
type Surface interface {
	Load(ctx context.Context, html string) error
	Measure(ctx context.Context, selector string) (browser.Rect, bool, error)
	Capture(ctx context.Context, rect browser.Rect, path string, opaque bool) error
	Close() error
}

// OpenSurface opens a rendering surface with the given viewport.
type OpenSurface func(ctx context.Context, opts browser.Opts) (Surface, error)

// Options configures a Renderer. The fallback identifiers are used when a
// request names an unknown language or theme.
type Options struct {
	OpenSurface      OpenSurface // nil: launch headless Chrome
	ChromeBin        string
	FallbackLanguage string
	FallbackTheme    string
}

// Renderer turns Requests into image files. Immutable after New; renders are
// fully sequential, one surface per call.
type Renderer struct {
	opts   Options
	logger *zap.Logger
}

// Request defaults.
const (
	DefaultCanvasWidth   = 1000
	DefaultCanvasPadding = 40
	DefaultFontSizePx    = 28
	DefaultFontFamily    = "'JetBrains Mono', 'Fira Code', Menlo, monospace"
	DefaultBackground    = "linear-gradient(135deg, #3a1c71 0%, #d76d77 60%, #ffaf7b 100%)"
	DefaultDeviceScale   = 2.0
	DefaultLanguage      = "javascript"
	DefaultTheme         = "dracula"
	DefaultOutputPath    = "snippet.png"
)

// New creates a Renderer. A nil OpenSurface launches headless Chrome per
// render.
func New(opts Options, logger *zap.Logger) *Renderer {
	if opts.OpenSurface == nil {
		bin := opts.ChromeBin
		opts.OpenSurface = func(ctx context.Context, bo browser.Opts) (Surface, error) {
			bo.Bin = bin
			return browser.Open(ctx, bo, logger)
		}
	}
	if opts.FallbackLanguage == "" {
		opts.FallbackLanguage = DefaultLanguage
	}
	if opts.FallbackTheme == "" {
		opts.FallbackTheme = DefaultTheme
	}
	return &Renderer{opts: opts, logger: logger}
}

// Render produces one image: highlight, estimate, compose, rasterize, measure,
// crop, capture. The surface is released on every exit path.
func (r *Renderer) Render(ctx context.Context, req Request) (Result, error) {
	req = withDefaults(req)

	if strings.TrimSpace(req.Code) == "" {
		return Result{}, ErrNoInput
	}

	// Fail on an unusable output location before any rendering work.
	outDir := filepath.Dir(req.OutputPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: %q: %v", ErrOutputDir, outDir, err)
	}

	lexer, langName := highlight.ResolveLanguage(req.Language, r.opts.FallbackLanguage, r.logger)
	style, themeName := highlight.ResolveTheme(req.Theme, r.opts.FallbackTheme, r.logger)

	markup, err := highlight.Snippet(req.Code, lexer, style)
	if err != nil {
		return Result{}, fmt.Errorf("highlight: %w", err)
	}

	estimate := estimateLayout(req.Code, req.FontSizePx, req.CanvasPadding, req.Variant)
	viewportWidth := req.CanvasWidth + 2*req.CanvasPadding
	viewportHeight := int(estimate.canvasHeightPx)

	stageMinHeight := 0
	if req.Variant == VariantOverlay {
		// Fixed 9:16 stage; the viewport must cover it plus padding.
		stageMinHeight = viewportWidth * 16 / 9
		if h := stageMinHeight + 2*req.CanvasPadding; h > viewportHeight {
			viewportHeight = h
		}
	}

	doc, err := composeDocument(documentData{
		ShowHeading:     req.Variant == VariantOverlay && req.Label != "",
		Label:           req.Label,
		Title:           chromeTitle(req.Label, langName),
		ThemeName:       themeName,
		Background:      template.CSS(req.Background),
		FontFamily:      template.CSS(req.FontFamily),
		FrameBackground: highlight.Background(style),
		CanvasWidth:     req.CanvasWidth,
		CanvasPadding:   req.CanvasPadding,
		InnerPadding:    innerPadding,
		FontSizePx:      req.FontSizePx,
		StageMinHeight:  stageMinHeight,
		Code:            template.HTML(markup),
	})
	if err != nil {
		return Result{}, err
	}

	surface, err := r.opts.OpenSurface(ctx, browser.Opts{
		Width:  viewportWidth,
		Height: viewportHeight,
		Scale:  req.DeviceScale,
	})
	if err != nil {
		return Result{}, fmt.Errorf("open rendering surface: %w", err)
	}
	defer surface.Close()

	if err := surface.Load(ctx, doc); err != nil {
		return Result{}, err
	}

	rect, found, err := surface.Measure(ctx, req.Variant.captureSelector())
	if err != nil {
		return Result{}, fmt.Errorf("measure frame: %w", err)
	}
	if !found {
		return Result{}, fmt.Errorf("%w: selector %q", ErrFrameNotFound, req.Variant.captureSelector())
	}

	opaque := req.Variant != VariantOverlay
	if err := surface.Capture(ctx, rect.Snap(), req.OutputPath, opaque); err != nil {
		return Result{}, err
	}

	width, height, err := pngDimensions(req.OutputPath)
	if err != nil {
		return Result{}, err
	}

	r.logger.Info("snippet rendered",
		zap.String("path", req.OutputPath),
		zap.String("language", langName),
		zap.String("theme", themeName),
		zap.Int("lines", estimate.lineCount),
		zap.Int("width", width),
		zap.Int("height", height))

	return Result{ImagePath: req.OutputPath, PixelWidth: width, PixelHeight: height}, nil
}

// captureSelector picks the region the variant crops to: the bare code frame
// for standalone images, the full 9:16 stage for overlay frames.
func (v Variant) captureSelector() string {
	if v == VariantOverlay {
		return "#stage"
	}
	return "#frame"
}

func chromeTitle(label, language string) string {
	if label != "" {
		return label
	}
	return language
}

func withDefaults(req Request) Request {
	if req.Language == "" {
		req.Language = DefaultLanguage
	}
	if req.Theme == "" {
		req.Theme = DefaultTheme
	}
	if req.CanvasWidth <= 0 {
		req.CanvasWidth = DefaultCanvasWidth
	}
	if req.CanvasPadding < 0 {
		req.CanvasPadding = 0
	}
	if req.CanvasPadding == 0 && req.Variant == VariantStandalone {
		req.CanvasPadding = DefaultCanvasPadding
	}
	if req.FontFamily == "" {
		req.FontFamily = DefaultFontFamily
	}
	if req.FontSizePx <= 0 {
		req.FontSizePx = DefaultFontSizePx
	}
	if req.Background == "" {
		req.Background = DefaultBackground
	}
	if req.DeviceScale <= 0 {
		req.DeviceScale = DefaultDeviceScale
	}
	if req.OutputPath == "" {
		req.OutputPath = DefaultOutputPath
	}
	return req
}

func pngDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open captured image: %w", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode captured image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
