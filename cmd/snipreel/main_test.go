package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"snipreel/internal/config"
	"snipreel/internal/render"
)

func TestReadCode_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippet.js")
	if err := os.WriteFile(path, []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, err := readCode([]string{path})
	if err != nil {
		t.Fatalf("readCode failed: %v", err)
	}
	if code != "console.log(1)" {
		t.Errorf("unexpected code: %q", code)
	}
}

func TestReadCode_MissingFile(t *testing.T) {
	_, err := readCode([]string{filepath.Join(t.TempDir(), "nope.js")})
	if !errors.Is(err, render.ErrNoInput) {
		t.Errorf("unreadable file must be an input failure, got %v", err)
	}
}

func TestReadCode_NoSource(t *testing.T) {
	// Under go test stdin is /dev/null: no file argument and an empty
	// stream means no input from any source.
	_, err := readCode(nil)
	if !errors.Is(err, render.ErrNoInput) {
		t.Errorf("expected input failure, got %v", err)
	}
}

func TestApplyRenderDefaults(t *testing.T) {
	cfg = config.DefaultConfig()
	cfg.Render.Theme = "monokai"
	cfg.Render.FontSizePx = 32

	req := render.Request{Code: "x"}
	applyRenderDefaults(&req)

	if req.Theme != "monokai" {
		t.Errorf("expected config theme, got %s", req.Theme)
	}
	if req.FontSizePx != 32 {
		t.Errorf("expected config font size, got %d", req.FontSizePx)
	}
	if req.CanvasWidth != cfg.Render.CanvasWidth {
		t.Errorf("expected config canvas width, got %d", req.CanvasWidth)
	}

	overlay := render.Request{Code: "x", Variant: render.VariantOverlay}
	applyRenderDefaults(&overlay)
	if overlay.CanvasPadding != 0 {
		t.Errorf("overlay variant must stay full-bleed, got padding %d", overlay.CanvasPadding)
	}
}

func TestApplyRenderDefaults_FlagsWin(t *testing.T) {
	cfg = config.DefaultConfig()

	req := render.Request{Code: "x", Theme: "nord", CanvasWidth: 800}
	applyRenderDefaults(&req)

	if req.Theme != "nord" {
		t.Errorf("explicit theme must win, got %s", req.Theme)
	}
	if req.CanvasWidth != 800 {
		t.Errorf("explicit width must win, got %d", req.CanvasWidth)
	}
}
