package render

// End-to-end renders against a real headless Chrome. Gated behind
// SNIPREEL_E2E=1 so the regular test run stays hermetic.

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func e2eGuard(t *testing.T) {
	t.Helper()
	if os.Getenv("SNIPREEL_E2E") == "" {
		t.Skip("set SNIPREEL_E2E=1 to run browser end-to-end tests")
	}
}

func TestE2E_DefaultRender(t *testing.T) {
	e2eGuard(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	out := filepath.Join(t.TempDir(), "snippet.png")
	r := New(Options{}, zap.NewNop())

	result, err := r.Render(ctx, Request{
		Code:       "console.log(1+1)",
		OutputPath: out,
	})
	require.NoError(t, err)
	require.FileExists(t, out)

	// The frame spans the full canvas width, scaled by the device scale.
	assert.GreaterOrEqual(t, result.PixelWidth, int(float64(DefaultCanvasWidth)*DefaultDeviceScale))
	assert.Positive(t, result.PixelHeight)
}

func TestE2E_UnknownThemeStillRenders(t *testing.T) {
	e2eGuard(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	core, logs := observer.New(zap.WarnLevel)
	out := filepath.Join(t.TempDir(), "snippet.png")

	r := New(Options{}, zap.New(core))
	_, err := r.Render(ctx, Request{
		Code:       "console.log(1+1)",
		Theme:      "not-a-real-theme",
		OutputPath: out,
	})
	require.NoError(t, err)
	require.FileExists(t, out)
	assert.Equal(t, 1, logs.FilterMessageSnippet("theme").Len())
}
