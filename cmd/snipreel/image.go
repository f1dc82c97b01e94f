package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"snipreel/internal/render"
)

var (
	imgLanguage   string
	imgTheme      string
	imgWidth      int
	imgPadding    int
	imgFontFamily string
	imgFontSize   int
	imgTitle      string
	imgOut        string
	imgBackground string
	imgScale      float64
)

var imageCmd = &cobra.Command{
	Use:   "image [code-file]",
	Short: "Render a code snippet as a styled standalone image",
	Long: `Render a code snippet as a styled "code window" PNG, cropped tightly
to the frame. Code is read from the given file, or from stdin when piped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := readCode(args)
		if err != nil {
			return err
		}

		r := render.New(render.Options{
			ChromeBin:        cfg.Render.ChromeBin,
			FallbackLanguage: cfg.Render.Language,
			FallbackTheme:    cfg.Render.Theme,
		}, logger)

		req := render.Request{
			Code:          code,
			Language:      imgLanguage,
			Theme:         imgTheme,
			CanvasWidth:   imgWidth,
			CanvasPadding: imgPadding,
			FontFamily:    imgFontFamily,
			FontSizePx:    imgFontSize,
			Label:         imgTitle,
			Background:    imgBackground,
			DeviceScale:   imgScale,
			OutputPath:    imgOut,
			Variant:       render.VariantStandalone,
		}
		applyRenderDefaults(&req)

		result, err := r.Render(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Printf("wrote %s (%dx%d)\n", result.ImagePath, result.PixelWidth, result.PixelHeight)
		return nil
	},
}

func init() {
	f := imageCmd.Flags()
	f.StringVarP(&imgLanguage, "language", "l", "", "syntax language (default from config)")
	f.StringVarP(&imgTheme, "theme", "t", "", "highlight theme (default from config)")
	f.IntVar(&imgWidth, "width", 0, "canvas width in CSS pixels")
	f.IntVar(&imgPadding, "padding", 0, "canvas padding in CSS pixels")
	f.StringVar(&imgFontFamily, "font", "", "code font family")
	f.IntVar(&imgFontSize, "font-size", 0, "code font size in pixels")
	f.StringVar(&imgTitle, "title", "", "chrome bar title label")
	f.StringVarP(&imgOut, "out", "o", "snippet.png", "output image path")
	f.StringVar(&imgBackground, "background", "", "canvas background CSS")
	f.Float64Var(&imgScale, "scale", 0, "device scale factor")
}

// applyRenderDefaults fills unset request fields from the loaded config.
func applyRenderDefaults(req *render.Request) {
	if req.Language == "" {
		req.Language = cfg.Render.Language
	}
	if req.Theme == "" {
		req.Theme = cfg.Render.Theme
	}
	if req.CanvasWidth == 0 {
		req.CanvasWidth = cfg.Render.CanvasWidth
	}
	if req.CanvasPadding == 0 && req.Variant == render.VariantStandalone {
		req.CanvasPadding = cfg.Render.CanvasPadding
	}
	if req.FontFamily == "" {
		req.FontFamily = cfg.Render.FontFamily
	}
	if req.FontSizePx == 0 {
		req.FontSizePx = cfg.Render.FontSizePx
	}
	if req.Background == "" {
		req.Background = cfg.Render.Background
	}
	if req.DeviceScale == 0 {
		req.DeviceScale = cfg.Render.DeviceScale
	}
}

// readCode pulls the snippet from a file argument or, failing that, from a
// piped stdin. Having neither is the input failure case: nothing may be
// created on disk.
func readCode(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("%w: %v", render.ErrNoInput, err)
		}
		return string(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: read stdin: %v", render.ErrNoInput, err)
		}
		if len(data) > 0 {
			return string(data), nil
		}
	}
	return "", render.ErrNoInput
}
