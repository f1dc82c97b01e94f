package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"snipreel/internal/caption"
	"snipreel/internal/puzzle"
	"snipreel/internal/render"
	"snipreel/internal/video"
)

var (
	shortOut        string
	shortBackground string
	shortLanguage   string
	shortTopic      string
	shortClip       float64
	shortSeed       int64
	shortKeepFrame  bool
)

var shortCmd = &cobra.Command{
	Use:   "short",
	Short: "Generate a full code-puzzle short: puzzle, frame, video, caption",
	Long: `Generate one short-form video asset end to end: ask Gemini for a code
puzzle, render it as a transparent 9:16 overlay frame, composite the frame
over a random segment of the background footage, and write a caption file.

Without background footage (--background-video or config) the overlay frame
itself is the final asset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		gen, err := puzzle.NewGenerator(ctx, puzzle.Config{
			APIKey:      cfg.Puzzle.APIKey,
			Model:       cfg.Puzzle.Model,
			Temperature: cfg.Puzzle.Temperature,
			Timeout:     cfg.Puzzle.Timeout(),
		}, logger)
		if err != nil {
			return err
		}

		p, err := gen.Generate(ctx, shortLanguage, shortTopic)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(shortOut, filepath.Ext(shortOut))
		framePath := base + "_frame.png"

		r := render.New(render.Options{
			ChromeBin:        cfg.Render.ChromeBin,
			FallbackLanguage: cfg.Render.Language,
			FallbackTheme:    cfg.Render.Theme,
		}, logger)

		req := render.Request{
			Code:       p.Code,
			Language:   p.Language,
			Label:      p.Title,
			OutputPath: framePath,
			Variant:    render.VariantOverlay,
		}
		applyRenderDefaults(&req)

		frame, err := r.Render(ctx, req)
		if err != nil {
			return err
		}

		background := shortBackground
		if background == "" {
			background = cfg.Video.Background
		}
		clip := shortClip
		if clip <= 0 {
			clip = cfg.Video.ClipSeconds
		}

		finalAsset := frame.ImagePath
		if background != "" {
			if err := video.Compose(ctx, video.Opts{
				FFmpeg:      cfg.Video.FFmpeg,
				FFprobe:     cfg.Video.FFprobe,
				Background:  background,
				Overlay:     frame.ImagePath,
				Output:      shortOut,
				ClipSeconds: clip,
				Width:       cfg.Video.Width,
				Height:      cfg.Video.Height,
				Seed:        shortSeed,
			}, logger); err != nil {
				return err
			}
			finalAsset = shortOut
			if !shortKeepFrame {
				_ = os.Remove(frame.ImagePath)
			}
		} else {
			logger.Warn("no background footage configured, keeping overlay frame as final asset",
				zap.String("frame", frame.ImagePath))
		}

		captionPath := base + ".txt"
		if err := caption.Write(captionPath, caption.Caption{
			Title:    p.Title,
			Body:     p.Caption,
			Answer:   p.Answer,
			Hashtags: cfg.Caption.Hashtags,
		}); err != nil {
			return err
		}

		fmt.Printf("wrote %s and %s\n", finalAsset, captionPath)
		return nil
	},
}

func init() {
	f := shortCmd.Flags()
	f.StringVarP(&shortOut, "out", "o", "short.mp4", "output video path")
	f.StringVar(&shortBackground, "background-video", "", "background footage (default from config)")
	f.StringVarP(&shortLanguage, "language", "l", "", "puzzle language hint")
	f.StringVar(&shortTopic, "topic", "", "puzzle topic hint")
	f.Float64Var(&shortClip, "clip", 0, "clip length in seconds")
	f.Int64Var(&shortSeed, "seed", 0, "random seed for the segment offset (0: time-based)")
	f.BoolVar(&shortKeepFrame, "keep-frame", false, "keep the intermediate overlay frame PNG")
}
