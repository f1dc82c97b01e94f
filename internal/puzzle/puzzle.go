// Package puzzle asks Gemini for short code puzzles suitable for a vertical
// video frame: a handful of lines with a non-obvious output.
package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const systemPrompt = `You write tiny code puzzles for short-form programming videos.

Rules:
- The snippet must be 3 to 8 lines and fit on a phone screen.
- The output must be surprising to an intermediate developer, but fully
  deterministic and explainable in one sentence.
- No comments in the code, no imports unless strictly required.

You MUST respond with ONLY a valid JSON object - no preamble, no markdown,
no code fences - with exactly these fields:
- "language": lowercase language identifier (e.g. "javascript", "python", "go")
- "title": short hook question, e.g. "What does this print?"
- "code": the snippet, newline separated
- "answer": the exact output plus a one-sentence explanation
- "caption": one-line caption for the video description, no hashtags`

// Puzzle is one generated code puzzle.
type Puzzle struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	Code     string `json:"code"`
	Answer   string `json:"answer"`
	Caption  string `json:"caption"`
}

// Config for the Gemini-backed generator.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Generator produces puzzles via the Gemini API.
type Generator struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

// NewGenerator creates a Generator. The API key is required.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.9
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, cfg: cfg, logger: logger}, nil
}

// Generate asks for one puzzle. topic optionally steers the subject
// ("closures", "slices", ...); empty lets the model pick.
func (g *Generator) Generate(ctx context.Context, language, topic string) (Puzzle, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	prompt := buildPrompt(language, topic)
	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(g.cfg.Temperature),
			ResponseMIMEType:  "application/json",
		})
	if err != nil {
		return Puzzle{}, fmt.Errorf("generate puzzle: %w", err)
	}

	p, err := parsePuzzle(resp.Text())
	if err != nil {
		return Puzzle{}, err
	}

	g.logger.Info("puzzle generated",
		zap.String("model", g.cfg.Model),
		zap.String("language", p.Language),
		zap.Int("code_len", len(p.Code)),
		zap.Duration("elapsed", time.Since(start)))
	return p, nil
}

func buildPrompt(language, topic string) string {
	var b strings.Builder
	b.WriteString("Write one code puzzle.")
	if language != "" {
		fmt.Fprintf(&b, " Language: %s.", language)
	}
	if topic != "" {
		fmt.Fprintf(&b, " Topic: %s.", topic)
	}
	return b.String()
}

// parsePuzzle decodes the model response, tolerating stray code fences that
// slip past the JSON response mime type.
func parsePuzzle(text string) (Puzzle, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var p Puzzle
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Puzzle{}, fmt.Errorf("parse puzzle response: %w", err)
	}
	if strings.TrimSpace(p.Code) == "" {
		return Puzzle{}, fmt.Errorf("puzzle response has empty code")
	}
	if p.Language == "" {
		p.Language = "javascript"
	}
	return p, nil
}
