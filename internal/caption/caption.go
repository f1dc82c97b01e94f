// Package caption writes the description file that accompanies a generated
// short: title, hook, answer spoiler, and hashtags.
package caption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Caption is the text content for one video.
type Caption struct {
	Title    string
	Body     string
	Answer   string
	Hashtags []string
}

// Render builds the caption text.
func Render(c Caption) string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title)
		b.WriteString("\n\n")
	}
	if c.Body != "" {
		b.WriteString(c.Body)
		b.WriteString("\n\n")
	}
	if c.Answer != "" {
		b.WriteString("Answer in the comments? ")
		b.WriteString("Spoiler: ")
		b.WriteString(c.Answer)
		b.WriteString("\n\n")
	}
	for i, tag := range c.Hashtags {
		if i > 0 {
			b.WriteString(" ")
		}
		if !strings.HasPrefix(tag, "#") {
			b.WriteString("#")
		}
		b.WriteString(tag)
	}
	b.WriteString("\n")
	return b.String()
}

// Write renders the caption next to the given path, creating parent
// directories as needed.
func Write(path string, c Caption) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create caption directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Render(c)), 0o644); err != nil {
		return fmt.Errorf("write caption: %w", err)
	}
	return nil
}
