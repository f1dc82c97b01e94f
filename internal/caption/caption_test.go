package caption

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	out := Render(Caption{
		Title:    "What does this print?",
		Body:     "Floating point strikes again.",
		Answer:   "0.30000000000000004",
		Hashtags: []string{"coding", "#shorts"},
	})

	if !strings.HasPrefix(out, "What does this print?\n\n") {
		t.Errorf("title must lead the caption, got %q", out)
	}
	if !strings.Contains(out, "Spoiler: 0.30000000000000004") {
		t.Error("answer spoiler missing")
	}
	if !strings.Contains(out, "#coding #shorts") {
		t.Errorf("hashtags must be normalized and space-joined, got %q", out)
	}
	if strings.Contains(out, "##") {
		t.Error("pre-hashed tags must not be double-hashed")
	}
}

func TestRender_SparseFields(t *testing.T) {
	out := Render(Caption{Hashtags: []string{"go"}})
	if strings.Contains(out, "Spoiler") {
		t.Error("no answer means no spoiler line")
	}
	if !strings.Contains(out, "#go") {
		t.Error("hashtags must still render")
	}
}

func TestWrite_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "caption.txt")
	if err := Write(path, Caption{Title: "t"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(data), "t") {
		t.Errorf("unexpected caption content: %q", data)
	}
}
