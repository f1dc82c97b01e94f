package render

import (
	"html/template"
	"strings"
	"testing"
)

func TestComposeDocument_EscapesLabel(t *testing.T) {
	doc, err := composeDocument(documentData{
		ShowHeading: true,
		Label:       `<b>&"'</b>`,
		Title:       "a < b",
		ThemeName:   "dracula",
		CanvasWidth: 1000,
		FontSizePx:  28,
	})
	if err != nil {
		t.Fatalf("composeDocument failed: %v", err)
	}

	if strings.Contains(doc, `<b>&"'</b>`) {
		t.Error("raw label markup must not survive composition")
	}
	for _, want := range []string{"&lt;b&gt;", "&amp;", "&#34;", "&#39;"} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected escaped sequence %q in document", want)
		}
	}
	if !strings.Contains(doc, "a &lt; b") {
		t.Error("chrome title must be escaped")
	}
}

func TestComposeDocument_CodeVerbatim(t *testing.T) {
	markup := `<span style="color:#ff79c6">const</span> x`
	doc, err := composeDocument(documentData{
		Code:        template.HTML(markup),
		CanvasWidth: 1000,
		FontSizePx:  28,
	})
	if err != nil {
		t.Fatalf("composeDocument failed: %v", err)
	}
	if !strings.Contains(doc, markup) {
		t.Error("highlighter markup must be embedded verbatim")
	}
}

func TestComposeDocument_HeadingToggle(t *testing.T) {
	with, err := composeDocument(documentData{ShowHeading: true, Label: "Hook", CanvasWidth: 1000, FontSizePx: 28})
	if err != nil {
		t.Fatal(err)
	}
	without, err := composeDocument(documentData{ShowHeading: false, Label: "Hook", CanvasWidth: 1000, FontSizePx: 28})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(with, `class="heading"`) {
		t.Error("heading variant must emit the heading element")
	}
	if strings.Contains(without, `class="heading"`) {
		t.Error("standalone variant must not emit the heading element")
	}
}

func TestComposeDocument_StageMinHeight(t *testing.T) {
	doc, err := composeDocument(documentData{StageMinHeight: 1920, CanvasWidth: 1080, FontSizePx: 28})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "min-height: 1920px") {
		t.Error("overlay stage must carry its fixed min-height")
	}
}

func TestComposeDocument_ChromeDots(t *testing.T) {
	doc, err := composeDocument(documentData{CanvasWidth: 1000, FontSizePx: 28})
	if err != nil {
		t.Fatal(err)
	}
	for _, dot := range []string{"dot-close", "dot-min", "dot-max"} {
		if strings.Count(doc, dot) < 2 { // CSS rule + element
			t.Errorf("expected chrome dot %q in document", dot)
		}
	}
}
