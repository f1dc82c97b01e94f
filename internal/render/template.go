package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// documentData feeds the one document template both variants share. Label,
// Title, and ThemeName are untrusted text and get contextually escaped by
// html/template; Code is the highlighter's pre-formatted markup and is
// embedded verbatim. Background and FontFamily are operator-supplied CSS.
type documentData struct {
	ShowHeading     bool
	Label           string
	Title           string
	ThemeName       string
	Background      template.CSS
	FontFamily      template.CSS
	FrameBackground string
	CanvasWidth     int
	CanvasPadding   int
	InnerPadding    int
	FontSizePx      int
	StageMinHeight  int
	Code            template.HTML
}

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  html, body { margin: 0; padding: 0; }
  body {
    width: {{.CanvasWidth}}px;
    padding: {{.CanvasPadding}}px;
    background: {{.Background}};
    font-family: {{.FontFamily}};
  }
  #stage {
{{- if .StageMinHeight}}
    min-height: {{.StageMinHeight}}px;
    display: flex;
    flex-direction: column;
    justify-content: center;
{{- end}}
  }
  .heading {
    font-size: 64px;
    font-weight: 700;
    color: #ffffff;
    text-align: center;
    text-shadow: 0 2px 12px rgba(0, 0, 0, 0.6);
    margin-bottom: 48px;
  }
  #frame {
    width: {{.CanvasWidth}}px;
    border-radius: 12px;
    overflow: hidden;
    background: {{.FrameBackground}};
    box-shadow: 0 24px 60px rgba(0, 0, 0, 0.45);
  }
  .chrome {
    display: flex;
    align-items: center;
    height: 44px;
    padding: 0 18px;
    background: rgba(0, 0, 0, 0.25);
  }
  .dot { width: 14px; height: 14px; border-radius: 50%; margin-right: 9px; }
  .dot-close { background: #ff5f56; }
  .dot-min { background: #ffbd2e; }
  .dot-max { background: #27c93f; }
  .chrome-title {
    flex: 1;
    text-align: center;
    color: rgba(255, 255, 255, 0.55);
    font-size: 15px;
  }
  .chrome-theme { color: rgba(255, 255, 255, 0.3); font-size: 13px; }
  pre.code {
    margin: 0;
    padding: {{.InnerPadding}}px;
    font-size: {{.FontSizePx}}px;
    line-height: 1.6;
    font-family: {{.FontFamily}};
    white-space: pre;
    overflow: hidden;
  }
</style>
</head>
<body>
<div id="stage">
{{- if .ShowHeading}}
  <div class="heading">{{.Label}}</div>
{{- end}}
  <div id="frame">
    <div class="chrome">
      <span class="dot dot-close"></span><span class="dot dot-min"></span><span class="dot dot-max"></span>
      <span class="chrome-title">{{.Title}}</span>
      <span class="chrome-theme">{{.ThemeName}}</span>
    </div>
    <pre class="code">{{.Code}}</pre>
  </div>
</div>
</body>
</html>
`))

func composeDocument(data documentData) (string, error) {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("compose document: %w", err)
	}
	return buf.String(), nil
}
