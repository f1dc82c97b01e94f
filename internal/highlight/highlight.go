// Package highlight wraps chroma to turn raw source code into inline-styled
// HTML spans, with forgiving language/theme resolution: unknown identifiers
// degrade to a configured fallback instead of failing the render.
package highlight

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"
)

// languageAliases expands common short names before hitting the lexer registry.
var languageAliases = map[string]string{
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"rb":     "ruby",
	"golang": "go",
	"sh":     "bash",
	"shell":  "bash",
	"yml":    "yaml",
	"cs":     "csharp",
	"c++":    "cpp",
}

// ResolveLanguage maps a requested language identifier to a chroma lexer.
// Resolution order: alias expansion, registry lookup, fallback identifier,
// first registered lexer. A non-exact resolution logs a warning naming both
// the requested and resolved identifiers; it never fails.
func ResolveLanguage(requested, fallback string, logger *zap.Logger) (chroma.Lexer, string) {
	name := requested
	if alias, ok := languageAliases[name]; ok {
		name = alias
	}
	if lexer := lexers.Get(name); lexer != nil {
		return chroma.Coalesce(lexer), lexer.Config().Name
	}
	if lexer := lexers.Get(fallback); lexer != nil {
		resolved := lexer.Config().Name
		logger.Warn("unknown language, using fallback",
			zap.String("requested", requested),
			zap.String("resolved", resolved))
		return chroma.Coalesce(lexer), resolved
	}
	names := lexers.Names(false)
	lexer := lexers.Get(names[0])
	logger.Warn("unknown language and fallback, using first registered lexer",
		zap.String("requested", requested),
		zap.String("resolved", names[0]))
	return chroma.Coalesce(lexer), names[0]
}

// ResolveTheme maps a requested theme identifier to a chroma style using the
// same degradation order as ResolveLanguage.
func ResolveTheme(requested, fallback string, logger *zap.Logger) (*chroma.Style, string) {
	if style, ok := styles.Registry[requested]; ok {
		return style, requested
	}
	if style, ok := styles.Registry[fallback]; ok {
		logger.Warn("unknown theme, using fallback",
			zap.String("requested", requested),
			zap.String("resolved", fallback))
		return style, fallback
	}
	names := styles.Names()
	logger.Warn("unknown theme and fallback, using first registered style",
		zap.String("requested", requested),
		zap.String("resolved", names[0]))
	return styles.Registry[names[0]], names[0]
}

// Snippet tokenises code with the given lexer and formats it as inline-styled
// HTML spans without a surrounding <pre>, so the caller controls the block
// styling. The returned markup is trusted and must be embedded verbatim.
func Snippet(code string, lexer chroma.Lexer, style *chroma.Style) (string, error) {
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}
	formatter := html.New(
		html.PreventSurroundingPre(true),
		html.TabWidth(4),
	)
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return buf.String(), nil
}

// Background returns the theme's background colour as a CSS hex string.
func Background(style *chroma.Style) string {
	return style.Get(chroma.Background).Background.String()
}
