package components

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"

	"chatwidget/internal/config"
)

// MarkdownRenderer wraps glamour for rich bot-reply rendering. It is the
// widget's one optional dependency: constructing it can fail, and the widget
// then runs in plain-text-only mode.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	theme    config.Theme
	width    int
}

// NewMarkdownRenderer creates a renderer styled for the given theme and
// wrapped at width.
func NewMarkdownRenderer(theme config.Theme, width int) (*MarkdownRenderer, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(stylePath(theme)),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{
		renderer: renderer,
		theme:    theme,
		width:    width,
	}, nil
}

func stylePath(theme config.Theme) string {
	if theme == config.ThemeLight {
		return "light"
	}
	return "dark"
}

// Render renders markdown content to styled terminal output.
func (mr *MarkdownRenderer) Render(content string) (string, error) {
	out, err := mr.renderer.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// UpdateWidth rebuilds the renderer when the wrap width changes.
func (mr *MarkdownRenderer) UpdateWidth(width int) error {
	if width == mr.width {
		return nil
	}
	fresh, err := NewMarkdownRenderer(mr.theme, width)
	if err != nil {
		return err
	}
	mr.renderer = fresh.renderer
	mr.width = width
	return nil
}

// UpdateTheme rebuilds the renderer for the other visual variant.
func (mr *MarkdownRenderer) UpdateTheme(theme config.Theme) error {
	if theme == mr.theme {
		return nil
	}
	fresh, err := NewMarkdownRenderer(theme, mr.width)
	if err != nil {
		return err
	}
	mr.renderer = fresh.renderer
	mr.theme = theme
	return nil
}

// markdownMarkers is the tunable predicate deciding whether a bot reply goes
// through the rich-text path at all. Content with no markup signal skips the
// parser entirely, which is both cheaper and a smaller injection surface.
var markdownMarkers = []*regexp.Regexp{
	regexp.MustCompile("(?s)```.*```"),               // fenced code
	regexp.MustCompile(`(?m)^#{1,6}\s+\S`),           // headers
	regexp.MustCompile(`\*\*[^*]+\*\*|__[^_]+__`),    // strong emphasis
	regexp.MustCompile(`(^|\s)[*_][^*_\s][^*_]*[*_]`), // emphasis
	regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`),        // links
	regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+\S`), // lists
	regexp.MustCompile(`(?m)^>\s`),                   // blockquotes
	regexp.MustCompile(`(?m)^\|.+\|\s*$`),            // tables
	regexp.MustCompile("`[^`]+`"),                    // inline code
}

// LooksLikeMarkdown reports whether content carries any rich-text marker.
func LooksLikeMarkdown(content string) bool {
	for _, marker := range markdownMarkers {
		if marker.MatchString(content) {
			return true
		}
	}
	return false
}

var controlSequence = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|[\x00-\x08\x0b\x0c\x0e-\x1f]`)

// EscapePlainText neutralizes terminal control characters in untrusted
// content before it is written to the screen, the terminal analogue of HTML
// escaping in the original widget.
func EscapePlainText(content string) string {
	return controlSequence.ReplaceAllString(content, "")
}
