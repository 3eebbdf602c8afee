package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders markdown content for terminal display with the
// accent-aware style below.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	rendered = strings.TrimRight(rendered, "\n") + "\n"
	return rendered, nil
}

// markdownStyle covers what the usage guide uses: headings, paragraphs,
// bold text, inline code and fenced command blocks.
func markdownStyle() ansi.StyleConfig {
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = &color
	}
	on := true
	margin := uint(MarkdownRenderMargin)
	blockIndent := uint(2)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         &margin,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: accent, Bold: &on},
		},
		H1:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Underline: &on}},
		H2:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		Strong: ansi.StylePrimitive{Bold: &on},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: accent, Prefix: "`", Suffix: "`"},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{Indent: &blockIndent},
		},
	}
}
