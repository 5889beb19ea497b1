// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package diag renders exceptions as source snippets with a caret under the
// offending range.
package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/pheres-lang/pheres/internal/exc"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorCode  = lipgloss.Color("#F59E0B")
)

type Renderer struct {
	w      io.Writer
	label  lipgloss.Style
	code   lipgloss.Style
	muted  lipgloss.Style
	caret  lipgloss.Style
	strong lipgloss.Style
}

// NewRenderer writes to w. Color is "always", "never" or "auto"; auto asks
// the terminal behind w what it supports.
func NewRenderer(w io.Writer, color string) *Renderer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		w:      w,
		label:  r.NewStyle().Foreground(colorError).Bold(true),
		code:   r.NewStyle().Foreground(colorCode),
		muted:  r.NewStyle().Foreground(colorMuted),
		caret:  r.NewStyle().Foreground(colorError).Bold(true),
		strong: r.NewStyle().Bold(true),
	}
}

// RenderAll renders every exception. Sources are looked up by URI; an
// exception without a known source is rendered without a snippet.
func (self *Renderer) RenderAll(es []exc.Exception, sources map[string]string) error {
	for _, e := range es {
		source, ok := sources[e.Location().URI]
		if err := self.Render(e, source, ok); err != nil {
			return err
		}
	}
	return nil
}

func (self *Renderer) Render(e exc.Exception, source string, hasSource bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s\n",
		self.label.Render("error"),
		self.code.Render("["+e.Code()+"]"),
		self.strong.Render(e.Message()),
	)

	loc := e.Location()
	if loc.URI != "" {
		if loc.Line > 0 {
			fmt.Fprintf(&b, "  %s %s:%d:%d\n", self.muted.Render("-->"), loc.URI, loc.Line, loc.Column)
		} else {
			fmt.Fprintf(&b, "  %s %s\n", self.muted.Render("-->"), loc.URI)
		}
	}
	if hasSource && loc.Line > 0 && int(loc.Offset) <= len(source) {
		self.snippet(&b, source, int(loc.Line), int(loc.Offset), int(loc.End))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(self.w, b.String())
	return err
}

func (self *Renderer) snippet(b *strings.Builder, source string, line int, offset int, end int) {
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	lineEnd := len(source)
	if n := strings.IndexByte(source[offset:], '\n'); n >= 0 {
		lineEnd = offset + n
	}
	if end > lineEnd {
		end = lineEnd
	}
	if end < offset {
		end = offset
	}

	number := strconv.Itoa(line)
	gutter := strings.Repeat(" ", len(number))
	bar := self.muted.Render("|")

	var pad strings.Builder
	for _, r := range source[lineStart:offset] {
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	width := utf8.RuneCountInString(source[offset:end])
	if width < 1 {
		width = 1
	}

	fmt.Fprintf(b, "%s %s\n", gutter, bar)
	fmt.Fprintf(b, "%s %s %s\n", self.muted.Render(number), bar, strings.TrimRight(source[lineStart:lineEnd], "\r"))
	fmt.Fprintf(b, "%s %s %s%s\n", gutter, bar, pad.String(), self.caret.Render(strings.Repeat("^", width)))
}
