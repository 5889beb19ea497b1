// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/exc"
	"github.com/pheres-lang/pheres/internal/lexed"
)

const messageUnexpectedEOF = "unexpected end of input"

// Diagnose converts the lexical and syntactic errors of a module into located
// exceptions ordered by source position.
func Diagnose(m *Module) []exc.Exception {
	l := m.Lexed
	lines := newLineIndex(l.Source())
	var out []exc.Exception

	for _, e := range l.Errors() {
		start, end := l.Range(e.Token)
		out = append(out, exc.New(lines.span(m.URI, start, end), lexicalCode(e.Kind), e.Kind.String()))
	}
	if m.Parsed != nil {
		for _, e := range m.Parsed.Errors {
			start, end := l.Range(e.Token)
			out = append(out, exc.New(lines.span(m.URI, start, end), exc.CodeUnexpectedToken, e.Message))
		}
		if m.Parsed.UnexpectedEOF {
			at := len(l.Source()) - 1
			if at < 0 {
				at = 0
			}
			out = append(out, exc.New(lines.span(m.URI, at, at), exc.CodeUnexpectedEOF, messageUnexpectedEOF))
		}
	}

	slices.SortStableFunc(out, func(a exc.Exception, b exc.Exception) int {
		return int(a.Location().Offset - b.Location().Offset)
	})
	return out
}

func lexicalCode(kind lexed.ErrorKind) string {
	switch kind {
	case lexed.ErrorUnterminatedString:
		return exc.CodeUnterminatedString
	case lexed.ErrorUnterminatedBlockComment:
		return exc.CodeUnterminatedBlockComment
	default:
		return exc.CodeUnknownCharacter
	}
}

// lineIndex maps byte offsets to 1-based lines and columns. Columns count
// code points.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for offset := 0; offset < len(text); offset = offset + 1 {
		if text[offset] == '\n' {
			starts = append(starts, offset+1)
		}
	}
	return &lineIndex{text: text, starts: starts}
}

func (self *lineIndex) locate(offset int) asl.Location {
	line := sort.Search(len(self.starts), func(i int) bool {
		return self.starts[i] > offset
	}) - 1
	start := self.starts[line]
	return asl.Location{
		Line:   int32(line + 1),
		Column: int32(utf8.RuneCountInString(self.text[start:offset]) + 1),
		Offset: int64(offset),
	}
}

func (self *lineIndex) span(uri string, start int, end int) exc.Location {
	return exc.Location{
		Location: self.locate(start),
		URI:      uri,
		End:      int64(end),
	}
}
