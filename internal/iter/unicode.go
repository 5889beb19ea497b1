// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"context"
	"unicode/utf8"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/optional"
)

// NewUnicodeString converts a string into an iterator of code points. Each
// code point reports the number of bytes it was decoded from so that callers
// can track byte offsets even when the input is not valid UTF-8.
func NewUnicodeString(s string) asl.Iterator[asl.CodePoint] {
	return &unicodeString{text: s}
}

type unicodeString struct {
	text   string
	offset int
}

func (self *unicodeString) Next(ctx context.Context) optional.Optional[asl.CodePoint] {
	if self.offset >= len(self.text) {
		return optional.None[asl.CodePoint]()
	}
	r, width := utf8.DecodeRuneInString(self.text[self.offset:])
	self.offset = self.offset + width
	return optional.Some(asl.CodePoint{Rune: r, Width: width})
}

func (self *unicodeString) Close(context.Context) error {
	return nil
}
