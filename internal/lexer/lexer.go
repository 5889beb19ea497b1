// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lexer

import (
	"context"
	"strings"
	"unicode"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/iter"
	"github.com/pheres-lang/pheres/internal/optional"
)

const (
	// The longest decision the scanner makes is an exponent: `e`, a sign and
	// then a digit.
	scannerLookahead = 3

	eof rune = -1
)

// Scanner tokenizes AgentSpeak source one token per call to Next. A Scanner
// is exhausted after the last token; build a new one from the same text to
// start over.
type Scanner struct {
	body asl.Lookahead[asl.CodePoint]
	size int
}

var _ asl.Iterator[Token] = (*Scanner)(nil)

// Tokenize returns a Scanner over the given text.
func Tokenize(text string) *Scanner {
	return &Scanner{
		body: iter.NewLookahead(iter.NewUnicodeString(text), scannerLookahead),
	}
}

// Next scans one token. Every call consumes at least one code point until the
// input is exhausted; unrecognised input becomes an Unknown token.
func (self *Scanner) Next(ctx context.Context) optional.Optional[Token] {
	self.size = 0
	point := self.next(ctx)
	if !point.IsPresent() {
		return optional.None[Token]()
	}
	r := point.Value().Rune
	switch r {
	case '(':
		return self.token(OpenParen)
	case ')':
		return self.token(CloseParen)
	case '[':
		return self.token(OpenBracket)
	case ']':
		return self.token(CloseBracket)
	case '{':
		return self.token(OpenBrace)
	case '}':
		return self.token(CloseBrace)
	case '"':
		return self.readString(ctx)
	case '#':
		return self.readCommentLine(ctx)
	case '/':
		switch self.peek(ctx, 1) {
		case '/':
			_ = self.next(ctx)
			return self.readCommentLine(ctx)
		case '*':
			_ = self.next(ctx)
			return self.readCommentBlock(ctx)
		default:
			return self.token(Slash)
		}
	case '<':
		switch self.peek(ctx, 1) {
		case '-':
			_ = self.next(ctx)
			return self.token(Arrow)
		case '=':
			_ = self.next(ctx)
			return self.token(LtEq)
		default:
			return self.token(Lt)
		}
	case '>':
		if self.peek(ctx, 1) == '=' {
			_ = self.next(ctx)
			return self.token(GtEq)
		}
		return self.token(Gt)
	case ':':
		if self.peek(ctx, 1) == '-' {
			_ = self.next(ctx)
			return self.token(Define)
		}
		return self.token(Colon)
	case '|':
		switch {
		case self.peek(ctx, 1) == '&' && self.peek(ctx, 2) == '|':
			_ = self.next(ctx)
			_ = self.next(ctx)
			return self.token(ForkJoinAnd)
		case self.peek(ctx, 1) == '|' && self.peek(ctx, 2) == '|':
			_ = self.next(ctx)
			_ = self.next(ctx)
			return self.token(ForkJoinXor)
		default:
			return self.token(Or)
		}
	case '!':
		if self.peek(ctx, 1) == '!' {
			_ = self.next(ctx)
			return self.token(BangBang)
		}
		return self.token(Bang)
	case '?':
		return self.token(Question)
	case '-':
		if self.peek(ctx, 1) == '+' {
			_ = self.next(ctx)
			return self.token(MinusPlus)
		}
		return self.token(Minus)
	case '+':
		return self.token(Plus)
	case '*':
		if self.peek(ctx, 1) == '*' {
			_ = self.next(ctx)
			return self.token(Pow)
		}
		return self.token(Star)
	case '&':
		return self.token(And)
	case '\\':
		if self.peek(ctx, 1) == '=' && self.peek(ctx, 2) == '=' {
			_ = self.next(ctx)
			_ = self.next(ctx)
			return self.token(NotEqual)
		}
		return self.token(Unknown)
	case '=':
		switch {
		case self.peek(ctx, 1) == '=':
			_ = self.next(ctx)
			return self.token(Equal)
		case self.peek(ctx, 1) == '.' && self.peek(ctx, 2) == '.':
			_ = self.next(ctx)
			_ = self.next(ctx)
			return self.token(Decompose)
		default:
			return self.token(Eq)
		}
	case ';':
		return self.token(Semi)
	case ',':
		return self.token(Comma)
	case '.':
		return self.token(Dot)
	case '@':
		return self.token(At)
	case '_':
		return self.readWildcard(ctx)
	}
	switch {
	case unicode.IsSpace(r):
		for unicode.IsSpace(self.peek(ctx, 1)) {
			_ = self.next(ctx)
		}
		return self.token(Whitespace)
	case isDigit(r):
		return self.readNumber(ctx)
	case unicode.IsLower(r):
		return self.readFunctor(ctx, r)
	case unicode.IsUpper(r):
		self.readIdentifier(ctx, nil)
		return self.token(Variable)
	default:
		return self.token(Unknown)
	}
}

func (self *Scanner) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

// readFunctor scans a lowercase led identifier. A run that spells a keyword
// exactly becomes that keyword; anything else is a Functor that may continue
// through `.` when the dot is immediately followed by a lowercase letter.
func (self *Scanner) readFunctor(ctx context.Context, first rune) optional.Optional[Token] {
	var builder strings.Builder
	_, _ = builder.WriteRune(first)
	self.readIdentifier(ctx, &builder)
	if kind, ok := keywords[builder.String()]; ok {
		return self.token(kind)
	}
	for self.peek(ctx, 1) == '.' && unicode.IsLower(self.peek(ctx, 2)) {
		_ = self.next(ctx)
		_ = self.next(ctx)
		self.readIdentifier(ctx, nil)
	}
	return self.token(Functor)
}

// readWildcard scans a run of underscores. An uppercase letter right after the
// run turns the whole thing into a Variable.
func (self *Scanner) readWildcard(ctx context.Context) optional.Optional[Token] {
	for self.peek(ctx, 1) == '_' {
		_ = self.next(ctx)
	}
	if unicode.IsUpper(self.peek(ctx, 1)) {
		_ = self.next(ctx)
		self.readIdentifier(ctx, nil)
		return self.token(Variable)
	}
	return self.token(Wildcard)
}

func (self *Scanner) readIdentifier(ctx context.Context, builder *strings.Builder) {
	for {
		r := self.peek(ctx, 1)
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		_ = self.next(ctx)
		if builder != nil {
			_, _ = builder.WriteRune(r)
		}
	}
}

func (self *Scanner) readNumber(ctx context.Context) optional.Optional[Token] {
	kind := Integer
	self.readDigits(ctx)
	if self.peek(ctx, 1) == '.' && isDigit(self.peek(ctx, 2)) {
		kind = Float
		_ = self.next(ctx)
		self.readDigits(ctx)
	}
	switch self.peek(ctx, 1) {
	case 'e', 'E':
		n := self.peek(ctx, 2)
		switch {
		case isDigit(n):
			kind = Float
			_ = self.next(ctx)
			self.readDigits(ctx)
		case (n == '+' || n == '-') && isDigit(self.peek(ctx, 3)):
			kind = Float
			_ = self.next(ctx)
			_ = self.next(ctx)
			self.readDigits(ctx)
		}
	}
	return self.token(kind)
}

func (self *Scanner) readDigits(ctx context.Context) {
	for isDigit(self.peek(ctx, 1)) {
		_ = self.next(ctx)
	}
}

// readString scans the remainder of a double quoted string. A backslash
// escapes whatever follows it, newlines included.
func (self *Scanner) readString(ctx context.Context) optional.Optional[Token] {
	for {
		switch self.peek(ctx, 1) {
		case eof, '\n':
			return self.unterminated(String)
		case '"':
			_ = self.next(ctx)
			return self.token(String)
		case '\\':
			_ = self.next(ctx)
			if self.peek(ctx, 1) == eof {
				return self.unterminated(String)
			}
			_ = self.next(ctx)
		default:
			_ = self.next(ctx)
		}
	}
}

func (self *Scanner) readCommentLine(ctx context.Context) optional.Optional[Token] {
	for {
		switch self.peek(ctx, 1) {
		case eof, '\n':
			return self.token(LineComment)
		default:
			_ = self.next(ctx)
		}
	}
}

func (self *Scanner) readCommentBlock(ctx context.Context) optional.Optional[Token] {
	for {
		switch self.peek(ctx, 1) {
		case eof:
			return self.unterminated(BlockComment)
		case '*':
			_ = self.next(ctx)
			if self.peek(ctx, 1) == '/' {
				_ = self.next(ctx)
				return self.token(BlockComment)
			}
		default:
			_ = self.next(ctx)
		}
	}
}

func (self *Scanner) next(ctx context.Context) optional.Optional[asl.CodePoint] {
	n := self.body.Next(ctx)
	if n.IsPresent() {
		self.size = self.size + n.Value().Width
	}
	return n
}

func (self *Scanner) peek(ctx context.Context, n uint8) rune {
	return self.body.Lookahead(ctx, n).ValueOr(asl.CodePoint{Rune: eof}).Rune
}

func (self *Scanner) token(kind TokenKind) optional.Optional[Token] {
	return optional.Some(Token{Kind: kind, Len: self.size})
}

func (self *Scanner) unterminated(kind TokenKind) optional.Optional[Token] {
	return optional.Some(Token{Kind: kind, Len: self.size, Unterminated: true})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
