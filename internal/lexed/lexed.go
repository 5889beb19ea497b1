// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package lexed turns scanner output into an indexed token table: one syntax
// kind and one byte offset per token, plus the lexical errors found on the way.
package lexed

import (
	"context"
	"slices"

	"github.com/pheres-lang/pheres/internal/lexer"
	"github.com/pheres-lang/pheres/internal/syntax"
)

type ErrorKind uint8

const (
	ErrorUnterminatedString ErrorKind = iota
	ErrorUnterminatedBlockComment
	ErrorUnknownCharacter
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorUnterminatedString:
		return "unterminated string literal"
	case ErrorUnterminatedBlockComment:
		return "unterminated block comment"
	case ErrorUnknownCharacter:
		return "unknown character"
	default:
		return "unknown lexical error"
	}
}

// Error is a lexical error attributed to the index of the offending token.
type Error struct {
	Kind  ErrorKind
	Token int
}

// LexedStr is the classified token table of one source text. It is immutable
// once built.
type LexedStr struct {
	text   string
	kind   []syntax.Kind
	start  []int
	errors []Error
}

// New scans the whole text once. The kind table ends with an Eof sentinel and
// the offset table holds one extra trailing entry so that Range works for
// every index up to and including the sentinel.
func New(ctx context.Context, text string) *LexedStr {
	res := &LexedStr{text: text}

	offset := 0
	scanner := lexer.Tokenize(text)
	defer scanner.Close(ctx)
	for tok := scanner.Next(ctx); tok.IsPresent(); tok = scanner.Next(ctx) {
		token := tok.Value()
		index := len(res.kind)
		switch {
		case token.Unterminated && token.Kind == lexer.String:
			res.errors = append(res.errors, Error{Kind: ErrorUnterminatedString, Token: index})
		case token.Unterminated && token.Kind == lexer.BlockComment:
			res.errors = append(res.errors, Error{Kind: ErrorUnterminatedBlockComment, Token: index})
		case token.Kind == lexer.Unknown:
			res.errors = append(res.errors, Error{Kind: ErrorUnknownCharacter, Token: index})
		}
		res.kind = append(res.kind, classify(token.Kind))
		res.start = append(res.start, offset)
		offset = offset + token.Len
	}

	res.kind = append(res.kind, syntax.Eof)
	res.start = append(res.start, len(text), len(text))
	return res
}

func classify(kind lexer.TokenKind) syntax.Kind {
	switch kind {
	case lexer.Whitespace:
		return syntax.Whitespace
	case lexer.LineComment:
		return syntax.LineComment
	case lexer.BlockComment:
		return syntax.BlockComment

	case lexer.Functor:
		return syntax.Functor
	case lexer.Variable:
		return syntax.Variable
	case lexer.Wildcard:
		return syntax.Wildcard
	case lexer.Integer:
		return syntax.Integer
	case lexer.Float:
		return syntax.Float
	case lexer.String:
		return syntax.String

	case lexer.True:
		return syntax.True
	case lexer.False:
		return syntax.False

	case lexer.If:
		return syntax.If
	case lexer.Else:
		return syntax.Else
	case lexer.While:
		return syntax.While
	case lexer.For:
		return syntax.For

	case lexer.Include:
		return syntax.Include
	case lexer.Begin:
		return syntax.Begin
	case lexer.End:
		return syntax.End

	case lexer.OpenParen:
		return syntax.OpenParen
	case lexer.CloseParen:
		return syntax.CloseParen
	case lexer.OpenBracket:
		return syntax.OpenBracket
	case lexer.CloseBracket:
		return syntax.CloseBracket
	case lexer.OpenBrace:
		return syntax.OpenBrace
	case lexer.CloseBrace:
		return syntax.CloseBrace

	case lexer.Arrow:
		return syntax.Arrow
	case lexer.Define:
		return syntax.Define
	case lexer.Colon:
		return syntax.Colon

	case lexer.ForkJoinAnd:
		return syntax.ForkJoinAnd
	case lexer.ForkJoinXor:
		return syntax.ForkJoinXor

	case lexer.BangBang:
		return syntax.BangBang
	case lexer.Bang:
		return syntax.Bang
	case lexer.Question:
		return syntax.Question
	case lexer.MinusPlus:
		return syntax.MinusPlus

	case lexer.Not:
		return syntax.Not
	case lexer.Plus:
		return syntax.Plus
	case lexer.Minus:
		return syntax.Minus
	case lexer.Slash:
		return syntax.Slash
	case lexer.Div:
		return syntax.Div
	case lexer.Mod:
		return syntax.Mod
	case lexer.Pow:
		return syntax.Pow
	case lexer.Star:
		return syntax.Star
	case lexer.And:
		return syntax.And
	case lexer.Or:
		return syntax.Or

	case lexer.LtEq:
		return syntax.LtEq
	case lexer.GtEq:
		return syntax.GtEq
	case lexer.NotEqual:
		return syntax.NotEqual
	case lexer.Equal:
		return syntax.Equal
	case lexer.Decompose:
		return syntax.Decompose
	case lexer.Eq:
		return syntax.Eq
	case lexer.Lt:
		return syntax.Lt
	case lexer.Gt:
		return syntax.Gt

	case lexer.Semi:
		return syntax.Semi
	case lexer.Comma:
		return syntax.Comma
	case lexer.Dot:
		return syntax.Dot
	case lexer.At:
		return syntax.At

	default:
		return syntax.Unknown
	}
}

// Len is the number of tokens, not counting the Eof sentinel.
func (l *LexedStr) Len() int {
	return len(l.kind) - 1
}

// Kind returns the classification of token i. Kind(Len()) is Eof.
func (l *LexedStr) Kind(i int) syntax.Kind {
	return l.kind[i]
}

// Range returns the half-open byte range of token i. The Eof sentinel has an
// empty range at the end of the source.
func (l *LexedStr) Range(i int) (int, int) {
	return l.start[i], l.start[i+1]
}

func (l *LexedStr) Text(i int) string {
	start, end := l.Range(i)
	return l.text[start:end]
}

func (l *LexedStr) Source() string {
	return l.text
}

// Errors returns a copy of the lexical errors in token order.
func (l *LexedStr) Errors() []Error {
	return slices.Clone(l.errors)
}

// Cursor returns a new forward-only cursor positioned on the first token.
func (l *LexedStr) Cursor() *Cursor {
	return &Cursor{lexed: l}
}

// Cursor walks a LexedStr front to back.
type Cursor struct {
	lexed *LexedStr
	pos   int
}

// Index is the index of the token the cursor is on.
func (c *Cursor) Index() int {
	return c.pos
}

func (c *Cursor) Done() bool {
	return c.pos >= c.lexed.Len()
}

// Peek returns the kind of the current token, Eof once the cursor is
// exhausted.
func (c *Cursor) Peek() syntax.Kind {
	return c.lexed.kind[c.pos]
}

// Bump consumes the current token and returns its kind and text. Bumping an
// exhausted cursor panics.
func (c *Cursor) Bump() (syntax.Kind, string) {
	if c.Done() {
		panic("lexed: bump past the end of the token stream")
	}
	kind, text := c.lexed.kind[c.pos], c.lexed.Text(c.pos)
	c.pos = c.pos + 1
	return kind, text
}
