// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package parser builds a lossless syntax tree from a lexed token table.
package parser

import (
	"fmt"
	"slices"

	"github.com/pheres-lang/pheres/internal/lexed"
	"github.com/pheres-lang/pheres/internal/syntax"
	"github.com/pheres-lang/pheres/internal/tree"
)

// Error is a syntactic error attributed to the token the parser was looking
// at when it gave up on the current production.
type Error struct {
	Message string
	Token   int
}

// Parsed is the result of a parse. Root is always a complete tree, whatever
// Errors holds. Running out of input is reported through UnexpectedEOF since
// there is no token to attribute it to.
type Parsed struct {
	Root          *tree.Node
	Errors        []Error
	UnexpectedEOF bool
}

type parser struct {
	lexed   *lexed.LexedStr
	cursor  *lexed.Cursor
	builder *tree.Builder
	errors  []Error
	eof     bool
}

// Parse consumes the whole token table once. It never fails; malformed input
// shows up as Error nodes in the tree and entries in Parsed.Errors.
func Parse(l *lexed.LexedStr) *Parsed {
	p := &parser{
		lexed:   l,
		cursor:  l.Cursor(),
		builder: tree.NewBuilder(),
	}

	p.builder.StartNode(syntax.Root)
	for p.current() != syntax.Eof {
		p.parseStatement()
	}
	p.builder.FinishNode()

	return &Parsed{
		Root:          p.builder.Finish(),
		Errors:        p.errors,
		UnexpectedEOF: p.eof,
	}
}

// current returns the kind of the next significant token. Trivia in front of
// it is moved into whatever node is open.
func (p *parser) current() syntax.Kind {
	for p.cursor.Peek().IsTrivia() {
		p.bump()
	}
	return p.cursor.Peek()
}

func (p *parser) bump() {
	kind, text := p.cursor.Bump()
	p.builder.Token(kind, text)
}

func (p *parser) at(kind syntax.Kind) bool {
	return p.current() == kind
}

func (p *parser) atAny(kinds ...syntax.Kind) bool {
	return slices.Contains(kinds, p.current())
}

func (p *parser) eat(kind syntax.Kind) bool {
	if !p.at(kind) {
		return false
	}
	p.bump()
	return true
}

// startNode opens a node at the next significant token.
func (p *parser) startNode(kind syntax.Kind) {
	_ = p.current()
	p.builder.StartNode(kind)
}

// checkpoint marks the position of the next significant token so that
// leading trivia stays outside any node opened at the mark.
func (p *parser) checkpoint() tree.Checkpoint {
	_ = p.current()
	return p.builder.Checkpoint()
}

// report records an error at the current token. At the end of input only the
// eof flag is raised. A token collects at most one error.
func (p *parser) report(message string) {
	if p.current() == syntax.Eof {
		p.eof = true
		return
	}
	index := p.cursor.Index()
	if n := len(p.errors); n > 0 && p.errors[n-1].Token == index {
		return
	}
	p.errors = append(p.errors, Error{Message: message, Token: index})
}

func (p *parser) expected(expecting string) {
	if p.current() == syntax.Eof {
		p.report("unexpected end of input")
		return
	}
	index := p.cursor.Index()
	what := p.lexed.Kind(index).String()
	if p.lexed.Kind(index).IsKeyword() {
		what = "keyword"
	}
	p.report(fmt.Sprintf("unexpected %s %q (expecting %s)", what, p.lexed.Text(index), expecting))
}

// recover reports the current token and skips ahead inside an Error node.
// Before each token the exclusive set is checked and the token is left in
// place on a match; after consuming a token the inclusive set is checked.
// The returned kind is the token that stopped recovery, Eof when the input ran
// out.
func (p *parser) recover(expecting string, exclusive []syntax.Kind, inclusive []syntax.Kind) syntax.Kind {
	p.expected(expecting)
	kind := p.current()
	if kind == syntax.Eof || slices.Contains(exclusive, kind) {
		return kind
	}
	p.startNode(syntax.Error)
	defer p.builder.FinishNode()
	for {
		kind = p.current()
		if kind == syntax.Eof || slices.Contains(exclusive, kind) {
			return kind
		}
		p.bump()
		if slices.Contains(inclusive, kind) {
			return kind
		}
	}
}

// binary parses a left-associative level: operand { op operand }. Each
// operator wraps everything parsed since the checkpoint as its left operand.
func (p *parser) binary(kind syntax.Kind, ops []syntax.Kind, operand func()) {
	cp := p.checkpoint()
	operand()
	for p.atAny(ops...) {
		p.builder.StartNodeAt(cp, kind)
		p.bump()
		operand()
		p.builder.FinishNode()
	}
}
