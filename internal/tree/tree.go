// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package tree implements the immutable, lossless syntax tree and the builder
// used by the parser to assemble it.
package tree

import (
	"fmt"
	"strings"

	"github.com/pheres-lang/pheres/internal/syntax"
)

// Element is either a *Node or a *Token.
type Element interface {
	Kind() syntax.Kind
	TextLen() int
	writeText(b *strings.Builder)
}

// Node is an interior tree element. The kind is kept as a raw tag and checked
// on the way out.
type Node struct {
	raw      uint16
	children []Element
	textLen  int
}

// Token is a leaf carrying the exact source text it was scanned from.
type Token struct {
	raw  uint16
	text string
}

func kindOf(raw uint16) syntax.Kind {
	kind, ok := syntax.FromRaw(raw)
	if !ok {
		panic(fmt.Sprintf("tree: invalid raw kind %d", raw))
	}
	return kind
}

func (n *Node) Kind() syntax.Kind {
	return kindOf(n.raw)
}

func (n *Node) Children() []Element {
	return n.children
}

// ChildNodes returns the interior children only, in order.
func (n *Node) ChildNodes() []*Node {
	var nodes []*Node
	for _, child := range n.children {
		if node, ok := child.(*Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// TextLen is the byte length of the source covered by the node.
func (n *Node) TextLen() int {
	return n.textLen
}

// Text reassembles the source covered by the node.
func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.textLen)
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, child := range n.children {
		child.writeText(b)
	}
}

// Walk visits the node and every descendant in document order. The callback
// receives each element with its starting byte offset relative to n and its
// depth below n. Returning false skips the children of a node.
func (n *Node) Walk(fn func(e Element, offset int, depth int) bool) {
	n.walk(fn, 0, 0)
}

func (n *Node) walk(fn func(Element, int, int) bool, offset int, depth int) {
	if !fn(n, offset, depth) {
		return
	}
	for _, child := range n.children {
		switch c := child.(type) {
		case *Node:
			c.walk(fn, offset, depth+1)
		default:
			fn(c, offset, depth+1)
		}
		offset = offset + child.TextLen()
	}
}

// String prints an indented outline of the tree, one element per line.
func (n *Node) String() string {
	var b strings.Builder
	n.Walk(func(e Element, offset int, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%s@%d..%d", e.Kind(), offset, offset+e.TextLen())
		if t, ok := e.(*Token); ok {
			fmt.Fprintf(&b, " %q", t.text)
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

func (t *Token) Kind() syntax.Kind {
	return kindOf(t.raw)
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) TextLen() int {
	return len(t.text)
}

func (t *Token) writeText(b *strings.Builder) {
	b.WriteString(t.text)
}
