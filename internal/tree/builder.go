// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"fmt"

	"github.com/pheres-lang/pheres/internal/syntax"
)

// Checkpoint marks a position in the build log. Opening a node at a
// checkpoint adopts every sibling appended since the mark.
type Checkpoint int

type openNode struct {
	kind  syntax.Kind
	first int
}

// Builder assembles a tree bottom-up. Elements are appended to a flat log;
// finishing a node folds its slice of the log into a single *Node.
type Builder struct {
	parents  []openNode
	children []Element
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) StartNode(kind syntax.Kind) {
	mustBeNode(kind)
	b.parents = append(b.parents, openNode{kind: kind, first: len(b.children)})
}

// StartNodeAt opens a node whose first child is the element appended right
// after the checkpoint was taken.
func (b *Builder) StartNodeAt(cp Checkpoint, kind syntax.Kind) {
	mustBeNode(kind)
	at := int(cp)
	if at > len(b.children) {
		panic(fmt.Sprintf("tree: checkpoint %d is past the end of the build log (%d)", at, len(b.children)))
	}
	if len(b.parents) > 0 {
		if parent := b.parents[len(b.parents)-1]; at < parent.first {
			panic(fmt.Sprintf("tree: checkpoint %d is outside the open %s node", at, parent.kind))
		}
	}
	b.parents = append(b.parents, openNode{kind: kind, first: at})
}

func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("tree: FinishNode without an open node")
	}
	parent := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	children := make([]Element, len(b.children)-parent.first)
	copy(children, b.children[parent.first:])
	textLen := 0
	for _, child := range children {
		textLen = textLen + child.TextLen()
	}
	b.children = append(b.children[:parent.first], &Node{
		raw:      parent.kind.Raw(),
		children: children,
		textLen:  textLen,
	})
}

func (b *Builder) Token(kind syntax.Kind, text string) {
	if !kind.IsToken() {
		panic(fmt.Sprintf("tree: %s is not a token kind", kind))
	}
	b.children = append(b.children, &Token{raw: kind.Raw(), text: text})
}

func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// Finish returns the single root. Every opened node must have been finished
// and exactly one node must remain in the log.
func (b *Builder) Finish() *Node {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("tree: %d nodes still open", len(b.parents)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("tree: expected a single root, found %d elements", len(b.children)))
	}
	root, ok := b.children[0].(*Node)
	if !ok {
		panic("tree: root is a token")
	}
	b.children = nil
	return root
}

func mustBeNode(kind syntax.Kind) {
	if !kind.IsNode() {
		panic(fmt.Sprintf("tree: %s is not a node kind", kind))
	}
}
