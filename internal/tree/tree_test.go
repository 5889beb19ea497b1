package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pheres-lang/pheres/internal/syntax"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.StartNode(syntax.Root)
	b.StartNode(syntax.Belief)
	b.StartNode(syntax.Literal)
	b.Token(syntax.Functor, "likes")
	b.FinishNode()
	b.Token(syntax.Dot, ".")
	b.FinishNode()
	b.Token(syntax.Whitespace, "\n")
	b.FinishNode()
	root := b.Finish()

	require.Equal(t, syntax.Root, root.Kind())
	require.Equal(t, "likes.\n", root.Text())
	require.Equal(t, 7, root.TextLen())
	require.Len(t, root.Children(), 2)
	require.Len(t, root.ChildNodes(), 1)
	require.IsType(t, &Token{}, root.Children()[1])

	belief := root.ChildNodes()[0]
	require.Equal(t, syntax.Belief, belief.Kind())
	require.Equal(t, "likes.", belief.Text())
	require.Equal(t, syntax.Literal, belief.ChildNodes()[0].Kind())
	require.Equal(t, syntax.Dot, belief.Children()[1].Kind())
}

func TestBuilderCheckpoint(t *testing.T) {
	t.Parallel()

	// 1 - 2 - 3 wrapped left to right
	b := NewBuilder()
	b.StartNode(syntax.Root)
	cp := b.Checkpoint()
	b.Token(syntax.Integer, "1")
	b.StartNodeAt(cp, syntax.Additive)
	b.Token(syntax.Minus, "-")
	b.Token(syntax.Integer, "2")
	b.FinishNode()
	b.StartNodeAt(cp, syntax.Additive)
	b.Token(syntax.Minus, "-")
	b.Token(syntax.Integer, "3")
	b.FinishNode()
	b.FinishNode()
	root := b.Finish()

	require.Len(t, root.Children(), 1)
	outer := root.ChildNodes()[0]
	require.Equal(t, syntax.Additive, outer.Kind())
	require.Equal(t, "1-2-3", outer.Text())
	inner := outer.ChildNodes()[0]
	require.Equal(t, syntax.Additive, inner.Kind())
	require.Equal(t, "1-2", inner.Text())
}

func TestBuilderPanics(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		build func(b *Builder)
	}{
		{
			name:  "finish without open node",
			build: func(b *Builder) { b.FinishNode() },
		},
		{
			name: "checkpoint past the end",
			build: func(b *Builder) {
				b.StartNode(syntax.Root)
				b.StartNodeAt(Checkpoint(1), syntax.Belief)
			},
		},
		{
			name: "checkpoint outside the open node",
			build: func(b *Builder) {
				b.StartNode(syntax.Root)
				b.Token(syntax.Functor, "a")
				b.StartNode(syntax.Belief)
				b.StartNodeAt(Checkpoint(0), syntax.Literal)
			},
		},
		{
			name: "unfinished node",
			build: func(b *Builder) {
				b.StartNode(syntax.Root)
				b.Finish()
			},
		},
		{
			name: "two roots",
			build: func(b *Builder) {
				b.StartNode(syntax.Root)
				b.FinishNode()
				b.StartNode(syntax.Root)
				b.FinishNode()
				b.Finish()
			},
		},
		{
			name:  "node with a token kind",
			build: func(b *Builder) { b.StartNode(syntax.Functor) },
		},
		{
			name: "checkpoint with a token kind",
			build: func(b *Builder) {
				b.StartNode(syntax.Root)
				b.StartNodeAt(b.Checkpoint(), syntax.Eof)
			},
		},
		{
			name:  "token with a node kind",
			build: func(b *Builder) { b.Token(syntax.Belief, "a.") },
		},
		{
			name: "token root",
			build: func(b *Builder) {
				b.Token(syntax.Dot, ".")
				b.Finish()
			},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Panics(t, func() { testCase.build(NewBuilder()) })
		})
	}
}

func TestInvalidRawKind(t *testing.T) {
	t.Parallel()

	n := &Node{raw: syntax.Root.Raw() + 1}
	require.Panics(t, func() { n.Kind() })
	tok := &Token{raw: 0xffff}
	require.Panics(t, func() { tok.Kind() })
}

func TestOutline(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.StartNode(syntax.Root)
	b.StartNode(syntax.InitialGoal)
	b.Token(syntax.Bang, "!")
	b.StartNode(syntax.Literal)
	b.Token(syntax.Functor, "go")
	b.FinishNode()
	b.Token(syntax.Dot, ".")
	b.FinishNode()
	b.FinishNode()
	root := b.Finish()

	expected := "Root@0..4\n" +
		"  InitialGoal@0..4\n" +
		"    Bang@0..1 \"!\"\n" +
		"    Literal@1..3\n" +
		"      Functor@1..3 \"go\"\n" +
		"    Dot@3..4 \".\"\n"
	require.Equal(t, expected, root.String())
}

func TestWalkSkip(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.StartNode(syntax.Root)
	b.StartNode(syntax.Literal)
	b.Token(syntax.Functor, "a")
	b.FinishNode()
	b.Token(syntax.Dot, ".")
	b.FinishNode()
	root := b.Finish()

	var kinds []syntax.Kind
	root.Walk(func(e Element, offset int, depth int) bool {
		kinds = append(kinds, e.Kind())
		return e.Kind() != syntax.Literal
	})
	require.Equal(t, []syntax.Kind{syntax.Root, syntax.Literal, syntax.Dot}, kinds)
}
