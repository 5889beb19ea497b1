// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package export encodes syntax trees as protobuf Struct values so that other
// tools can consume them without linking the parser.
package export

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/pheres-lang/pheres/internal/exc"
	"github.com/pheres-lang/pheres/internal/parser"
	"github.com/pheres-lang/pheres/internal/syntax"
	"github.com/pheres-lang/pheres/internal/tree"
)

const (
	FormatJSON   = "json"
	FormatBinary = "binary"
)

// ToStruct converts a tree into nested structs. Every element carries its
// kind and byte range; nodes list their children, tokens their text, and
// formulas their effect.
func ToStruct(root *tree.Node) (*structpb.Struct, error) {
	return structpb.NewStruct(nodeMap(root, 0))
}

func nodeMap(n *tree.Node, start int) map[string]any {
	children := make([]any, 0, len(n.Children()))
	offset := start
	for _, child := range n.Children() {
		switch c := child.(type) {
		case *tree.Node:
			children = append(children, nodeMap(c, offset))
		case *tree.Token:
			children = append(children, map[string]any{
				"kind":  c.Kind().String(),
				"start": offset,
				"end":   offset + c.TextLen(),
				"text":  c.Text(),
			})
		}
		offset = offset + child.TextLen()
	}
	m := map[string]any{
		"kind":     n.Kind().String(),
		"start":    start,
		"end":      start + n.TextLen(),
		"children": children,
	}
	if n.Kind() == syntax.Formula {
		m["formula"] = parser.ClassifyFormula(n).String()
	}
	return m
}

// Marshal encodes a tree in the given format.
func Marshal(root *tree.Node, format string) ([]byte, error) {
	s, err := ToStruct(root)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{}, err)
	}
	switch format {
	case FormatJSON:
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	case FormatBinary:
		return proto.Marshal(s)
	default:
		return nil, exc.New(exc.Location{}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("unsupported tree format %q", format))
	}
}

// Extension is the file extension used when writing a tree in format.
func Extension(format string) string {
	if format == FormatBinary {
		return ".pb"
	}
	return ".json"
}
