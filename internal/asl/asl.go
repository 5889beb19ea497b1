// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package asl holds the interfaces shared by every stage of the AgentSpeak
// front end: iteration, file access and source locations.
package asl

import (
	"context"
	"fmt"

	"github.com/pheres-lang/pheres/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

// CodePoint is a decoded rune together with the number of source bytes it
// occupied. Invalid UTF-8 decodes to utf8.RuneError with a width of 1.
type CodePoint struct {
	Rune  rune
	Width int
}

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindAgentSpeak
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindAgentSpeak:
		return "agentspeak"
	default:
		return fmt.Sprintf("unkown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

// Location is a point in a source file. Line and Column are 1-based, Offset
// is a byte offset.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}
