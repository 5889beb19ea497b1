// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/pheres-lang/pheres/internal/asl"
	"github.com/pheres-lang/pheres/internal/exc"
)

// NewFileString serves content from memory. Every Body call starts from the
// beginning.
func NewFileString(path string, content string, kind asl.FileKind) asl.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

// NewFileFN wraps an opener. Each Body call invokes open for a fresh handle,
// and bodies may be read concurrently.
func NewFileFN(path string, open func() (io.ReadCloser, error), kind asl.FileKind) asl.File {
	return &fileFN{path: path, kind: kind, open: open}
}

type fileFN struct {
	path string
	kind asl.FileKind
	open func() (io.ReadCloser, error)
}

func (f *fileFN) Path(ctx context.Context) string {
	return f.path
}

func (f *fileFN) Kind(ctx context.Context) asl.FileKind {
	return f.kind
}

func (f *fileFN) Body(ctx context.Context) (asl.FileBody, error) {
	rc, err := f.open()
	if err != nil {
		return nil, fsErr(f.path, err)
	}
	return &body{r: bufio.NewReader(rc), c: rc}, nil
}

// body adapts an io.ReadCloser to asl.FileBody. The end of input is reported
// as an exception with CodeEOF that still unwraps to io.EOF.
type body struct {
	r   *bufio.Reader
	c   io.Closer
	buf []byte
}

func (self *body) Read(ctx context.Context, size int32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cap(self.buf) < int(size) {
		self.buf = make([]byte, size)
	}
	n, err := self.r.Read(self.buf[:size])
	switch {
	case errors.Is(err, io.EOF):
		return self.buf[:n], exc.Wrap(exc.Location{}, exc.CodeEOF, err)
	case err != nil:
		return nil, exc.WrapUnknown(exc.Location{}, err)
	}
	return self.buf[:n], nil
}

func (self *body) Close(ctx context.Context) error {
	return self.c.Close()
}
